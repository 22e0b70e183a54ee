package parser

import (
	"github.com/tangzhangming/pank/internal/lexer"
)

// Node AST 节点接口
// 节点集合是封闭的：只有本包内的类型实现 statementNode
type Node interface {
	TokenLiteral() string
	// Rest 返回识别该节点之后剩余的 token
	Rest() []lexer.Token
	statementNode()
}

// LoopKind 循环类型
type LoopKind int

const (
	LoopWhile LoopKind = iota
	LoopFor
)

// String 返回循环关键字
func (k LoopKind) String() string {
	if k == LoopFor {
		return "for"
	}
	return "while"
}

// Function 函数定义
type Function struct {
	Token      lexer.Token   // def token
	Name       string        // 函数名
	Params     []string      // 参数名列表，全部是机器字整数
	ReturnType string        // 返回类型注解，为空表示没有
	Body       []lexer.Token // 函数体（不含外层花括号）
	Remaining  []lexer.Token
}

func (f *Function) TokenLiteral() string { return f.Token.Literal }
func (f *Function) Rest() []lexer.Token  { return f.Remaining }
func (f *Function) statementNode()       {}

// VarDeclaration 变量声明
type VarDeclaration struct {
	Token     lexer.Token   // var token
	Name      string        // 变量名
	Value     lexer.Token   // = 之后的第一个 token
	Trailing  []lexer.Token // 初始化表达式的其余部分，原样保留
	Remaining []lexer.Token
}

func (v *VarDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VarDeclaration) Rest() []lexer.Token  { return v.Remaining }
func (v *VarDeclaration) statementNode()       {}

// Expression 返回完整的初始化表达式 [Value] + Trailing
func (v *VarDeclaration) Expression() []lexer.Token {
	out := make([]lexer.Token, 0, len(v.Trailing)+1)
	out = append(out, v.Value)
	return append(out, v.Trailing...)
}

// Loop while / for 循环
type Loop struct {
	Token     lexer.Token
	Kind      LoopKind
	Condition []lexer.Token // 第一个 { 之前的全部 token
	Body      []lexer.Token
	Remaining []lexer.Token
}

func (l *Loop) TokenLiteral() string { return l.Token.Literal }
func (l *Loop) Rest() []lexer.Token  { return l.Remaining }
func (l *Loop) statementNode()       {}

// Use 动态库依赖声明
type Use struct {
	Token     lexer.Token
	DllName   string // 保留源码拼写
	Remaining []lexer.Token
}

func (u *Use) TokenLiteral() string { return u.Token.Literal }
func (u *Use) Rest() []lexer.Token  { return u.Remaining }
func (u *Use) statementNode()       {}

// DllCall 调用动态库导出函数 lib.func
type DllCall struct {
	Token     lexer.Token
	DllName   string
	FuncName  string
	Remaining []lexer.Token
}

func (d *DllCall) TokenLiteral() string { return d.Token.Literal }
func (d *DllCall) Rest() []lexer.Token  { return d.Remaining }
func (d *DllCall) statementNode()       {}

// Print 打印语句
type Print struct {
	Token     lexer.Token
	Arg       lexer.Token
	Remaining []lexer.Token
}

func (p *Print) TokenLiteral() string { return p.Token.Literal }
func (p *Print) Rest() []lexer.Token  { return p.Remaining }
func (p *Print) statementNode()       {}

// Input 输入语句
type Input struct {
	Token     lexer.Token
	VarName   string
	Remaining []lexer.Token
}

func (i *Input) TokenLiteral() string { return i.Token.Literal }
func (i *Input) Rest() []lexer.Token  { return i.Remaining }
func (i *Input) statementNode()       {}
