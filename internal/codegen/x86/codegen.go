// Package x86 把 AST 渲染为 32 位 MASM 汇编文本
//
// 所有变量都是数据段中的 dd 单元，表达式通过 internal/expr 降低为
// push/pop 序列并把中间结果写入临时单元。入口固定调用名为 main 的函数。
package x86

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/pank/internal/expr"
	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/lexer"
	"github.com/tangzhangming/pank/internal/parser"
	"github.com/tangzhangming/pank/internal/symbol"
	"github.com/tangzhangming/pank/internal/target"
)

// EntryFunction 汇编目标的入口函数名（规范化后）
const EntryFunction = "MAIN"

const (
	varPrefix    = "V_"
	tempPrefix   = "T_"
	stringPrefix = "S_"
	funcPrefix   = "F_"
	labelPrefix  = "L"
	fmtInt       = "FMT_INT"
)

// win32 LoadLibraryA 只加载 Windows 动态库，与 -platform 无关
var win32 = target.Platform{OS: "windows"}

// prologue 固定的程序头
var prologue = []string{
	".386",
	".model flat, stdcall",
	"option casemap:none",
	"",
	"includelib msvcrt.lib",
	"includelib kernel32.lib",
	"",
	"printf PROTO C :DWORD, :VARARG",
	"scanf PROTO C :DWORD, :VARARG",
	"ExitProcess PROTO :DWORD",
	"LoadLibraryA PROTO :DWORD",
	"GetProcAddress PROTO :DWORD, :DWORD",
	"FreeLibrary PROTO :DWORD",
}

// CodegenError 汇编生成错误，Err 为底层的表达式错误
type CodegenError struct {
	Key  string
	Args []any
	Line int
	Err  error
}

func (e *CodegenError) Error() string {
	return i18n.T(e.Key, e.Args...)
}

func (e *CodegenError) Unwrap() error {
	return e.Err
}

// dataString 字符串常量池中的一项
type dataString struct {
	label string
	value string
}

// CodeGen 汇编代码生成器，状态在每次 Generate 开始时重置
type CodeGen struct {
	platform target.Platform

	builder strings.Builder
	indent  int
	cells   *symbol.Table // V_ 和 T_ 单元
	temps   expr.Counter  // 临时单元编号
	labels  int           // 标签编号
	strings []dataString  // 按分配顺序
	pool    map[string]string
	usesFmt bool
}

// NewCodeGen 创建一个新的汇编代码生成器
func NewCodeGen(platform target.Platform) *CodeGen {
	return &CodeGen{platform: platform}
}

// Platform 返回目标平台
func (g *CodeGen) Platform() target.Platform {
	return g.platform
}

// reset 开始新的一次编译
func (g *CodeGen) reset() {
	g.builder.Reset()
	g.indent = 0
	g.cells = symbol.New()
	g.temps = expr.Counter{Prefix: tempPrefix}
	g.labels = 0
	g.strings = nil
	g.pool = make(map[string]string)
	g.usesFmt = false
}

// Generate 生成汇编代码
// 顶层函数先输出，其余顶层语句放在 start 之后、调用 main 之前执行
func (g *CodeGen) Generate(nodes []parser.Node) (string, error) {
	g.reset()

	for _, node := range nodes {
		if fn, ok := node.(*parser.Function); ok {
			if err := g.generateFunction(fn); err != nil {
				return "", err
			}
		}
	}

	g.writeLabel("start")
	g.indent++
	for _, node := range nodes {
		if _, ok := node.(*parser.Function); ok {
			continue
		}
		if err := g.generateStatement(node); err != nil {
			return "", err
		}
	}
	g.writeLine("call " + funcLabel(EntryFunction))
	g.writeLine("invoke ExitProcess, 0")
	g.indent--
	g.writeLine("end start")

	var out strings.Builder
	for _, line := range prologue {
		out.WriteString(line)
		out.WriteString("\n")
	}
	out.WriteString("\n")
	g.writeData(&out)
	out.WriteString("\n.code\n")
	out.WriteString(g.builder.String())
	return out.String(), nil
}

// generateStatement 生成语句
func (g *CodeGen) generateStatement(node parser.Node) error {
	switch n := node.(type) {
	case *parser.Function:
		// 嵌套函数：跳过函数体
		skip := g.newLabel()
		g.writeLine("jmp " + skip)
		if err := g.generateFunction(n); err != nil {
			return err
		}
		g.writeLabel(skip)
	case *parser.VarDeclaration:
		return g.generateVarDeclaration(n)
	case *parser.Loop:
		return g.generateLoop(n)
	case *parser.Use:
		// 库在调用处按文件名加载，声明本身不生成代码
	case *parser.DllCall:
		g.generateDllCall(n)
	case *parser.Print:
		g.generatePrint(n)
	case *parser.Input:
		g.generateInput(n)
	}
	return nil
}

// generateBody 重新解析并生成函数体或循环体
func (g *CodeGen) generateBody(body []lexer.Token) error {
	for _, node := range parser.Parse(body) {
		if err := g.generateStatement(node); err != nil {
			return err
		}
	}
	return nil
}

// generateFunction 标签、栈帧、参数复制、函数体、返回
func (g *CodeGen) generateFunction(fn *parser.Function) error {
	saved := g.indent
	g.indent = 0
	g.writeLabel(funcLabel(fn.Name))
	g.indent = 1

	g.writeLine("push ebp")
	g.writeLine("mov ebp, esp")
	for i, param := range fn.Params {
		g.writeLine(fmt.Sprintf("mov eax, [ebp+%d]", 8+4*i))
		g.writeLine(fmt.Sprintf("mov %s, eax", g.variable(param)))
	}
	if err := g.generateBody(fn.Body); err != nil {
		return err
	}
	g.writeLine("mov esp, ebp")
	g.writeLine("pop ebp")
	g.writeLine("ret")

	g.indent = saved
	return nil
}

// generateVarDeclaration 计算初始化表达式并写入变量单元
func (g *CodeGen) generateVarDeclaration(decl *parser.VarDeclaration) error {
	if err := g.generateExpression(decl.Expression()); err != nil {
		return &CodegenError{
			Key:  i18n.ErrVarInitializer,
			Args: []any{decl.Name, err},
			Line: decl.Token.Line,
			Err:  err,
		}
	}
	g.writeLine(fmt.Sprintf("mov %s, eax", g.variable(decl.Name)))
	return nil
}

// generateLoop 条件为 0 时跳出
// for 的条件同样作为一个整体表达式计算
func (g *CodeGen) generateLoop(loop *parser.Loop) error {
	start := g.newLabel()
	end := g.newLabel()

	g.writeLabel(start)
	if err := g.generateExpression(loop.Condition); err != nil {
		return &CodegenError{
			Key:  i18n.ErrLoopCondition,
			Args: []any{loop.Kind.String(), err},
			Line: loop.Token.Line,
			Err:  err,
		}
	}
	g.writeLine("cmp eax, 0")
	g.writeLine("je " + end)
	if err := g.generateBody(loop.Body); err != nil {
		return err
	}
	g.writeLine("jmp " + start)
	g.writeLabel(end)
	return nil
}

// generatePrint 整数用 FMT_INT 打印，其他参数按规范化文本作为字符串常量打印
func (g *CodeGen) generatePrint(p *parser.Print) {
	if p.Arg.Type == lexer.TOKEN_NUMBER {
		g.usesFmt = true
		g.writeLine(fmt.Sprintf("invoke printf, offset %s, %s", fmtInt, p.Arg.Literal))
		return
	}
	g.writeLine("invoke printf, offset " + g.intern(p.Arg.Literal))
}

// generateInput 读取一个整数到变量单元
func (g *CodeGen) generateInput(in *parser.Input) {
	g.usesFmt = true
	g.writeLine(fmt.Sprintf("invoke scanf, offset %s, offset %s", fmtInt, g.cell(varPrefix+in.VarName, symbol.SymbolVar)))
}

// generateDllCall LoadLibraryA / GetProcAddress / call / FreeLibrary
// 库句柄先压栈，作为 FreeLibrary 的参数
func (g *CodeGen) generateDllCall(call *parser.DllCall) {
	lib := g.intern(win32.LibraryFile(call.DllName))
	fn := g.intern(call.FuncName)
	free := g.newLabel()
	done := g.newLabel()

	g.writeLine("invoke LoadLibraryA, offset " + lib)
	g.writeLine("test eax, eax")
	g.writeLine("jz " + done)
	g.writeLine("push eax")
	g.writeLine("invoke GetProcAddress, eax, offset " + fn)
	g.writeLine("test eax, eax")
	g.writeLine("jz " + free)
	g.writeLine("call eax")
	g.writeLabel(free)
	g.writeLine("call FreeLibrary")
	g.writeLabel(done)
}

// funcLabel 函数标签，前缀避免与内部标签和 MASM 保留字冲突
func funcLabel(name string) string {
	return funcPrefix + name
}

// newLabel 分配一个新标签
func (g *CodeGen) newLabel() string {
	label := fmt.Sprintf("%s%d", labelPrefix, g.labels)
	g.labels++
	return label
}

// variable 返回变量单元的内存操作数，第一次出现时登记
func (g *CodeGen) variable(name string) string {
	return "dword ptr [" + g.cell(varPrefix+name, symbol.SymbolVar) + "]"
}

// cell 登记一个数据单元并返回其标签
func (g *CodeGen) cell(label string, kind symbol.SymbolKind) string {
	return g.cells.Add(&symbol.Symbol{Name: label, Label: label, Kind: kind}).Label
}

// intern 字符串常量池，相同内容共用一个标签
func (g *CodeGen) intern(s string) string {
	if label, ok := g.pool[s]; ok {
		return label
	}
	label := fmt.Sprintf("%s%d", stringPrefix, len(g.strings))
	g.pool[s] = label
	g.strings = append(g.strings, dataString{label: label, value: s})
	return label
}

// writeLabel 标签总是顶格
func (g *CodeGen) writeLabel(label string) {
	g.builder.WriteString(label)
	g.builder.WriteString(":\n")
}

// writeLine 写入一行
func (g *CodeGen) writeLine(s string) {
	for i := 0; i < g.indent; i++ {
		g.builder.WriteString("    ")
	}
	g.builder.WriteString(s)
	g.builder.WriteString("\n")
}
