// Package expr 把中缀四则运算 token 序列编译为栈式求值计划
//
// 先用调度场算法得到后缀序列，再在模拟栈上求值：每个运算符弹出两个操作数，
// 分配一个新的临时单元保存结果，并把临时单元压回栈中。
package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/lexer"
)

// OperandKind 操作数类型
type OperandKind int

const (
	Immediate OperandKind = iota // 立即数
	Variable                     // 用户变量单元
	Temporary                    // 编译器临时单元
)

// Operand 操作数
type Operand struct {
	Kind  OperandKind
	Value int64  // 立即数的值
	Name  string // 变量名或临时单元名
}

// String 返回操作数的文本形式
func (o Operand) String() string {
	if o.Kind == Immediate {
		return strconv.FormatInt(o.Value, 10)
	}
	return o.Name
}

// OpNeg 一元负号，在后缀序列中只消耗一个操作数
const OpNeg = "neg"

// precedence 运算符优先级
var precedence = map[string]int{
	"+":   2,
	"-":   2,
	"*":   3,
	"/":   3,
	OpNeg: 4,
}

// Item 后缀序列中的一项：运算符或操作数
type Item struct {
	Op      string // 非空表示运算符
	Operand Operand
}

// String 返回该项的文本形式
func (it Item) String() string {
	if it.Op != "" {
		return it.Op
	}
	return it.Operand.String()
}

// Step 计划中的一步：Dest = Left Op Right
type Step struct {
	Op         string
	Left       Operand
	Right      Operand
	Dest       Operand
	SignExtend bool // 除法之前需要符号扩展
}

// String 返回该步的文本形式
func (s Step) String() string {
	return fmt.Sprintf("%s = %s %s %s", s.Dest, s.Left, s.Op, s.Right)
}

// Plan 栈式求值计划，结果最终装入累加器
type Plan struct {
	Steps  []Step
	Result Operand
}

// String 每行一步，最后一行是结果
func (p *Plan) String() string {
	var sb strings.Builder
	for _, step := range p.Steps {
		sb.WriteString(step.String())
		sb.WriteString("\n")
	}
	sb.WriteString("result = ")
	sb.WriteString(p.Result.String())
	return sb.String()
}

// TempAllocator 临时单元分配器
type TempAllocator interface {
	NewTemp() string
}

// Counter 单调递增的临时单元分配器，编号在一次编译内不重复
type Counter struct {
	Prefix string
	next   int
}

// NewTemp 分配下一个临时单元名称
func (c *Counter) NewTemp() string {
	name := c.Prefix + strconv.Itoa(c.next)
	c.next++
	return name
}

// Count 已分配的临时单元数量
func (c *Counter) Count() int {
	return c.next
}

// Reset 重新从 0 编号
func (c *Counter) Reset() {
	c.next = 0
}

// ExpressionError 表达式错误，会中止当前编译
type ExpressionError struct {
	Key  string
	Args []any
	Line int
}

func (e *ExpressionError) Error() string {
	return i18n.T(e.Key, e.Args...)
}

func newError(tok *lexer.Token, key string, args ...any) *ExpressionError {
	err := &ExpressionError{Key: key, Args: args}
	if tok != nil {
		err.Line = tok.Line
	}
	return err
}

// ToPostfix 调度场算法：中缀 token 序列转后缀序列
func ToPostfix(tokens []lexer.Token) ([]Item, error) {
	var out []Item
	var ops []string
	prevOperand := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Type == lexer.TOKEN_NUMBER:
			v, err := strconv.ParseInt(tok.Literal, 10, 64)
			if err != nil {
				return nil, newError(&tok, i18n.ErrExprUnexpectedToken, tok.Literal)
			}
			out = append(out, Item{Operand: Operand{Kind: Immediate, Value: v}})
			prevOperand = true

		case tok.Type == lexer.TOKEN_IDENT && isIdentifier(tok.Literal):
			out = append(out, Item{Operand: Operand{Kind: Variable, Name: tok.Literal}})
			prevOperand = true

		case tok.Is("("):
			ops = append(ops, "(")
			prevOperand = false

		case tok.Is(")"):
			found := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top == "(" {
					found = true
					break
				}
				out = append(out, Item{Op: top})
			}
			if !found {
				return nil, newError(&tok, i18n.ErrExprUnbalanced)
			}
			prevOperand = true

		case tok.Type == lexer.TOKEN_SYMBOL && precedence[tok.Literal] > 0:
			if tok.Is("-") && !prevOperand {
				// 一元负号：紧跟数字时直接折叠为负数字面量
				if i+1 < len(tokens) && tokens[i+1].Type == lexer.TOKEN_NUMBER {
					v, err := strconv.ParseInt("-"+tokens[i+1].Literal, 10, 64)
					if err != nil {
						return nil, newError(&tokens[i+1], i18n.ErrExprUnexpectedToken, tokens[i+1].Literal)
					}
					out = append(out, Item{Operand: Operand{Kind: Immediate, Value: v}})
					prevOperand = true
					i++
					continue
				}
				ops = append(ops, OpNeg)
				continue
			}
			prec := precedence[tok.Literal]
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top == "(" || precedence[top] < prec {
					break
				}
				out = append(out, Item{Op: top})
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok.Literal)
			prevOperand = false

		default:
			return nil, newError(&tok, i18n.ErrExprUnexpectedToken, tok.Literal)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top == "(" {
			return nil, newError(nil, i18n.ErrExprUnbalanced)
		}
		out = append(out, Item{Op: top})
	}
	return out, nil
}

// Compile 编译表达式为求值计划，临时单元从 alloc 分配
func Compile(tokens []lexer.Token, alloc TempAllocator) (*Plan, error) {
	items, err := ToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	return Lower(items, alloc)
}

// Lower 在模拟栈上执行后缀序列，生成计划
func Lower(items []Item, alloc TempAllocator) (*Plan, error) {
	if len(items) == 0 {
		return nil, newError(nil, i18n.ErrExprEmpty)
	}

	plan := &Plan{}
	var stack []Operand
	for _, it := range items {
		if it.Op == "" {
			stack = append(stack, it.Operand)
			continue
		}

		dest := Operand{Kind: Temporary, Name: alloc.NewTemp()}
		if it.Op == OpNeg {
			if len(stack) < 1 {
				return nil, newError(nil, i18n.ErrExprTooFewOperands, "-", len(stack))
			}
			x := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			plan.Steps = append(plan.Steps, Step{
				Op:    "-",
				Left:  Operand{Kind: Immediate, Value: 0},
				Right: x,
				Dest:  dest,
			})
			stack = append(stack, dest)
			continue
		}

		if len(stack) < 2 {
			return nil, newError(nil, i18n.ErrExprTooFewOperands, it.Op, len(stack))
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		plan.Steps = append(plan.Steps, Step{
			Op:         it.Op,
			Left:       left,
			Right:      right,
			Dest:       dest,
			SignExtend: it.Op == "/",
		})
		stack = append(stack, dest)
	}

	if len(stack) != 1 {
		return nil, newError(nil, i18n.ErrExprDanglingOperands, len(stack))
	}
	plan.Result = stack[0]
	return plan, nil
}

// Evaluate 解释执行计划，vars 提供用户变量的值
func (p *Plan) Evaluate(vars map[string]int64) (int64, error) {
	temps := make(map[string]int64)
	value := func(o Operand) (int64, error) {
		switch o.Kind {
		case Immediate:
			return o.Value, nil
		case Temporary:
			return temps[o.Name], nil
		}
		v, ok := vars[o.Name]
		if !ok {
			return 0, newError(nil, i18n.ErrExprUndefinedVar, o.Name)
		}
		return v, nil
	}

	for _, step := range p.Steps {
		a, err := value(step.Left)
		if err != nil {
			return 0, err
		}
		b, err := value(step.Right)
		if err != nil {
			return 0, err
		}
		var r int64
		switch step.Op {
		case "+":
			r = a + b
		case "-":
			r = a - b
		case "*":
			r = a * b
		case "/":
			if b == 0 {
				return 0, newError(nil, i18n.ErrExprDivideByZero)
			}
			r = a / b
		}
		temps[step.Dest.Name] = r
	}
	return value(p.Result)
}

// isIdentifier 判断规范化文本是否为合法的变量名
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
