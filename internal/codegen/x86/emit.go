package x86

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/pank/internal/expr"
	"github.com/tangzhangming/pank/internal/lexer"
	"github.com/tangzhangming/pank/internal/symbol"
)

// arith 运算符对应的指令，除法单独处理
var arith = map[string]string{
	"+": "add eax, ebx",
	"-": "sub eax, ebx",
	"*": "imul eax, ebx",
}

// generateExpression 计算表达式，结果留在 eax
func (g *CodeGen) generateExpression(tokens []lexer.Token) error {
	plan, err := expr.Compile(tokens, &g.temps)
	if err != nil {
		return err
	}
	for _, step := range plan.Steps {
		g.emitStep(step)
	}
	g.writeLine("mov eax, " + g.operand(plan.Result))
	return nil
}

// emitStep 两个操作数经栈进入 eax / ebx，结果写回临时单元
func (g *CodeGen) emitStep(step expr.Step) {
	g.writeLine("push " + g.operand(step.Left))
	g.writeLine("push " + g.operand(step.Right))
	g.writeLine("pop ebx")
	g.writeLine("pop eax")
	if step.SignExtend {
		g.writeLine("cdq")
		g.writeLine("idiv ebx")
	} else {
		g.writeLine(arith[step.Op])
	}
	g.writeLine(fmt.Sprintf("mov %s, eax", g.operand(step.Dest)))
}

// operand 返回操作数的汇编形式，用到的单元同时登记到数据段
func (g *CodeGen) operand(o expr.Operand) string {
	switch o.Kind {
	case expr.Immediate:
		return o.String()
	case expr.Temporary:
		return "dword ptr [" + g.cell(o.Name, symbol.SymbolTemp) + "]"
	}
	return g.variable(o.Name)
}

// writeData 数据段：排序后的 dd 单元，然后是按分配顺序的字符串
func (g *CodeGen) writeData(out *strings.Builder) {
	out.WriteString(".data\n")
	for _, sym := range g.cells.GetByKind(symbol.SymbolVar, symbol.SymbolTemp) {
		fmt.Fprintf(out, "    %s dd ?\n", sym.Label)
	}
	if g.usesFmt {
		fmt.Fprintf(out, "    %s db %s, 0\n", fmtInt, quote("%d"))
	}
	for _, s := range g.strings {
		fmt.Fprintf(out, "    %s db %s, 0\n", s.label, quote(s.value))
	}
}

// quote MASM 字符串字面量，双引号写两次
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
