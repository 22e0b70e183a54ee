package x86

import (
	"errors"
	"strings"
	"testing"

	"github.com/tangzhangming/pank/internal/expr"
	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/lexer"
	"github.com/tangzhangming/pank/internal/parser"
	"github.com/tangzhangming/pank/internal/target"
)

var windows = target.Parse("windows")

func generate(t *testing.T, src string) string {
	t.Helper()
	out, err := NewCodeGen(windows).Generate(parser.Parse(lexer.Tokenize(src)))
	if err != nil {
		t.Fatalf("Generate error: %v\nsource:\n%s", err, src)
	}
	return out
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\noutput:\n%s", w, out)
		}
	}
}

// section 返回 from 到 to 之间的文本
func section(out, from, to string) string {
	start := strings.Index(out, from)
	if start < 0 {
		return ""
	}
	rest := out[start:]
	if end := strings.Index(rest, to); end >= 0 {
		return rest[:end]
	}
	return rest
}

func TestGenerate_Shell(t *testing.T) {
	out := generate(t, "")
	if !strings.HasPrefix(out, ".386\n.model flat, stdcall\noption casemap:none\n") {
		t.Errorf("missing prologue:\n%s", out)
	}
	if !strings.HasSuffix(out, "start:\n    call F_MAIN\n    invoke ExitProcess, 0\nend start\n") {
		t.Errorf("missing epilogue:\n%s", out)
	}
	data := strings.Index(out, ".data\n")
	code := strings.Index(out, ".code\n")
	if data < 0 || code < 0 || data > code {
		t.Errorf(".data should precede .code:\n%s", out)
	}
}

func TestGenerate_Var(t *testing.T) {
	out := generate(t, "def main() { var x = 2 + 3 * 4 }")
	code := section(out, "F_MAIN:", "start:")
	want := []string{
		"push 3", "push 4", "pop ebx", "pop eax", "imul eax, ebx", "mov dword ptr [T_0], eax",
		"push 2", "push dword ptr [T_0]", "pop ebx", "pop eax", "add eax, ebx", "mov dword ptr [T_1], eax",
		"mov eax, dword ptr [T_1]",
		"mov dword ptr [V_X], eax",
	}
	last := -1
	for _, w := range want {
		i := strings.Index(code[last+1:], w)
		if i < 0 {
			t.Fatalf("missing %q after offset %d in:\n%s", w, last, code)
		}
		last += 1 + i
	}
}

func TestGenerate_DataSectionSorted(t *testing.T) {
	out := generate(t, "def main() { var zeta = 1 var alpha = zeta * 2 print hi }")
	data := section(out, ".data\n", ".code\n")
	want := ".data\n    T_0 dd ?\n    V_ALPHA dd ?\n    V_ZETA dd ?\n    S_0 db \"HI\", 0\n\n"
	if data != want {
		t.Errorf("data section:\n%s\nwant:\n%s", data, want)
	}
}

func TestGenerate_Division(t *testing.T) {
	out := generate(t, "def main() { var q = a / b }")
	assertContains(t, out, "pop eax\n    cdq\n    idiv ebx\n")
}

func TestGenerate_Loop(t *testing.T) {
	out := generate(t, "def main() { while n { var n = n - 1 } }")
	assertContains(t, out,
		"L0:\n    mov eax, dword ptr [V_N]\n    cmp eax, 0\n    je L1\n",
		"    jmp L0\nL1:\n",
	)
}

func TestGenerate_ForConditionIsOneExpression(t *testing.T) {
	_, err := NewCodeGen(windows).Generate(parser.Parse(lexer.Tokenize("def main() { for i ; i ; i { } }")))
	var cgErr *CodegenError
	if !errors.As(err, &cgErr) || cgErr.Key != i18n.ErrLoopCondition {
		t.Fatalf("expected loop condition error, got %v", err)
	}
	var exprErr *expr.ExpressionError
	if !errors.As(err, &exprErr) || exprErr.Key != i18n.ErrExprUnexpectedToken {
		t.Errorf("loop error should wrap the expression error, got %v", err)
	}
}

func TestGenerate_Function(t *testing.T) {
	out := generate(t, "def add(a, b, c) { print 1 }")
	assertContains(t, out,
		"F_ADD:\n    push ebp\n    mov ebp, esp\n",
		"    mov eax, [ebp+8]\n    mov dword ptr [V_A], eax\n",
		"    mov eax, [ebp+12]\n    mov dword ptr [V_B], eax\n",
		"    mov eax, [ebp+16]\n    mov dword ptr [V_C], eax\n",
		"    mov esp, ebp\n    pop ebp\n    ret\n",
	)
}

func TestGenerate_FunctionLabelsArePrefixed(t *testing.T) {
	out := generate(t, "def l0() { while 1 { var x = 1 } } def add(a) { print 1 } def main() { }")
	counts := make(map[string]int)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " ") {
			counts[line]++
		}
	}
	for label, n := range counts {
		if n > 1 {
			t.Errorf("label %s defined %d times", label, n)
		}
	}
	for _, want := range []string{"F_L0:", "L0:", "F_ADD:", "F_MAIN:"} {
		if counts[want] != 1 {
			t.Errorf("label %s: got %d definitions, want 1", want, counts[want])
		}
	}
	if counts["ADD:"] != 0 {
		t.Error("function labels must not use bare names")
	}
	assertContains(t, out, "    call F_MAIN\n")
}

func TestGenerate_NestedFunctionIsSkipped(t *testing.T) {
	out := generate(t, "def main() { def inner() { } print 1 }")
	assertContains(t, out, "    jmp L0\nF_INNER:\n", "    ret\nL0:\n")
}

func TestGenerate_TopLevelStatementsRunBeforeMain(t *testing.T) {
	out := generate(t, "var g = 7\ndef main() { }")
	entry := section(out, "start:", "end start")
	assertContains(t, entry, "mov dword ptr [V_G], eax\n    call F_MAIN")
	if strings.Index(out, "F_MAIN:") > strings.Index(out, "start:") {
		t.Error("functions should be emitted before the entry point")
	}
}

func TestGenerate_PrintAndInput(t *testing.T) {
	out := generate(t, "def main() { input n print 5 print -2 print hello print hello }")
	assertContains(t, out,
		"invoke scanf, offset FMT_INT, offset V_N",
		"invoke printf, offset FMT_INT, 5",
		"invoke printf, offset FMT_INT, -2",
		"invoke printf, offset S_0",
		`FMT_INT db "%d", 0`,
		`S_0 db "HELLO", 0`,
	)
	if strings.Contains(out, "S_1") {
		t.Error("identical strings should share one constant")
	}
}

func TestGenerate_DllCall(t *testing.T) {
	out := generate(t, "use mathlib\ndef main() { mathlib.add }")
	assertContains(t, out,
		"    invoke LoadLibraryA, offset S_0\n    test eax, eax\n    jz L1\n    push eax\n"+
			"    invoke GetProcAddress, eax, offset S_1\n    test eax, eax\n    jz L0\n    call eax\n"+
			"L0:\n    call FreeLibrary\nL1:\n",
		`S_0 db "mathlib.dll", 0`,
		`S_1 db "add", 0`,
	)
}

func TestGenerate_DllCallAlwaysLoadsDll(t *testing.T) {
	for _, platform := range []string{"linux", "darwin", "windows"} {
		out, err := NewCodeGen(target.Parse(platform)).Generate(parser.Parse(lexer.Tokenize("def main() { mathlib.add }")))
		if err != nil {
			t.Fatal(err)
		}
		assertContains(t, out, `S_0 db "mathlib.dll", 0`)
		if strings.Contains(out, ".so") {
			t.Errorf("%s: LoadLibraryA target must be a .dll:\n%s", platform, out)
		}
	}
}

func TestGenerate_UseEmitsNothing(t *testing.T) {
	with := generate(t, "use mathlib\ndef main() { print 1 }")
	without := generate(t, "def main() { print 1 }")
	if with != without {
		t.Errorf("use should not change the output:\n%s\n---\n%s", with, without)
	}
}

func TestGenerate_ExpressionError(t *testing.T) {
	_, err := NewCodeGen(windows).Generate(parser.Parse(lexer.Tokenize("def main() { var x = 1 + ( }")))
	var exprErr *expr.ExpressionError
	if !errors.As(err, &exprErr) {
		t.Fatalf("expected expression error, got %v", err)
	}
}

func TestGenerate_StateResetBetweenRuns(t *testing.T) {
	g := NewCodeGen(windows)
	nodes := parser.Parse(lexer.Tokenize("def main() { while x { var y = 1 + 2 } }"))
	first, err := g.Generate(nodes)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Generate(nodes)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("reusing a generator changed its output:\n%s\n---\n%s", first, second)
	}
	if strings.Contains(second, "L2:") || strings.Contains(second, "T_1") {
		t.Errorf("counters leaked between runs:\n%s", second)
	}
}
