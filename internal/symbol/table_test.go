package symbol

import (
	"testing"

	"github.com/tangzhangming/pank/internal/lexer"
	"github.com/tangzhangming/pank/internal/parser"
)

func TestTable_AddKeepsFirst(t *testing.T) {
	table := New()
	first := table.Add(&Symbol{Name: "X", Label: "V_X", Kind: SymbolVar})
	second := table.Add(&Symbol{Name: "X", Label: "other", Kind: SymbolVar})
	if first != second {
		t.Error("re-declaring a variable should return the existing symbol")
	}
	table.Add(&Symbol{Name: "X", Label: "X", Kind: SymbolFunc})
	if table.Len() != 2 {
		t.Errorf("variables and functions share names independently, Len = %d", table.Len())
	}
}

func TestTable_GetByKindSorted(t *testing.T) {
	table := New()
	for _, name := range []string{"ZETA", "ALPHA", "MID"} {
		table.Add(&Symbol{Name: name, Label: "V_" + name, Kind: SymbolVar})
	}
	table.Add(&Symbol{Name: "T_0", Label: "T_0", Kind: SymbolTemp})
	table.Add(&Symbol{Name: "F", Label: "F", Kind: SymbolFunc})

	got := table.GetByKind(SymbolVar, SymbolTemp)
	want := []string{"T_0", "V_ALPHA", "V_MID", "V_ZETA"}
	if len(got) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(got), len(want))
	}
	for i, sym := range got {
		if sym.Label != want[i] {
			t.Errorf("symbol %d = %s, want %s", i, sym.Label, want[i])
		}
	}
}

func TestCollect(t *testing.T) {
	src := `
use mathlib
def hoi() {
	use inner
	while x { def helper(a, b) { } }
}
def other(n) { }
`
	table := Collect(parser.Parse(lexer.Tokenize(src)))

	hoi := table.Get(SymbolFunc, "HOI")
	if hoi == nil || !hoi.TopLevel {
		t.Fatalf("HOI should be a top-level function, got %#v", hoi)
	}
	helper := table.Get(SymbolFunc, "HELPER")
	if helper == nil || helper.TopLevel || helper.Params != 2 {
		t.Errorf("HELPER should be nested with 2 params, got %#v", helper)
	}
	if other := table.Get(SymbolFunc, "OTHER"); other == nil || other.Params != 1 {
		t.Errorf("OTHER should have 1 param, got %#v", other)
	}

	libs := table.GetByKind(SymbolLibrary)
	if len(libs) != 2 || libs[0].Name != "inner" || libs[1].Name != "mathlib" {
		t.Errorf("libraries = %v", libs)
	}
}

func TestCollect_TopLevelWinsOverNested(t *testing.T) {
	src := "while x { def hoi() { } }\ndef hoi(a) { }"
	table := Collect(parser.Parse(lexer.Tokenize(src)))
	hoi := table.Get(SymbolFunc, "HOI")
	if hoi == nil || !hoi.TopLevel || hoi.Params != 1 {
		t.Errorf("top-level HOI should win over the nested one, got %#v", hoi)
	}
}
