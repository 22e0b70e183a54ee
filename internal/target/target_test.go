package target

import (
	"runtime"
	"testing"
)

func TestLibraryFile(t *testing.T) {
	tests := []struct {
		os   string
		name string
		want string
	}{
		{"windows", "mathlib", "mathlib.dll"},
		{"linux", "mathlib", "mathlib.so"},
		{"darwin", "mathlib", "mathlib.so"},
		{"linux", "mathlib.so", "mathlib.so"},
		{"windows", "console.dll", "console.dll"},
		{"linux", "console.dll", "console.dll"},
	}
	for _, tt := range tests {
		p := Parse(tt.os)
		if got := p.LibraryFile(tt.name); got != tt.want {
			t.Errorf("%s: LibraryFile(%q) = %q, want %q", tt.os, tt.name, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	if got := Parse(""); got.OS != runtime.GOOS {
		t.Errorf("Parse(\"\") = %q, want host %q", got, runtime.GOOS)
	}
	if got := Parse(" Windows "); !got.Windows() {
		t.Errorf("Parse(\" Windows \") should be windows, got %q", got)
	}
	if Parse("linux").LoaderHeader() != "<dlfcn.h>" {
		t.Error("linux should load libraries through dlfcn.h")
	}
	if Parse("windows").LoaderHeader() != "<windows.h>" {
		t.Error("windows should load libraries through windows.h")
	}
}
