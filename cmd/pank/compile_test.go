package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tangzhangming/pank/internal/expr"
	"github.com/tangzhangming/pank/internal/lexer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func strPtr(s string) *string { return &s }

func TestCompileInput_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "hello.pank")
	writeFile(t, input, "def hoi() { print 1 }")

	res, err := compileInput(input, buildFlags{target: strPtr("c"), platform: strPtr("linux")})
	if err != nil {
		t.Fatal(err)
	}
	if res.output != filepath.Join(dir, "hello.c") {
		t.Errorf("output = %s", res.output)
	}
	if !res.hasEntry {
		t.Error("hoi should be detected as the entry function")
	}
	if out := readFile(t, res.output); !strings.Contains(out, "HOI();") {
		t.Errorf("unexpected C output:\n%s", out)
	}
}

func TestCompileInput_ProjectConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pank.toml"), `
[project]
name = "demo"
file = "src/main.pank"
output = "build"

[build]
target = "asm"
platform = "windows"
`)
	writeFile(t, filepath.Join(root, "src", "main.pank"), "def main() { var x = 6 / 2 }")

	res, err := compileInput(root, buildFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if res.output != filepath.Join(root, "build", "main.asm") {
		t.Errorf("output = %s", res.output)
	}
	if res.target != "asm" || res.platform != "windows" {
		t.Errorf("result = %+v", res)
	}
	if out := readFile(t, res.output); !strings.Contains(out, "idiv ebx") {
		t.Errorf("unexpected asm output:\n%s", out)
	}

	// 命令行选项覆盖配置
	explicit := filepath.Join(root, "out.c")
	res, err = compileInput(filepath.Join(root, "src", "main.pank"), buildFlags{output: explicit, target: strPtr("C")})
	if err != nil {
		t.Fatal(err)
	}
	if res.output != explicit || res.target != "c" {
		t.Errorf("flags should override config, got %+v", res)
	}
}

func TestCompileInput_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := compileInput(filepath.Join(dir, "missing.pank"), buildFlags{})
	var access *accessError
	if !errors.As(err, &access) {
		t.Errorf("missing input: got %v", err)
	}

	input := filepath.Join(dir, "bad.pank")
	writeFile(t, input, "def main() { var x = 1 + }")
	_, err = compileInput(input, buildFlags{target: strPtr("asm")})
	var compileErr *compileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("bad expression: got %v", err)
	}
	var exprErr *expr.ExpressionError
	if !errors.As(err, &exprErr) {
		t.Errorf("compile error should wrap the expression error, got %v", err)
	}

	_, err = compileInput(input, buildFlags{target: strPtr("wasm")})
	var cfgErr *configError
	if !errors.As(err, &cfgErr) {
		t.Errorf("unknown target: got %v", err)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input, outputDir, ext, want string
	}{
		{"prog.pank", "", ".c", "prog.c"},
		{"prog.pank", "", ".asm", "prog.asm"},
		{"prog", "", ".c", "prog.c"},
		{filepath.Join("src", "prog.pank"), "build", ".asm", filepath.Join("build", "prog.asm")},
	}
	for _, tt := range tests {
		if got := defaultOutputPath(tt.input, tt.outputDir, tt.ext); got != tt.want {
			t.Errorf("defaultOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outputDir, tt.ext, got, tt.want)
		}
	}
}

func TestCalc(t *testing.T) {
	var buf bytes.Buffer
	if err := calc(&buf, "2 + 3 * 4", false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "14\n" {
		t.Errorf("calc = %q", buf.String())
	}

	buf.Reset()
	if err := calc(&buf, "(2 + 3) * 4", true); err != nil {
		t.Fatal(err)
	}
	want := "T_0 = 2 + 3\nT_1 = T_0 * 4\nresult = T_1\n20\n"
	if buf.String() != want {
		t.Errorf("calc -plan = %q, want %q", buf.String(), want)
	}

	if err := calc(&buf, "x + 1", false); err == nil {
		t.Error("variables have no value in calc")
	}
}

func TestWriteTokens(t *testing.T) {
	var buf bytes.Buffer
	writeTokens(&buf, lexer.Tokenize("var x = 5"))
	want := "1:1\tKEYWORD\tKEYWORD_VAR\n1:5\tIDENT\tX\n1:7\tSYMBOL\t=\n1:9\tNUMBER\t(NUMBER, 5)\n"
	if buf.String() != want {
		t.Errorf("tokens:\n%s\nwant:\n%s", buf.String(), want)
	}
}
