// Package compiler 串联词法分析、语法分析和某一个后端
package compiler

import (
	"github.com/tangzhangming/pank/internal/codegen/x86"
	"github.com/tangzhangming/pank/internal/config"
	"github.com/tangzhangming/pank/internal/lexer"
	"github.com/tangzhangming/pank/internal/parser"
	"github.com/tangzhangming/pank/internal/symbol"
	"github.com/tangzhangming/pank/internal/target"
	"github.com/tangzhangming/pank/internal/transpiler"
)

// Backend 把 AST 渲染为目标文本
type Backend interface {
	Generate(nodes []parser.Node) (string, error)
}

// Options 一次编译的选项
type Options struct {
	Target    string // config.TargetC 或 config.TargetAsm
	Platform  target.Platform
	Mode      parser.Mode
	StrictFor bool
}

// DefaultOptions 当前平台、C 目标、宽松模式
func DefaultOptions() Options {
	return Options{Target: config.TargetC, Platform: target.Host(), Mode: parser.Lenient}
}

// OptionsFromConfig 从项目配置生成编译选项
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Target:    cfg.Build.Target,
		Platform:  target.Parse(cfg.Build.Platform),
		Mode:      parser.Lenient,
		StrictFor: cfg.Build.StrictFor,
	}
	if cfg.Build.Strict {
		opts.Mode = parser.Strict
	}
	return opts
}

// Extension 目标文件扩展名
func (o Options) Extension() string {
	if o.Target == config.TargetAsm {
		return ".asm"
	}
	return ".c"
}

// EntryFunction 目标约定的入口函数名
func (o Options) EntryFunction() string {
	if o.Target == config.TargetAsm {
		return x86.EntryFunction
	}
	return transpiler.EntryFunction
}

// NewBackend 根据选项创建后端
func NewBackend(opts Options) (Backend, error) {
	switch opts.Target {
	case config.TargetC, "":
		var cOpts []transpiler.Option
		if opts.StrictFor {
			cOpts = append(cOpts, transpiler.WithStrictFor())
		}
		return transpiler.NewCodeGen(opts.Platform, cOpts...), nil
	case config.TargetAsm:
		return x86.NewCodeGen(opts.Platform), nil
	}
	return nil, (&config.Config{Build: config.BuildConfig{Target: opts.Target}}).Validate()
}

// Result 编译结果
type Result struct {
	Output   string
	Tokens   int
	Nodes    int
	HasEntry bool // 是否声明了顶层入口函数
}

// Compile 编译源代码
func Compile(source string, opts Options) (*Result, error) {
	backend, err := NewBackend(opts)
	if err != nil {
		return nil, err
	}

	tokens := lexer.Tokenize(source)
	nodes, err := parser.New(opts.Mode).Parse(tokens)
	if err != nil {
		return nil, err
	}

	output, err := backend.Generate(nodes)
	if err != nil {
		return nil, err
	}
	entry := symbol.Collect(nodes).Get(symbol.SymbolFunc, opts.EntryFunction())
	return &Result{
		Output:   output,
		Tokens:   len(tokens),
		Nodes:    len(nodes),
		HasEntry: entry != nil && entry.TopLevel,
	}, nil
}
