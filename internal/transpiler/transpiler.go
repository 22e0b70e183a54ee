// Package transpiler 把 AST 渲染为 C 源代码
package transpiler

import (
	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/lexer"
	"github.com/tangzhangming/pank/internal/parser"
	"github.com/tangzhangming/pank/internal/target"
)

// Option 代码生成选项
type Option func(*CodeGen)

// WithStrictFor 把不完整的 for 头部报告为错误，而不是省略
func WithStrictFor() Option {
	return func(g *CodeGen) {
		g.strictFor = true
	}
}

// CodegenError C 目标不支持的结构
type CodegenError struct {
	Key  string
	Args []any
	Line int
}

func (e *CodegenError) Error() string {
	return i18n.T(e.Key, e.Args...)
}

// validate 生成代码之前检查整棵树
func (g *CodeGen) validate(nodes []parser.Node) error {
	return g.validateNodes(nodes, false)
}

func (g *CodeGen) validateNodes(nodes []parser.Node, inFunction bool) error {
	for _, node := range nodes {
		switch n := node.(type) {
		case *parser.Function:
			if inFunction {
				return &CodegenError{Key: i18n.ErrNestedFunction, Args: []any{n.Name}, Line: n.Token.Line}
			}
			if err := g.validateNodes(parser.Parse(n.Body), true); err != nil {
				return err
			}
		case *parser.Loop:
			if g.strictFor && n.Kind == parser.LoopFor {
				cond := conditionText(n.Condition)
				if parts, ok := splitFor(cond); !ok {
					return &CodegenError{Key: i18n.ErrMalformedFor, Args: []any{cond, len(parts)}, Line: n.Token.Line}
				}
			}
			if err := g.validateNodes(parser.Parse(n.Body), inFunction); err != nil {
				return err
			}
		}
	}
	return nil
}

// Transpile 转译源代码
func Transpile(source string, platform target.Platform, opts ...Option) (string, error) {
	nodes := parser.Parse(lexer.Tokenize(source))
	return NewCodeGen(platform, opts...).Generate(nodes)
}
