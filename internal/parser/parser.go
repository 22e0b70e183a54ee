package parser

import (
	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/lexer"
)

// Mode 错误恢复策略
type Mode int

const (
	// Lenient 无法识别的首个 token 被静默丢弃后重试（默认）
	Lenient Mode = iota
	// Strict 遇到无法识别的输入时返回 ParseError
	Strict
)

// String 返回模式名称
func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseError 语法错误
type ParseError struct {
	Expected string
	Found    string
	Position int // 在被解析 token 序列中的下标
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	return i18n.T(i18n.ErrExpectedToken, e.Line, e.Column, e.Expected, e.Found)
}

// Parser 语法分析器
type Parser struct {
	mode Mode
}

// New 创建一个新的语法分析器
func New(mode Mode) *Parser {
	return &Parser{mode: mode}
}

// Mode 返回当前的错误恢复策略
func (p *Parser) Mode() Mode {
	return p.mode
}

// Parse 反复尝试各个产生式，直到 token 耗尽
func (p *Parser) Parse(tokens []lexer.Token) ([]Node, error) {
	var nodes []Node
	offset := 0
	for len(tokens) > 0 {
		node, rest, err := p.ParseStatement(tokens)
		if err != nil {
			if perr, ok := err.(*ParseError); ok {
				perr.Position += offset
			}
			return nodes, err
		}
		if node == nil {
			// 跳过当前 token
			tokens = tokens[1:]
			offset++
			continue
		}
		nodes = append(nodes, node)
		offset += len(tokens) - len(rest)
		tokens = rest
	}
	return nodes, nil
}

// ParseStatement 按固定优先级尝试全部产生式
// 返回 nil 节点且无错误表示没有产生式匹配
func (p *Parser) ParseStatement(tokens []lexer.Token) (Node, []lexer.Token, error) {
	if len(tokens) == 0 {
		return nil, nil, nil
	}
	var first *ParseError
	for _, prod := range productions {
		node, rest, err := prod(tokens)
		if node != nil {
			return node, rest, nil
		}
		if err != nil && first == nil {
			first = err
		}
	}
	if p.mode != Strict {
		return nil, nil, nil
	}
	if first == nil {
		first = errorAt(tokens, 0, "statement")
	}
	return nil, nil, first
}

// Parse 宽松模式解析 token 序列
func Parse(tokens []lexer.Token) []Node {
	nodes, _ := New(Lenient).Parse(tokens)
	return nodes
}

// ParseStatement 宽松模式解析单条语句
func ParseStatement(tokens []lexer.Token) (Node, []lexer.Token) {
	node, rest, _ := New(Lenient).ParseStatement(tokens)
	return node, rest
}

// ParseSource 词法分析并解析源码
func ParseSource(source string, mode Mode) ([]Node, error) {
	return New(mode).Parse(lexer.Tokenize(source))
}

// errorAt 构造指向 tokens[i] 的错误，越界时指向输入末尾
func errorAt(tokens []lexer.Token, i int, expected string) *ParseError {
	if i < len(tokens) {
		tok := tokens[i]
		return &ParseError{
			Expected: expected,
			Found:    tok.String(),
			Position: i,
			Line:     tok.Line,
			Column:   tok.Column,
		}
	}
	err := &ParseError{Expected: expected, Found: "EOF", Position: len(tokens)}
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		err.Line = last.Line
		err.Column = last.Column + len(last.Raw)
	}
	return err
}
