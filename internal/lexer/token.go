package lexer

import "strings"

// TokenType 表示 token 的类型
type TokenType int

const (
	TOKEN_IDENT   TokenType = iota // 标识符及其他裸词素
	TOKEN_SYMBOL                   // 单字符运算符和分隔符
	TOKEN_NUMBER                   // 整数 (NUMBER, digits)
	TOKEN_KEYWORD                  // KEYWORD_<NAME>
)

// 关键字前缀
const KeywordPrefix = "KEYWORD_"

// 关键字形式
const (
	KEYWORD_IF     = "KEYWORD_IF"
	KEYWORD_WHILE  = "KEYWORD_WHILE"
	KEYWORD_FOR    = "KEYWORD_FOR"
	KEYWORD_ELSE   = "KEYWORD_ELSE"
	KEYWORD_RETURN = "KEYWORD_RETURN"
	KEYWORD_DEF    = "KEYWORD_DEF"
	KEYWORD_VAR    = "KEYWORD_VAR"
	KEYWORD_USE    = "KEYWORD_USE"
	KEYWORD_DLL    = "KEYWORD_DLL"
	KEYWORD_PRINT  = "KEYWORD_PRINT"
	KEYWORD_INPUT  = "KEYWORD_INPUT"
)

// Token 表示一个词法单元
type Token struct {
	Type    TokenType
	Literal string // 规范化后的文本（大写或 KEYWORD_ 形式）
	Raw     string // 源码中的原始拼写
	Line    int
	Column  int
}

// keywords 只匹配原始小写拼写
var keywords = map[string]bool{
	"if":     true,
	"while":  true,
	"for":    true,
	"else":   true,
	"return": true,
	"def":    true,
	"var":    true,
	"use":    true,
	"dll":    true,
	"print":  true,
	"input":  true,
}

// symbols 单字符符号集合
var symbols = map[byte]bool{
	'=': true, '+': true, '-': true, '*': true, '/': true,
	'[': true, ']': true, '{': true, '}': true, '(': true, ')': true,
	',': true, ';': true, '.': true,
}

// IsKeyword 判断原始文本是否为关键字
func IsKeyword(raw string) bool {
	return keywords[raw]
}

// IsSymbol 判断字符是否属于符号集合
func IsSymbol(ch byte) bool {
	return symbols[ch]
}

// Is 判断 token 的规范化文本
func (t Token) Is(literal string) bool {
	return t.Literal == literal
}

// IsIdent 判断是否为普通标识符
func (t Token) IsIdent() bool {
	return t.Type == TOKEN_IDENT
}

// String 返回便于调试的表示
func (t Token) String() string {
	if t.Type == TOKEN_NUMBER {
		return "(NUMBER, " + t.Literal + ")"
	}
	return t.Literal
}

// TokenTypeName 返回 token 类型的名称
func TokenTypeName(t TokenType) string {
	switch t {
	case TOKEN_IDENT:
		return "IDENT"
	case TOKEN_SYMBOL:
		return "SYMBOL"
	case TOKEN_NUMBER:
		return "NUMBER"
	case TOKEN_KEYWORD:
		return "KEYWORD"
	}
	return "UNKNOWN"
}

// Join 把 token 序列还原为以空格分隔的文本
func Join(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Literal
	}
	return strings.Join(parts, " ")
}

// IsDigits 判断字符串是否全部由数字组成
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
