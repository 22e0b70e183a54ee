package lexer

import "strings"

// Lexer 词法分析器
type Lexer struct {
	input   string
	pos     int  // 当前位置
	readPos int  // 下一个读取位置
	ch      byte // 当前字符
	line    int  // 当前行号
	column  int  // 当前列号

	buf       strings.Builder // 正在累积的标识符/数字
	bufLine   int
	bufColumn int
	tokens    []Token
}

// New 创建一个新的词法分析器
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar 读取下一个字符
func (l *Lexer) readChar() {
	if l.pos < len(l.input) && l.readPos > 0 && l.input[l.pos] == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

// atEnd 是否已读完输入
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// Run 扫描全部输入，返回未经后处理的原始词素
func (l *Lexer) Run() []Token {
	for !l.atEnd() {
		switch {
		case isWhitespace(l.ch):
			l.flush()
		case IsSymbol(l.ch):
			l.flush()
			l.tokens = append(l.tokens, Token{
				Type:    TOKEN_SYMBOL,
				Literal: string(l.ch),
				Raw:     string(l.ch),
				Line:    l.line,
				Column:  l.column,
			})
		default:
			// 数字、字母、下划线以及其他字符都进入缓冲区
			if l.buf.Len() == 0 {
				l.bufLine = l.line
				l.bufColumn = l.column
			}
			l.buf.WriteByte(l.ch)
		}
		l.readChar()
	}
	l.flush()
	return l.tokens
}

// flush 把缓冲区内容作为一个 token 输出
func (l *Lexer) flush() {
	if l.buf.Len() == 0 {
		return
	}
	text := l.buf.String()
	l.buf.Reset()
	l.tokens = append(l.tokens, Token{
		Type:    TOKEN_IDENT,
		Literal: text,
		Raw:     text,
		Line:    l.bufLine,
		Column:  l.bufColumn,
	})
}

// isWhitespace 只识别 ASCII 空白，多字节字符的后续字节原样进入缓冲区
func isWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// classify 后处理：关键字改写、数字分类、大小写规范化
func classify(tokens []Token) []Token {
	for i, tok := range tokens {
		if tok.Type == TOKEN_SYMBOL {
			continue
		}
		switch {
		case IsKeyword(tok.Raw):
			tokens[i].Type = TOKEN_KEYWORD
			tokens[i].Literal = KeywordPrefix + strings.ToUpper(tok.Raw)
		case IsDigits(tok.Raw):
			tokens[i].Type = TOKEN_NUMBER
			tokens[i].Literal = tok.Raw
		default:
			tokens[i].Literal = strings.ToUpper(tok.Raw)
		}
	}
	return tokens
}

// Tokenize 将输入字符串转换为 token 列表
// 词法阶段不会报错，无法识别的内容原样进入 token，由语法阶段处理
func Tokenize(input string) []Token {
	return classify(New(input).Run())
}
