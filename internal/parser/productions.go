package parser

import (
	"strings"

	"github.com/tangzhangming/pank/internal/lexer"
)

// production 尝试从 tokens 开头识别一条语句
// 返回 (节点, 剩余 token, nil) 表示匹配；(nil, nil, nil) 表示首 token 不符合；
// (nil, nil, err) 表示首 token 符合但后续结构不完整
type production func(tokens []lexer.Token) (Node, []lexer.Token, *ParseError)

// productions 优先级固定，顺序决定了歧义前缀的解析结果
var productions = []production{
	parseFunction,
	parseVarDeclaration,
	parseLoop,
	parseUse,
	parseDllCall,
	parsePrint,
	parseInput,
}

// returnTypeMarker 返回类型注解的标记
const returnTypeMarker = ":"

// parseFunction def NAME [: TYPE] [( a, b )] { body }
func parseFunction(tokens []lexer.Token) (Node, []lexer.Token, *ParseError) {
	if !tokens[0].Is(lexer.KEYWORD_DEF) {
		return nil, nil, nil
	}
	if len(tokens) < 2 || !tokens[1].IsIdent() {
		return nil, nil, errorAt(tokens, 1, "function name")
	}

	fn := &Function{Token: tokens[0], Name: tokens[1].Literal}
	rest := tokens[2:]
	base := 2

	// 允许 "NAME:" 粘连的写法
	if strings.HasSuffix(fn.Name, returnTypeMarker) && len(fn.Name) > 1 {
		fn.Name = strings.TrimSuffix(fn.Name, returnTypeMarker)
		if len(rest) == 0 || !rest[0].IsIdent() {
			return nil, nil, errorAt(tokens, base, "return type")
		}
		fn.ReturnType = rest[0].Literal
		rest = rest[1:]
		base++
	} else if len(rest) > 0 && rest[0].Is(returnTypeMarker) {
		if len(rest) < 2 || !rest[1].IsIdent() {
			return nil, nil, errorAt(tokens, base+1, "return type")
		}
		fn.ReturnType = rest[1].Literal
		rest = rest[2:]
		base += 2
	}

	if len(rest) > 0 && rest[0].Is("(") {
		i := 1
		for i < len(rest) && !rest[i].Is(")") {
			switch {
			case rest[i].Is(","):
			case rest[i].IsIdent():
				fn.Params = append(fn.Params, rest[i].Literal)
			default:
				return nil, nil, errorAt(tokens, base+i, "parameter name")
			}
			i++
		}
		if i >= len(rest) {
			return nil, nil, errorAt(tokens, base+i, ")")
		}
		rest = rest[i+1:]
		base += i + 1
	}

	if len(rest) == 0 || !rest[0].Is("{") {
		return nil, nil, errorAt(tokens, base, "{")
	}
	end, ok := matchBrace(rest, 0)
	if !ok {
		return nil, nil, errorAt(tokens, len(tokens), "}")
	}
	fn.Body = rest[1:end]
	fn.Remaining = rest[end+1:]
	return fn, fn.Remaining, nil
}

// parseVarDeclaration var NAME = VALUE trailing...
func parseVarDeclaration(tokens []lexer.Token) (Node, []lexer.Token, *ParseError) {
	if !tokens[0].Is(lexer.KEYWORD_VAR) {
		return nil, nil, nil
	}
	if len(tokens) < 2 || !tokens[1].IsIdent() {
		return nil, nil, errorAt(tokens, 1, "variable name")
	}
	if len(tokens) < 3 || !tokens[2].Is("=") {
		return nil, nil, errorAt(tokens, 2, "=")
	}
	if len(tokens) < 4 {
		return nil, nil, errorAt(tokens, 3, "value")
	}

	end := scanExpression(tokens[3:]) + 3
	decl := &VarDeclaration{
		Token:    tokens[0],
		Name:     tokens[1].Literal,
		Value:    tokens[3],
		Trailing: tokens[4:end],
	}
	// 紧随其后的 ; 作为语句边界被吃掉
	if end < len(tokens) && tokens[end].Is(";") {
		end++
	}
	decl.Remaining = tokens[end:]
	return decl, decl.Remaining, nil
}

// parseLoop (while|for) cond... { body }
func parseLoop(tokens []lexer.Token) (Node, []lexer.Token, *ParseError) {
	var kind LoopKind
	switch {
	case tokens[0].Is(lexer.KEYWORD_WHILE):
		kind = LoopWhile
	case tokens[0].Is(lexer.KEYWORD_FOR):
		kind = LoopFor
	default:
		return nil, nil, nil
	}

	open := -1
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Is("{") {
			open = i
			break
		}
	}
	if open < 0 {
		return nil, nil, errorAt(tokens, len(tokens), "{")
	}
	end, ok := matchBrace(tokens, open)
	if !ok {
		return nil, nil, errorAt(tokens, len(tokens), "}")
	}
	loop := &Loop{
		Token:     tokens[0],
		Kind:      kind,
		Condition: tokens[1:open],
		Body:      tokens[open+1 : end],
		Remaining: tokens[end+1:],
	}
	return loop, loop.Remaining, nil
}

// parseUse use NAME
func parseUse(tokens []lexer.Token) (Node, []lexer.Token, *ParseError) {
	if !tokens[0].Is(lexer.KEYWORD_USE) {
		return nil, nil, nil
	}
	if len(tokens) < 2 || !tokens[1].IsIdent() {
		return nil, nil, errorAt(tokens, 1, "library name")
	}
	use := &Use{Token: tokens[0], DllName: tokens[1].Raw, Remaining: tokens[2:]}
	return use, use.Remaining, nil
}

// parseDllCall LIB.FUNC
func parseDllCall(tokens []lexer.Token) (Node, []lexer.Token, *ParseError) {
	if len(tokens) < 2 || !tokens[0].IsIdent() || !tokens[1].Is(".") {
		return nil, nil, nil
	}
	// 导出函数名可以与关键字同名，例如 console.print
	if len(tokens) < 3 || (!tokens[2].IsIdent() && tokens[2].Type != lexer.TOKEN_KEYWORD) {
		return nil, nil, errorAt(tokens, 2, "function name")
	}
	call := &DllCall{
		Token:     tokens[0],
		DllName:   tokens[0].Raw,
		FuncName:  tokens[2].Raw,
		Remaining: tokens[3:],
	}
	return call, call.Remaining, nil
}

// parsePrint print ARG
func parsePrint(tokens []lexer.Token) (Node, []lexer.Token, *ParseError) {
	if !tokens[0].Is(lexer.KEYWORD_PRINT) {
		return nil, nil, nil
	}
	if len(tokens) < 2 {
		return nil, nil, errorAt(tokens, 1, "argument")
	}
	arg := tokens[1]
	rest := tokens[2:]
	switch {
	case arg.Is("-") && len(tokens) > 2 && tokens[2].Type == lexer.TOKEN_NUMBER:
		// 负数字面量
		num := tokens[2]
		arg = lexer.Token{
			Type:    lexer.TOKEN_NUMBER,
			Literal: "-" + num.Literal,
			Raw:     "-" + num.Raw,
			Line:    arg.Line,
			Column:  arg.Column,
		}
		rest = tokens[3:]
	case arg.Type == lexer.TOKEN_IDENT, arg.Type == lexer.TOKEN_NUMBER:
	default:
		return nil, nil, errorAt(tokens, 1, "argument")
	}
	pr := &Print{Token: tokens[0], Arg: arg, Remaining: rest}
	return pr, pr.Remaining, nil
}

// parseInput input NAME
func parseInput(tokens []lexer.Token) (Node, []lexer.Token, *ParseError) {
	if !tokens[0].Is(lexer.KEYWORD_INPUT) {
		return nil, nil, nil
	}
	if len(tokens) < 2 || !tokens[1].IsIdent() {
		return nil, nil, errorAt(tokens, 1, "variable name")
	}
	in := &Input{Token: tokens[0], VarName: tokens[1].Literal, Remaining: tokens[2:]}
	return in, in.Remaining, nil
}

// matchBrace 从 tokens[open]（必须是 {）开始做花括号计数，返回匹配的 } 下标
func matchBrace(tokens []lexer.Token, open int) (int, bool) {
	depth := 1
	for i := open + 1; i < len(tokens); i++ {
		switch {
		case tokens[i].Is("{"):
			depth++
		case tokens[i].Is("}"):
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// isOperator 判断是否为四则运算符
func isOperator(tok lexer.Token) bool {
	if tok.Type != lexer.TOKEN_SYMBOL {
		return false
	}
	switch tok.Literal {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// isOperand 判断是否可以作为表达式操作数
func isOperand(tok lexer.Token) bool {
	return tok.Type == lexer.TOKEN_NUMBER || tok.Type == lexer.TOKEN_IDENT
}

// scanExpression 从 tokens[0]（初始化值）开始，返回表达式延续到的位置（不含）
// 运算符之后或 ( 之后需要操作数；括号未闭合时 ) 也属于表达式
func scanExpression(tokens []lexer.Token) int {
	depth := 0
	expectOperand := false
	switch {
	case tokens[0].Is("("):
		depth = 1
		expectOperand = true
	case tokens[0].Is("-"):
		expectOperand = true
	}

	i := 1
	for i < len(tokens) {
		tok := tokens[i]
		if expectOperand {
			if tok.Is("(") {
				depth++
			} else if tok.Is("-") {
				// 一元负号
			} else if isOperand(tok) {
				expectOperand = false
			} else {
				break
			}
		} else {
			if isOperator(tok) {
				expectOperand = true
			} else if tok.Is(")") && depth > 0 {
				depth--
			} else {
				break
			}
		}
		i++
	}
	return i
}
