package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/lexer"
)

// tokensCmd 输出源文件的 token 序列
func tokensCmd(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println(i18n.T(i18n.MsgTokensUsage))
		fmt.Println()
		fmt.Println(i18n.T(i18n.MsgTokensDescription))
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		printError(i18n.T(i18n.ErrInputRequired))
		fs.Usage()
		os.Exit(1)
	}

	input := fs.Arg(0)
	source, err := os.ReadFile(input)
	if err != nil {
		printError("Error: " + (&readFileError{path: input, err: err}).Error())
		os.Exit(1)
	}
	writeTokens(os.Stdout, lexer.Tokenize(string(source)))
}

// writeTokens 每行一个 token：行:列 类型 文本
func writeTokens(w io.Writer, tokens []lexer.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", tok.Line, tok.Column, lexer.TokenTypeName(tok.Type), tok.String())
	}
}
