package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tangzhangming/pank/internal/expr"
	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/lexer"
)

// calcCmd 用表达式编译器计算一个四则运算表达式
func calcCmd(args []string) {
	fs := flag.NewFlagSet("calc", flag.ExitOnError)
	showPlan := fs.Bool("plan", false, i18n.T(i18n.MsgCalcOptPlan))

	fs.Usage = func() {
		fmt.Println(i18n.T(i18n.MsgCalcUsage))
		fmt.Println()
		fmt.Println(i18n.T(i18n.MsgCalcDescription))
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	if err := calc(os.Stdout, strings.Join(fs.Args(), " "), *showPlan); err != nil {
		printError("Error: " + err.Error())
		os.Exit(1)
	}
}

// calc 编译并求值，showPlan 时先输出求值计划
func calc(w io.Writer, source string, showPlan bool) error {
	plan, err := expr.Compile(lexer.Tokenize(source), &expr.Counter{Prefix: "T_"})
	if err != nil {
		return err
	}
	if showPlan {
		fmt.Fprintln(w, plan.String())
	}

	value, err := plan.Evaluate(nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, value)
	return nil
}
