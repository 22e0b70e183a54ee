package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tangzhangming/pank/internal/i18n"
)

// buildCmd 编译 pank 源码到 C 或汇编
func buildCmd(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", i18n.T(i18n.MsgBuildOptOutput))
	targetName := fs.String("target", "", i18n.T(i18n.MsgBuildOptTarget))
	platform := fs.String("platform", "", i18n.T(i18n.MsgBuildOptPlatform))
	strict := fs.Bool("strict", false, i18n.T(i18n.MsgBuildOptStrict))
	verbose := fs.Bool("v", false, i18n.T(i18n.MsgBuildOptVerbose))

	fs.Usage = func() {
		fmt.Println(i18n.T(i18n.MsgBuildUsage))
		fmt.Println()
		fmt.Println(i18n.T(i18n.MsgBuildDescription))
		fmt.Println()
		fmt.Println("Arguments:")
		fmt.Println(i18n.T(i18n.MsgBuildArgInput))
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	// 只有显式给出的选项才覆盖 pank.toml
	flags := buildFlags{output: *output, verbose: *verbose}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "target":
			flags.target = targetName
		case "platform":
			flags.platform = platform
		case "strict":
			flags.strict = strict
		}
	})

	input := fs.Arg(0)
	result, err := compileInput(input, flags)
	if err != nil {
		if _, ok := err.(*inputRequiredError); ok {
			printError(err.Error())
			fs.Usage()
			os.Exit(1)
		}
		printError("Error: " + err.Error())
		os.Exit(1)
	}

	if !result.hasEntry {
		printWarning(i18n.T(i18n.MsgNoEntry, result.entry, result.target))
	}
	if *verbose {
		fmt.Println(i18n.T(i18n.MsgBuildCompletedV, result.output, result.target, result.platform))
	} else {
		fmt.Println(i18n.T(i18n.MsgBuildCompleted, result.output))
	}
}
