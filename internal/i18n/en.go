package i18n

// enMessages contains English translations
var enMessages = map[string]string{
	// Parser errors
	ErrExpectedToken: "line %d:%d: expected %s, got %s",

	// Expression errors
	ErrExprTooFewOperands:   "malformed expression: operator '%s' needs two operands, %d available",
	ErrExprUnexpectedToken:  "malformed expression: unexpected token '%s'",
	ErrExprEmpty:            "malformed expression: empty expression",
	ErrExprUnbalanced:       "malformed expression: unbalanced parentheses",
	ErrExprDanglingOperands: "malformed expression: %d operands left without an operator",
	ErrExprDivideByZero:     "division by zero",
	ErrExprUndefinedVar:     "undefined variable '%s'",

	// Codegen errors
	ErrNestedFunction: "function '%s': nested function definitions are not supported by the C target",
	ErrMalformedFor:   "for loop condition '%s' has %d clauses, expected 3",
	ErrLoopCondition:  "%s loop condition: %v",
	ErrVarInitializer: "initializer of '%s': %v",

	// Config errors
	ErrUnknownTarget: "unknown build target '%s' (expected \"c\" or \"asm\")",

	// CLI - Usage and help
	MsgUsage:          "Usage: pank <command> [arguments]",
	MsgCommands:       "Commands:",
	MsgCmdBuild:       "  build    Compile a .pank source file to C or assembly",
	MsgCmdTokens:      "  tokens   Print the token stream of a .pank source file",
	MsgCmdCalc:        "  calc     Evaluate an arithmetic expression with the expression compiler",
	MsgCmdVersion:     "  version  Print version information",
	MsgCmdHelp:        "  help     Print this help message",
	MsgUseHelp:        "Use \"pank <command> -h\" for more information about a command.",
	MsgUnknownCommand: "Unknown command: %s",

	// CLI - Build command
	MsgBuildUsage:       "Usage: pank build [options] <input>",
	MsgBuildDescription: "Compile a .pank source file to C source (-target c) or x86 assembly (-target asm).",
	MsgBuildArgInput:    "  <input>    Input .pank file",
	MsgBuildOptOutput:   "Output file (default: input with .c or .asm extension)",
	MsgBuildOptTarget:   "Backend: c or asm",
	MsgBuildOptPlatform: "Target platform: windows, linux, darwin...",
	MsgBuildOptStrict:   "Report unparseable input instead of skipping it",
	MsgBuildOptVerbose:  "Verbose output",
	MsgBuildCompleted:   "Build completed: %s",
	MsgBuildCompletedV:  "Build completed. Output: %s (target: %s, platform: %s)",

	// CLI - Tokens command
	MsgTokensUsage:       "Usage: pank tokens <input>",
	MsgTokensDescription: "Print one token per line: line:column type literal.",

	// CLI - Calc command
	MsgCalcUsage:       "Usage: pank calc [options] <expression>",
	MsgCalcDescription: "Compile an arithmetic expression to a stack plan and evaluate it.",
	MsgCalcOptPlan:     "Print the evaluation plan",

	// CLI - Common errors
	ErrInputRequired:     "Error: input file is required",
	ErrCannotAccessInput: "cannot access input",
	ErrCannotLoadConfig:  "cannot load config",
	ErrCannotReadFile:    "cannot read file",
	ErrCompileError:      "compile error in %s",
	ErrCannotCreateDir:   "cannot create output directory",
	ErrCannotWriteFile:   "cannot write file",
	ErrInputIsDir:        "input %s is a directory, expected a .pank file",

	// CLI - Info messages
	MsgUsingConfig: "Using config: %s (project: %s)",
	MsgNoConfig:    "No pank.toml found, using defaults",
	MsgParsing:     "Parsing: %s",
	MsgCompiling:   "Compiling: %s -> %s",
	MsgNodeCount:   "Parsed %d top-level statements",
	MsgStrictMode:  "Strict parsing enabled",
	MsgNoEntry:     "no top-level function %s, the %s entry point does nothing useful",
}
