package i18n

// Message keys for parser errors
const (
	// Parser errors
	ErrExpectedToken = "parser.expected_token" // args: line, column, expected, got
)

// Message keys for the expression compiler
const (
	ErrExprTooFewOperands   = "expr.too_few_operands" // args: operator, available
	ErrExprUnexpectedToken  = "expr.unexpected_token" // args: token
	ErrExprEmpty            = "expr.empty"
	ErrExprUnbalanced       = "expr.unbalanced_parens"
	ErrExprDanglingOperands = "expr.dangling_operands" // args: count
	ErrExprDivideByZero     = "expr.divide_by_zero"
	ErrExprUndefinedVar     = "expr.undefined_variable" // args: name
)

// Message keys for code generation
const (
	ErrNestedFunction = "codegen.nested_function" // args: funcName
	ErrMalformedFor   = "codegen.malformed_for"   // args: condition, clauses
	ErrLoopCondition  = "codegen.loop_condition"  // args: kind, error
	ErrVarInitializer = "codegen.var_initializer" // args: varName, error
)

// Message keys for configuration
const (
	ErrUnknownTarget = "config.unknown_target" // args: target
)

// Message keys for CLI
const (
	// Usage and help
	MsgUsage          = "cli.usage"
	MsgCommands       = "cli.commands"
	MsgCmdBuild       = "cli.cmd_build"
	MsgCmdTokens      = "cli.cmd_tokens"
	MsgCmdCalc        = "cli.cmd_calc"
	MsgCmdVersion     = "cli.cmd_version"
	MsgCmdHelp        = "cli.cmd_help"
	MsgUseHelp        = "cli.use_help"
	MsgUnknownCommand = "cli.unknown_command" // args: command

	// Build command
	MsgBuildUsage       = "cli.build_usage"
	MsgBuildDescription = "cli.build_description"
	MsgBuildArgInput    = "cli.build_arg_input"
	MsgBuildOptOutput   = "cli.build_opt_output"
	MsgBuildOptTarget   = "cli.build_opt_target"
	MsgBuildOptPlatform = "cli.build_opt_platform"
	MsgBuildOptStrict   = "cli.build_opt_strict"
	MsgBuildOptVerbose  = "cli.build_opt_verbose"
	MsgBuildCompleted   = "cli.build_completed"         // args: output
	MsgBuildCompletedV  = "cli.build_completed_verbose" // args: output, target, platform

	// Tokens command
	MsgTokensUsage       = "cli.tokens_usage"
	MsgTokensDescription = "cli.tokens_description"

	// Calc command
	MsgCalcUsage       = "cli.calc_usage"
	MsgCalcDescription = "cli.calc_description"
	MsgCalcOptPlan     = "cli.calc_opt_plan"

	// Common errors
	ErrInputRequired     = "cli.input_required"
	ErrCannotAccessInput = "cli.cannot_access_input"
	ErrCannotLoadConfig  = "cli.cannot_load_config"
	ErrCannotReadFile    = "cli.cannot_read_file"
	ErrCompileError      = "cli.compile_error" // args: path
	ErrCannotCreateDir   = "cli.cannot_create_dir"
	ErrCannotWriteFile   = "cli.cannot_write_file"
	ErrInputIsDir        = "cli.input_is_dir" // args: path

	// Info messages
	MsgUsingConfig = "cli.using_config" // args: configPath, project
	MsgNoConfig    = "cli.no_config"
	MsgParsing     = "cli.parsing"    // args: path
	MsgCompiling   = "cli.compiling"  // args: input, output
	MsgNodeCount   = "cli.node_count" // args: count
	MsgStrictMode  = "cli.strict_mode"
	MsgNoEntry     = "cli.no_entry" // args: function, target
)
