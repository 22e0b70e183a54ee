package i18n

// zhMessages contains Chinese translations
var zhMessages = map[string]string{
	// Parser errors
	ErrExpectedToken: "第 %d 行第 %d 列: 期望 %s, 实际是 %s",

	// Expression errors
	ErrExprTooFewOperands:   "表达式错误: 运算符 '%s' 需要两个操作数, 实际只有 %d 个",
	ErrExprUnexpectedToken:  "表达式错误: 无法识别的 token '%s'",
	ErrExprEmpty:            "表达式错误: 表达式为空",
	ErrExprUnbalanced:       "表达式错误: 括号不匹配",
	ErrExprDanglingOperands: "表达式错误: 有 %d 个操作数缺少运算符",
	ErrExprDivideByZero:     "除数为零",
	ErrExprUndefinedVar:     "未定义的变量 '%s'",

	// Codegen errors
	ErrNestedFunction: "函数 '%s': C 目标不支持嵌套函数定义",
	ErrMalformedFor:   "for 循环条件 '%s' 有 %d 段, 期望 3 段",
	ErrLoopCondition:  "%s 循环条件: %v",
	ErrVarInitializer: "'%s' 的初始化表达式: %v",

	// Config errors
	ErrUnknownTarget: "未知的编译目标 '%s' (可选 \"c\" 或 \"asm\")",

	// CLI - Usage and help
	MsgUsage:          "用法: pank <命令> [参数]",
	MsgCommands:       "命令:",
	MsgCmdBuild:       "  build    将 .pank 源文件编译为 C 或汇编",
	MsgCmdTokens:      "  tokens   输出 .pank 源文件的 token 序列",
	MsgCmdCalc:        "  calc     使用表达式编译器计算四则运算表达式",
	MsgCmdVersion:     "  version  显示版本信息",
	MsgCmdHelp:        "  help     显示帮助信息",
	MsgUseHelp:        "使用 \"pank <命令> -h\" 查看命令的详细帮助。",
	MsgUnknownCommand: "未知命令: %s",

	// CLI - Build command
	MsgBuildUsage:       "用法: pank build [选项] <输入>",
	MsgBuildDescription: "将 .pank 源文件编译为 C 源码 (-target c) 或 x86 汇编 (-target asm)。",
	MsgBuildArgInput:    "  <输入>    输入的 .pank 文件",
	MsgBuildOptOutput:   "输出文件 (默认: 输入文件名改为 .c 或 .asm 后缀)",
	MsgBuildOptTarget:   "后端: c 或 asm",
	MsgBuildOptPlatform: "目标平台: windows, linux, darwin...",
	MsgBuildOptStrict:   "遇到无法解析的输入时报错而不是跳过",
	MsgBuildOptVerbose:  "显示详细输出",
	MsgBuildCompleted:   "编译完成: %s",
	MsgBuildCompletedV:  "编译完成。输出: %s (目标: %s, 平台: %s)",

	// CLI - Tokens command
	MsgTokensUsage:       "用法: pank tokens <输入>",
	MsgTokensDescription: "每行输出一个 token: 行:列 类型 文本。",

	// CLI - Calc command
	MsgCalcUsage:       "用法: pank calc [选项] <表达式>",
	MsgCalcDescription: "将四则运算表达式编译为栈式计算计划并求值。",
	MsgCalcOptPlan:     "输出计算计划",

	// CLI - Common errors
	ErrInputRequired:     "错误: 需要指定输入文件",
	ErrCannotAccessInput: "无法访问输入",
	ErrCannotLoadConfig:  "无法加载配置",
	ErrCannotReadFile:    "无法读取文件",
	ErrCompileError:      "编译 %s 出错",
	ErrCannotCreateDir:   "无法创建输出目录",
	ErrCannotWriteFile:   "无法写入文件",
	ErrInputIsDir:        "输入 %s 是目录, 需要 .pank 文件",

	// CLI - Info messages
	MsgUsingConfig: "使用配置: %s (项目: %s)",
	MsgNoConfig:    "未找到 pank.toml, 使用默认配置",
	MsgParsing:     "正在解析: %s",
	MsgCompiling:   "正在编译: %s -> %s",
	MsgNodeCount:   "解析得到 %d 条顶层语句",
	MsgStrictMode:  "已启用严格解析",
	MsgNoEntry:     "没有顶层函数 %s, %s 目标的入口不会执行任何代码",
}
