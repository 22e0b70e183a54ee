package transpiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tangzhangming/pank/internal/lexer"
	"github.com/tangzhangming/pank/internal/parser"
	"github.com/tangzhangming/pank/internal/symbol"
	"github.com/tangzhangming/pank/internal/target"
)

// EntryFunction C 目标的入口函数名（规范化后）
const EntryFunction = "HOI"

// indentUnit 生成代码的缩进
const indentUnit = "    "

// baseIncludes 固定包含的头文件
var baseIncludes = []string{"<stdio.h>", "<stdlib.h>", "<string.h>"}

// CodeGen C 代码生成器
type CodeGen struct {
	platform  target.Platform
	includes  []string // 构造时确定，已排序
	strictFor bool

	builder  strings.Builder
	indent   int
	table    *symbol.Table
	dllCalls int // 已生成的库调用数量，用作变量名后缀
}

// NewCodeGen 创建一个新的代码生成器
func NewCodeGen(platform target.Platform, opts ...Option) *CodeGen {
	g := &CodeGen{platform: platform}
	for _, opt := range opts {
		opt(g)
	}

	includes := append([]string{}, baseIncludes...)
	includes = append(includes, platform.LoaderHeader())
	sort.Strings(includes)
	g.includes = includes
	return g
}

// Platform 返回目标平台
func (g *CodeGen) Platform() target.Platform {
	return g.platform
}

// Generate 生成 C 代码
func (g *CodeGen) Generate(nodes []parser.Node) (string, error) {
	g.builder.Reset()

	// 重置状态
	g.indent = 0
	g.dllCalls = 0

	// 预扫描，收集函数和库声明
	g.table = symbol.Collect(nodes)
	if err := g.validate(nodes); err != nil {
		return "", err
	}

	for _, inc := range g.includes {
		g.writeLine("#include " + inc)
	}
	g.writeLine("")

	if g.needsLoader(nodes) {
		g.generateLoader()
		g.writeLine("")
	}

	for _, node := range nodes {
		g.generateStatement(node)
	}

	g.generateMain()
	return g.builder.String(), nil
}

// needsLoader 是否引用了动态库（任意深度）
func (g *CodeGen) needsLoader(nodes []parser.Node) bool {
	if len(g.table.GetByKind(symbol.SymbolLibrary)) > 0 {
		return true
	}
	return containsDllCall(nodes)
}

func containsDllCall(nodes []parser.Node) bool {
	for _, node := range nodes {
		switch n := node.(type) {
		case *parser.DllCall:
			return true
		case *parser.Function:
			if containsDllCall(parser.Parse(n.Body)) {
				return true
			}
		case *parser.Loop:
			if containsDllCall(parser.Parse(n.Body)) {
				return true
			}
		}
	}
	return false
}

// generateLoader 生成 load_dll / get_dll_func / close_dll
func (g *CodeGen) generateLoader() {
	g.writeLine("typedef void (*DLL_Func)();")
	if g.platform.Windows() {
		g.writeBlock("void* load_dll(const char* dll_name) {", "return (void*)LoadLibraryA(dll_name);")
		g.writeBlock("DLL_Func get_dll_func(void* dll, const char* func_name) {", "return (DLL_Func)GetProcAddress((HMODULE)dll, func_name);")
		g.writeBlock("void close_dll(void* dll) {", "FreeLibrary((HMODULE)dll);")
		return
	}
	g.writeBlock("void* load_dll(const char* dll_name) {", "return dlopen(dll_name, RTLD_LAZY);")
	g.writeBlock("DLL_Func get_dll_func(void* dll, const char* func_name) {", "return (DLL_Func)dlsym(dll, func_name);")
	g.writeBlock("void close_dll(void* dll) {", "dlclose(dll);")
}

// generateMain 生成入口函数
func (g *CodeGen) generateMain() {
	g.writeLine("int main() {")
	g.indent++
	if entry := g.table.Get(symbol.SymbolFunc, EntryFunction); entry != nil && entry.TopLevel {
		g.writeLine(entry.Label + "();")
	}
	g.writeLine("return 0;")
	g.indent--
	g.writeLine("}")
}

// generateStatement 生成语句
func (g *CodeGen) generateStatement(node parser.Node) {
	switch n := node.(type) {
	case *parser.Function:
		g.generateFunction(n)
	case *parser.VarDeclaration:
		g.generateVarDeclaration(n)
	case *parser.Loop:
		g.generateLoop(n)
	case *parser.Use:
		// 只影响预扫描
	case *parser.DllCall:
		g.generateDllCall(n)
	case *parser.Print:
		g.generatePrint(n)
	case *parser.Input:
		g.generateInput(n)
	}
}

// generateBody 重新解析并生成函数体或循环体
func (g *CodeGen) generateBody(body []lexer.Token) {
	g.indent++
	for _, node := range parser.Parse(body) {
		g.generateStatement(node)
	}
	g.indent--
}

// generateFunction 生成函数定义
func (g *CodeGen) generateFunction(fn *parser.Function) {
	returnType := "void"
	if fn.ReturnType != "" {
		returnType = strings.ToLower(fn.ReturnType)
	}

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = "int " + p
	}

	g.writeLine(fmt.Sprintf("%s %s(%s) {", returnType, fn.Name, strings.Join(params, ", ")))
	g.generateBody(fn.Body)
	if returnType != "void" {
		g.indent++
		g.writeLine("return 0;")
		g.indent--
	}
	g.writeLine("}")
	g.writeLine("")
}

// generateVarDeclaration 生成变量声明，只使用第一个值 token
func (g *CodeGen) generateVarDeclaration(decl *parser.VarDeclaration) {
	g.writeLine(fmt.Sprintf("int %s = %s;", decl.Name, initializer(decl)))
}

// initializer 初始值文本，"- N" 视为一个负数字面量
func initializer(decl *parser.VarDeclaration) string {
	if decl.Value.Is("-") && len(decl.Trailing) > 0 && decl.Trailing[0].Type == lexer.TOKEN_NUMBER {
		return "-" + decl.Trailing[0].Literal
	}
	return tokenText(decl.Value)
}

// generateLoop 生成 while / for 循环
func (g *CodeGen) generateLoop(loop *parser.Loop) {
	cond := conditionText(loop.Condition)
	if loop.Kind == parser.LoopWhile {
		g.writeLine(fmt.Sprintf("while (%s) {", cond))
		g.generateBody(loop.Body)
		g.writeLine("}")
		return
	}

	clauses, ok := splitFor(cond)
	if !ok {
		// 头部不完整时只生成循环体
		for _, node := range parser.Parse(loop.Body) {
			g.generateStatement(node)
		}
		return
	}
	g.writeLine(fmt.Sprintf("for (%s; %s; %s) {", clauses[0], clauses[1], clauses[2]))
	g.generateBody(loop.Body)
	g.writeLine("}")
}

// splitFor 把 for 条件拆分为 init / test / step 三段
func splitFor(cond string) ([]string, bool) {
	parts := strings.Split(cond, ";")
	if len(parts) != 3 {
		return parts, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

// generatePrint 整数字面量用 %d 打印，其他参数按规范化文本打印
func (g *CodeGen) generatePrint(p *parser.Print) {
	if p.Arg.Type == lexer.TOKEN_NUMBER {
		g.writeLine(fmt.Sprintf("printf(\"%%d\", %s);", p.Arg.Literal))
		return
	}
	g.writeLine(fmt.Sprintf("printf(\"%s\");", escapeFormat(p.Arg.Literal)))
}

// generateInput 读取一行并转换为整数
func (g *CodeGen) generateInput(in *parser.Input) {
	buf := in.VarName + "_input"
	g.writeLine("{")
	g.indent++
	g.writeLine(fmt.Sprintf("char %s[256];", buf))
	g.writeLine(fmt.Sprintf("fgets(%s, sizeof(%s), stdin);", buf, buf))
	g.writeLine(fmt.Sprintf("%s[strcspn(%s, \"\\n\")] = 0;", buf, buf))
	g.writeLine(fmt.Sprintf("%s = atoi(%s);", in.VarName, buf))
	g.indent--
	g.writeLine("}")
}

// generateDllCall 加载库、查找函数、调用、关闭
// 所有库调用共用一个递增后缀，同一作用域内的句柄和函数变量不会重名
func (g *CodeGen) generateDllCall(call *parser.DllCall) {
	n := g.dllCalls
	g.dllCalls++

	dllVar := fmt.Sprintf("%s_dll_%d", cIdent(call.DllName), n)
	funcVar := fmt.Sprintf("%s_%s_func_%d", cIdent(call.DllName), cIdent(call.FuncName), n)

	g.writeLine(fmt.Sprintf("void* %s = load_dll(\"%s\");", dllVar, escapeString(g.platform.LibraryFile(call.DllName))))
	g.writeLine(fmt.Sprintf("if (%s) {", dllVar))
	g.indent++
	g.writeLine(fmt.Sprintf("DLL_Func %s = get_dll_func(%s, \"%s\");", funcVar, dllVar, escapeString(call.FuncName)))
	g.writeLine(fmt.Sprintf("if (%s) %s();", funcVar, funcVar))
	g.writeLine(fmt.Sprintf("close_dll(%s);", dllVar))
	g.indent--
	g.writeLine("}")
}

// tokenText token 在 C 代码中的文本
func tokenText(tok lexer.Token) string {
	if tok.Type == lexer.TOKEN_KEYWORD {
		return tok.Raw
	}
	return tok.Literal
}

// conditionText 以空格连接条件 token
func conditionText(tokens []lexer.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tokenText(tok)
	}
	return strings.Join(parts, " ")
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escapeString 转义 C 字符串字面量
func escapeString(s string) string {
	return stringEscaper.Replace(s)
}

// escapeFormat 转义 printf 格式串
func escapeFormat(s string) string {
	return strings.ReplaceAll(escapeString(s), "%", "%%")
}

// cIdent 把外部名称转换为合法的 C 标识符片段
func cIdent(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// writeBlock 写入只有一条语句的块
func (g *CodeGen) writeBlock(header, stmt string) {
	g.writeLine(header)
	g.indent++
	g.writeLine(stmt)
	g.indent--
	g.writeLine("}")
}

// write 写入内容
func (g *CodeGen) write(s string) {
	g.builder.WriteString(s)
}

// writeLine 写入一行
func (g *CodeGen) writeLine(s string) {
	if s == "" {
		g.write("\n")
		return
	}
	g.writeIndent()
	g.write(s)
	g.write("\n")
}

// writeIndent 写入缩进
func (g *CodeGen) writeIndent() {
	for i := 0; i < g.indent; i++ {
		g.write(indentUnit)
	}
}
