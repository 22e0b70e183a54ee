package symbol

import (
	"sort"

	"github.com/tangzhangming/pank/internal/parser"
)

// SymbolKind 符号类型
type SymbolKind int

const (
	SymbolVar     SymbolKind = iota // 用户变量（含函数参数）
	SymbolTemp                      // 编译器生成的临时变量
	SymbolFunc                      // 函数
	SymbolLibrary                   // use 声明的动态库
)

// Symbol 表示一个符号
type Symbol struct {
	Name     string     // 规范化名称（库名保留源码拼写）
	Label    string     // 生成代码中使用的名称
	Kind     SymbolKind // 符号类型
	Params   int        // 参数个数（仅函数）
	TopLevel bool       // 是否在顶层声明（仅函数）
}

// Table 符号表，只在一次编译内有效
type Table struct {
	symbols map[string]*Symbol // key: kind.name
}

// New 创建一个新的符号表
func New() *Table {
	return &Table{
		symbols: make(map[string]*Symbol),
	}
}

// key 生成符号的键
func key(kind SymbolKind, name string) string {
	return string(rune('0'+kind)) + "." + name
}

// Add 添加一个符号，同名同类的符号只保留第一次声明
func (t *Table) Add(sym *Symbol) *Symbol {
	k := key(sym.Kind, sym.Name)
	if existing, ok := t.symbols[k]; ok {
		return existing
	}
	t.symbols[k] = sym
	return sym
}

// Get 获取一个符号
func (t *Table) Get(kind SymbolKind, name string) *Symbol {
	return t.symbols[key(kind, name)]
}

// Has 判断符号是否存在
func (t *Table) Has(kind SymbolKind, name string) bool {
	return t.Get(kind, name) != nil
}

// Len 返回符号数量
func (t *Table) Len() int {
	return len(t.symbols)
}

// GetByKind 获取指定类型的全部符号，按名称排序
func (t *Table) GetByKind(kinds ...SymbolKind) []*Symbol {
	var result []*Symbol
	for _, sym := range t.symbols {
		for _, kind := range kinds {
			if sym.Kind == kind {
				result = append(result, sym)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Label != result[j].Label {
			return result[i].Label < result[j].Label
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Collector 符号收集器：预扫描函数和库声明，包括嵌套的函数体和循环体
type Collector struct {
	table *Table
}

// NewCollector 创建符号收集器
func NewCollector(table *Table) *Collector {
	return &Collector{table: table}
}

// CollectNodes 收集一个作用域内的声明
func (c *Collector) CollectNodes(nodes []parser.Node, depth int) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *parser.Function:
			sym := c.table.Add(&Symbol{
				Name:     n.Name,
				Label:    n.Name,
				Kind:     SymbolFunc,
				Params:   len(n.Params),
				TopLevel: depth == 0,
			})
			// 嵌套声明先出现时，顶层声明仍然使其成为顶层函数
			if depth == 0 && !sym.TopLevel {
				sym.TopLevel = true
				sym.Params = len(n.Params)
			}
			c.CollectNodes(parser.Parse(n.Body), depth+1)
		case *parser.Loop:
			c.CollectNodes(parser.Parse(n.Body), depth+1)
		case *parser.Use:
			c.table.Add(&Symbol{Name: n.DllName, Label: n.DllName, Kind: SymbolLibrary})
		case *parser.VarDeclaration, *parser.DllCall, *parser.Print, *parser.Input:
		}
	}
}

// Collect 从顶层节点构建符号表
func Collect(nodes []parser.Node) *Table {
	table := New()
	NewCollector(table).CollectNodes(nodes, 0)
	return table
}
