// Package target 描述编译目标平台
package target

import (
	"runtime"
	"strings"
)

// Platform 目标平台
type Platform struct {
	OS string // GOOS 风格的名称，如 "windows"、"linux"
}

// Host 返回当前运行平台
func Host() Platform {
	return Platform{OS: runtime.GOOS}
}

// Parse 解析平台名称，空字符串表示当前平台
func Parse(name string) Platform {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Host()
	}
	return Platform{OS: name}
}

// Windows 是否为 Windows 平台
func (p Platform) Windows() bool {
	return p.OS == "windows"
}

// String 返回平台名称
func (p Platform) String() string {
	return p.OS
}

// LibrarySuffix 动态库文件后缀
func (p Platform) LibrarySuffix() string {
	if p.Windows() {
		return ".dll"
	}
	return ".so"
}

// LibraryFile 为没有后缀的库名追加平台后缀，已有后缀时保持不变
func (p Platform) LibraryFile(name string) string {
	if strings.HasSuffix(name, ".dll") || strings.HasSuffix(name, ".so") {
		return name
	}
	return name + p.LibrarySuffix()
}

// LoaderHeader 动态加载所需的头文件
func (p Platform) LoaderHeader() string {
	if p.Windows() {
		return "<windows.h>"
	}
	return "<dlfcn.h>"
}
