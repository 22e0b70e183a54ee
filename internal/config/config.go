package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tangzhangming/pank/internal/i18n"
)

// FileName 项目配置文件名
const FileName = "pank.toml"

// 构建目标
const (
	TargetC   = "c"
	TargetAsm = "asm"
)

// Config pank 项目配置
type Config struct {
	Project ProjectConfig `toml:"project"`
	Build   BuildConfig   `toml:"build"`
}

// ProjectConfig 项目配置
type ProjectConfig struct {
	Name    string `toml:"name"`
	File    string `toml:"file"`   // 入口源文件，相对于配置文件所在目录
	Output  string `toml:"output"` // 输出目录
	Author  string `toml:"author"`
	Version string `toml:"version"`
}

// BuildConfig 构建配置
type BuildConfig struct {
	Target    string `toml:"target"`     // "c" 或 "asm"
	Platform  string `toml:"platform"`   // 为空表示当前平台
	Strict    bool   `toml:"strict"`     // 严格语法模式
	StrictFor bool   `toml:"strict_for"` // for 头部不完整时报错
}

// ConfigError 配置错误
type ConfigError struct {
	Key  string
	Args []any
}

func (e *ConfigError) Error() string {
	return i18n.T(e.Key, e.Args...)
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Name:    "app",
			File:    "main.pank",
			Version: "0.1.0",
		},
		Build: BuildConfig{
			Target: TargetC,
		},
	}
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	switch c.Build.Target {
	case TargetC, TargetAsm:
		return nil
	}
	return &ConfigError{Key: i18n.ErrUnknownTarget, Args: []any{c.Build.Target}}
}

// FindAndLoad 从指定目录向上查找 pank.toml 并加载
func FindAndLoad(startDir string) (*Config, string, error) {
	configPath := FindConfigFile(startDir)
	if configPath == "" {
		// 没找到配置文件，返回默认配置
		return DefaultConfig(), "", nil
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

// FindConfigFile 从指定目录向上查找 pank.toml
func FindConfigFile(startDir string) string {
	dir := startDir

	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// 获取父目录
		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到根目录
			return ""
		}
		dir = parent
	}
}

// Load 加载配置文件，未设置的字段使用默认值
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, err
	}
	config.Build.Target = strings.ToLower(strings.TrimSpace(config.Build.Target))
	if config.Build.Target == "" {
		config.Build.Target = TargetC
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetProjectRoot 获取项目根目录（pank.toml 所在目录）
func GetProjectRoot(configPath string) string {
	if configPath == "" {
		return ""
	}
	return filepath.Dir(configPath)
}

// EntryFile 入口源文件的绝对路径，没有配置文件时返回空
func (c *Config) EntryFile(configPath string) string {
	if configPath == "" || c.Project.File == "" {
		return ""
	}
	if filepath.IsAbs(c.Project.File) {
		return c.Project.File
	}
	return filepath.Join(GetProjectRoot(configPath), c.Project.File)
}

// OutputDir 输出目录的绝对路径，未配置时返回空
func (c *Config) OutputDir(configPath string) string {
	if configPath == "" || c.Project.Output == "" {
		return ""
	}
	if filepath.IsAbs(c.Project.Output) {
		return c.Project.Output
	}
	return filepath.Join(GetProjectRoot(configPath), c.Project.Output)
}
