package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tangzhangming/pank/internal/compiler"
	"github.com/tangzhangming/pank/internal/config"
	"github.com/tangzhangming/pank/internal/i18n"
	"github.com/tangzhangming/pank/internal/parser"
	"github.com/tangzhangming/pank/internal/target"
)

// sourceExt 源文件扩展名
const sourceExt = ".pank"

// buildFlags 命令行选项，nil 表示沿用配置文件
type buildFlags struct {
	output   string
	target   *string
	platform *string
	strict   *bool
	verbose  bool
}

// buildResult 一次构建的结果
type buildResult struct {
	output   string
	target   string
	platform string
	entry    string
	hasEntry bool
}

// compileInput 编译输入文件；input 为空或为目录时使用 pank.toml 中的入口文件
func compileInput(input string, flags buildFlags) (*buildResult, error) {
	startDir := input
	if input == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &accessError{err: err}
		}
		startDir = cwd
	} else {
		info, err := os.Stat(input)
		if err != nil {
			return nil, &accessError{err: err}
		}
		if !info.IsDir() {
			startDir = filepath.Dir(input)
		}
	}

	// 查找并加载 pank.toml 配置
	cfg, configPath, err := config.FindAndLoad(startDir)
	if err != nil {
		return nil, &configError{err: err}
	}

	if flags.verbose {
		if configPath != "" {
			printInfo(i18n.T(i18n.MsgUsingConfig, configPath, cfg.Project.Name))
		} else {
			printInfo(i18n.T(i18n.MsgNoConfig))
		}
	}

	if input == "" || isDir(input) {
		entry := cfg.EntryFile(configPath)
		if entry == "" {
			if input != "" {
				return nil, &inputIsDirError{path: input}
			}
			return nil, &inputRequiredError{}
		}
		input = entry
	}

	applyFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return nil, &configError{err: err}
	}
	opts := compiler.OptionsFromConfig(cfg)

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultOutputPath(input, cfg.OutputDir(configPath), opts.Extension())
	}

	result, err := compileFile(input, outputPath, opts, flags.verbose)
	if err != nil {
		return nil, err
	}
	return &buildResult{
		output:   outputPath,
		target:   opts.Target,
		platform: opts.Platform.String(),
		entry:    strings.ToLower(opts.EntryFunction()),
		hasEntry: result.HasEntry,
	}, nil
}

// applyFlags 命令行选项覆盖配置
func applyFlags(cfg *config.Config, flags buildFlags) {
	if flags.target != nil {
		cfg.Build.Target = strings.ToLower(*flags.target)
	}
	if flags.platform != nil {
		cfg.Build.Platform = *flags.platform
	}
	if flags.strict != nil {
		cfg.Build.Strict = *flags.strict
	}
	cfg.Build.Platform = target.Parse(cfg.Build.Platform).String()
}

// defaultOutputPath 把 .pank 替换为目标扩展名，配置了输出目录时放到该目录下
func defaultOutputPath(input, outputDir, ext string) string {
	name := strings.TrimSuffix(input, sourceExt) + ext
	if outputDir != "" {
		return filepath.Join(outputDir, filepath.Base(name))
	}
	return name
}

// compileFile 编译单个文件并写入输出
func compileFile(inputFile, outputPath string, opts compiler.Options, verbose bool) (*compiler.Result, error) {
	if verbose {
		printInfo(i18n.T(i18n.MsgParsing, inputFile))
		if opts.Mode == parser.Strict {
			printInfo(i18n.T(i18n.MsgStrictMode))
		}
	}

	source, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, &readFileError{path: inputFile, err: err}
	}

	result, err := compiler.Compile(string(source), opts)
	if err != nil {
		return nil, &compileError{path: inputFile, err: err}
	}

	if verbose {
		printInfo(i18n.T(i18n.MsgNodeCount, result.Nodes))
		printInfo(i18n.T(i18n.MsgCompiling, inputFile, outputPath))
	}

	// 确保输出目录存在
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, &createDirError{path: outputDir, err: err}
	}

	// 写入输出文件
	if err := os.WriteFile(outputPath, []byte(result.Output), 0644); err != nil {
		return nil, &writeFileError{path: outputPath, err: err}
	}
	return result, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// 错误类型定义
type accessError struct {
	err error
}

func (e *accessError) Error() string {
	return fmt.Sprintf("%s: %v", i18n.T(i18n.ErrCannotAccessInput), e.err)
}

func (e *accessError) Unwrap() error { return e.err }

type configError struct {
	err error
}

func (e *configError) Error() string {
	return fmt.Sprintf("%s: %v", i18n.T(i18n.ErrCannotLoadConfig), e.err)
}

func (e *configError) Unwrap() error { return e.err }

type inputRequiredError struct{}

func (e *inputRequiredError) Error() string {
	return i18n.T(i18n.ErrInputRequired)
}

type inputIsDirError struct {
	path string
}

func (e *inputIsDirError) Error() string {
	return i18n.T(i18n.ErrInputIsDir, e.path)
}

type readFileError struct {
	path string
	err  error
}

func (e *readFileError) Error() string {
	return fmt.Sprintf("%s %s: %v", i18n.T(i18n.ErrCannotReadFile), e.path, e.err)
}

func (e *readFileError) Unwrap() error { return e.err }

type compileError struct {
	path string
	err  error
}

func (e *compileError) Error() string {
	return fmt.Sprintf("%s: %v", i18n.T(i18n.ErrCompileError, e.path), e.err)
}

func (e *compileError) Unwrap() error { return e.err }

type createDirError struct {
	path string
	err  error
}

func (e *createDirError) Error() string {
	return fmt.Sprintf("%s %s: %v", i18n.T(i18n.ErrCannotCreateDir), e.path, e.err)
}

func (e *createDirError) Unwrap() error { return e.err }

type writeFileError struct {
	path string
	err  error
}

func (e *writeFileError) Error() string {
	return fmt.Sprintf("%s %s: %v", i18n.T(i18n.ErrCannotWriteFile), e.path, e.err)
}

func (e *writeFileError) Unwrap() error { return e.err }
