// Package i18n provides the message catalogs of the pank compiler.
//
// Every user-facing string (CLI text and the Error() text of parse, expression,
// codegen and config errors) is looked up here by key.
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Language represents a supported language
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// catalogs maps each language to its message table. English is the fallback.
var catalogs = map[Language]map[string]string{
	LangEnglish: enMessages,
	LangChinese: zhMessages,
}

// languageEnv lists the environment variables consulted, in priority order.
var languageEnv = []string{"PANK_LANG", "LC_ALL", "LANG", "LANGUAGE"}

var (
	mu          sync.RWMutex
	currentLang Language
	detected    bool
)

// Init detects the language from the environment unless one was already chosen.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	if !detected {
		currentLang = detectLanguage(os.Getenv)
		detected = true
	}
}

// SetLanguage overrides the detected language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := catalogs[lang]; !ok {
		lang = LangEnglish
	}
	currentLang = lang
	detected = true
}

// GetLanguage returns the current language.
func GetLanguage() Language {
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// T renders a message key in the current language, falling back to English
// and then to the key itself. Arguments are applied with fmt.Sprintf.
func T(key string, args ...any) string {
	template, ok := catalogs[GetLanguage()][key]
	if !ok {
		if template, ok = enMessages[key]; !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(template, args...)
	}
	return template
}

// ParseLanguage maps locale strings such as "zh_CN.UTF-8", "zh-TW" or "en"
// to a supported language. It returns "" when nothing matches.
func ParseLanguage(code string) Language {
	code = strings.ToLower(strings.TrimSpace(code))
	for lang := range catalogs {
		if strings.HasPrefix(code, string(lang)) {
			return lang
		}
	}
	return ""
}

// detectLanguage walks languageEnv through getenv. Windows consoles usually set
// none of them, so English is the default there as well.
func detectLanguage(getenv func(string) string) Language {
	for _, name := range languageEnv {
		if lang := ParseLanguage(getenv(name)); lang != "" {
			return lang
		}
	}
	return LangEnglish
}
