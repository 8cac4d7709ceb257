// Package binding 负责卡片文字模板中 ${Field} 占位符的替换。
package binding

import (
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Values 是占位符名到取值的映射，名称区分大小写。
type Values map[string]string

// Interpolate 将文本中的 ${Name} 替换为 values 中的值。
// 若 values 为空或名称不存在，则保留原占位符。
func Interpolate(text string, values Values) string {
	if len(values) == 0 {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderName(match)
		if name == "" {
			return match
		}
		if val, ok := values[name]; ok {
			return val
		}
		return match
	})
}

// Placeholders 按出现顺序返回模板中引用的占位符名（去重）。
func Placeholders(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, match := range exprPattern.FindAllString(text, -1) {
		name := placeholderName(match)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Unresolved 返回模板中 values 无法提供的占位符名。
func Unresolved(text string, values Values) []string {
	var out []string
	for _, name := range Placeholders(text) {
		if _, ok := values[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

func placeholderName(match string) string {
	groups := exprPattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return ""
	}
	return strings.TrimSpace(groups[1])
}
