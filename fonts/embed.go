// Package fonts 提供 canvas 渲染器使用的内置衬线字体（Latin Modern Roman 10）。
package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
)

// 内置字体名。
const (
	Regular = "lmroman10-regular"
	Bold    = "lmroman10-bold"
)

var builtin = map[string][]byte{
	Regular: lmroman10regular.TTF,
	Bold:    lmroman10bold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:lmroman10-bold" 或直接 "lmroman10-bold"。
func Load(name string) ([]byte, error) {
	clean := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	data, ok := builtin[clean]
	if !ok || len(data) == 0 {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
	}
	return data, nil
}

// ForWeight 按字重返回对应的内置字体名。
func ForWeight(bold bool) string {
	if bold {
		return Bold
	}
	return Regular
}
