// Package records 负责从表格类外部输入中读取学生记录（Name / ID / Class）。
package records

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StudentRecord 表示表格中的一行学生数据。读取后不再修改，按值传递给排版引擎。
type StudentRecord struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Class string `json:"class"`
	Row   int    `json:"row"` // 源表格中的行号（从 1 开始），仅用于错误定位
}

// Missing 返回空白的必填字段名，顺序固定为 Name、ID、Class。
func (r StudentRecord) Missing() []string {
	var out []string
	if strings.TrimSpace(r.Name) == "" {
		out = append(out, ColumnName)
	}
	if strings.TrimSpace(r.ID) == "" {
		out = append(out, ColumnID)
	}
	if strings.TrimSpace(r.Class) == "" {
		out = append(out, ColumnClass)
	}
	return out
}

// Source 提供有序的学生记录序列，顺序与输入保持一致。
type Source interface {
	Records() ([]StudentRecord, error)
}

var (
	_ Source = (*XLSXSource)(nil)
	_ Source = (*CSVSource)(nil)
	_ Source = Slice(nil)
)

// Slice 将内存中的记录直接作为 Source 使用。
type Slice []StudentRecord

// Records 返回记录副本。
func (s Slice) Records() ([]StudentRecord, error) {
	out := make([]StudentRecord, len(s))
	copy(out, s)
	return out, nil
}

// Open 按扩展名选择读取器：.xlsx/.xlsm 使用 excelize，.csv 使用 encoding/csv。
// sheet 仅对 xlsx 生效，为空时读取第一个工作表。
func Open(path, sheet string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewXLSXSource(path, sheet), nil
	case ".csv":
		return NewCSVSource(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load 是 Open + Records 的便捷组合。
func Load(path, sheet string) ([]StudentRecord, error) {
	src, err := Open(path, sheet)
	if err != nil {
		return nil, err
	}
	return src.Records()
}
