// Package report 以纯文本表格输出准考证的分页计划，便于在终端核对。
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth 限制单元格的显示宽度，超出部分以 "..." 截断。
const maxCellWidth = 32

// Table 是一个简单的等行高文本表格。
type Table struct {
	Header []string
	Rows   [][]string
	// Right 标记需要右对齐的列（数字列）。
	Right map[int]bool
}

// Render renders the table to an ASCII string.
func (t *Table) Render() string {
	cols := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := range row {
			if w := displayWidth(clip(row[i])); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	var sb strings.Builder
	sep := separator(widths)
	sb.WriteString(sep)
	if len(t.Header) > 0 {
		t.writeRow(&sb, t.Header, widths)
		sb.WriteString(sep)
	}
	for _, row := range t.Rows {
		t.writeRow(&sb, row, widths)
	}
	if len(t.Rows) > 0 {
		sb.WriteString(sep)
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, row []string, widths []int) {
	sb.WriteString("|")
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = clip(row[i])
		}
		pad := strings.Repeat(" ", w-displayWidth(cell))
		sb.WriteString(" ")
		if t.Right[i] {
			sb.WriteString(pad + cell)
		} else {
			sb.WriteString(cell + pad)
		}
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func separator(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	return sb.String()
}

func clip(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, maxCellWidth, "...")
}

// displayWidth calculates the display width of a string using go-runewidth,
// so CJK names (width 2) keep the columns aligned.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
