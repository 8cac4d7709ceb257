package records

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 必需列名（大小写不敏感匹配）。
const (
	ColumnName  = "Name"
	ColumnID    = "ID"
	ColumnClass = "Class"
)

var integralFloat = regexp.MustCompile(`^(\d+)\.0+$`)

type columnIndex struct {
	name, id, class int
}

// indexHeader 在表头中定位三列必需字段，多余的列会被忽略。
func indexHeader(header []string) (columnIndex, error) {
	idx := columnIndex{name: -1, id: -1, class: -1}
	for i, cell := range header {
		switch strings.ToLower(cleanCell(cell)) {
		case "name":
			if idx.name < 0 {
				idx.name = i
			}
		case "id":
			if idx.id < 0 {
				idx.id = i
			}
		case "class":
			if idx.class < 0 {
				idx.class = i
			}
		}
	}
	var missing []string
	if idx.name < 0 {
		missing = append(missing, ColumnName)
	}
	if idx.id < 0 {
		missing = append(missing, ColumnID)
	}
	if idx.class < 0 {
		missing = append(missing, ColumnClass)
	}
	if len(missing) > 0 {
		return idx, &MissingColumnError{Columns: missing}
	}
	return idx, nil
}

func (c columnIndex) record(cells []string, row int) StudentRecord {
	return StudentRecord{
		Name:  cellAt(cells, c.name),
		ID:    normalizeID(cellAt(cells, c.id)),
		Class: cellAt(cells, c.class),
		Row:   row,
	}
}

// rowsToRecords 把二维单元格转换为记录：第一个非空行视为表头，完全空白的行跳过。
// 缺字段的行照常返回，由排版引擎报告 MalformedRecordError。
// lines[i] 是第 i 行在源文件中的行号；为 nil 时按 i+1 计。
func rowsToRecords(rows [][]string, lines []int) ([]StudentRecord, error) {
	headerAt := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, &MissingColumnError{Columns: []string{ColumnName, ColumnID, ColumnClass}}
	}
	idx, err := indexHeader(rows[headerAt])
	if err != nil {
		return nil, err
	}

	out := make([]StudentRecord, 0, len(rows)-headerAt-1)
	for i := headerAt + 1; i < len(rows); i++ {
		if blankRow(rows[i]) {
			continue
		}
		row := i + 1
		if i < len(lines) {
			row = lines[i]
		}
		out = append(out, idx.record(rows[i], row))
	}
	return out, nil
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cleanCell(cells[i])
}

func cleanCell(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeID 把数值单元格常见的 "1001.0" 还原为 "1001"。
func normalizeID(s string) string {
	if m := integralFloat.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
