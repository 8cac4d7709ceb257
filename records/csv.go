package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVSource 读取逗号分隔的文本表格，兼容带 BOM 的 UTF-8 / UTF-16 导出文件。
type CSVSource struct {
	path   string
	reader io.Reader
}

// NewCSVSource 从文件路径读取。
func NewCSVSource(path string) *CSVSource { return &CSVSource{path: path} }

// NewCSVReader 从数据流读取。
func NewCSVReader(r io.Reader) *CSVSource { return &CSVSource{reader: r} }

// Records 读取全部学生记录。
func (s *CSVSource) Records() ([]StudentRecord, error) {
	r := s.reader
	name := "<reader>"
	if r == nil {
		file, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("打开 CSV 文件 %s 失败: %w", s.path, err)
		}
		defer file.Close()
		r = file
		name = s.path
	}

	decoded := transform.NewReader(r, textunicode.BOMOverride(textunicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	// 逐条读取以记录真实行号：encoding/csv 会跳过空行。
	var rows [][]string
	var lines []int
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取 CSV %s 失败: %w", name, err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	recs, err := rowsToRecords(rows, lines)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", name, err)
	}
	return recs, nil
}
