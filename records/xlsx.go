package records

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// XLSXSource 通过 excelize 读取 Excel 工作簿。
type XLSXSource struct {
	path   string
	reader io.Reader
	sheet  string
}

// NewXLSXSource 从文件路径读取；sheet 为空时使用第一个工作表。
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

// NewXLSXReader 从已打开的数据流读取（例如上传的文件内容）。
func NewXLSXReader(r io.Reader, sheet string) *XLSXSource {
	return &XLSXSource{reader: r, sheet: sheet}
}

// Records 读取工作表中的全部学生记录。
func (s *XLSXSource) Records() ([]StudentRecord, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("工作簿 %s 中没有工作表", s.name())
	}
	sheet := s.sheet
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("工作簿 %s 中找不到工作表 %q", s.name(), sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %q 失败: %w", sheet, err)
	}
	recs, err := rowsToRecords(rows, nil)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", s.name(), err)
	}
	return recs, nil
}

func (s *XLSXSource) open() (*excelize.File, error) {
	if s.reader != nil {
		f, err := excelize.OpenReader(s.reader)
		if err != nil {
			return nil, fmt.Errorf("打开 Excel 数据失败: %w", err)
		}
		return f, nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件 %s 失败: %w", s.path, err)
	}
	return f, nil
}

func (s *XLSXSource) name() string {
	if s.path != "" {
		return s.path
	}
	return "<reader>"
}
