package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDocument 表示文档没有任何页面，无法输出。
var ErrEmptyDocument = errors.New("文档没有可渲染的页面")

// MissingInputError 表示调用方缺少必需输入（考试名称、校徽或数据文件），不会尝试生成。
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("缺少必需输入: %s", e.Field)
}

// MalformedRecordError 表示某条记录缺少 Name/ID/Class，整次生成终止。
type MalformedRecordError struct {
	Ordinal int      // 记录在输入序列中的位置（从 0 开始）
	Row     int      // 源表格行号，未知时为 0
	Fields  []string // 缺失的字段
}

func (e *MalformedRecordError) Error() string {
	where := fmt.Sprintf("第 %d 条记录", e.Ordinal+1)
	if e.Row > 0 {
		where = fmt.Sprintf("%s（第 %d 行）", where, e.Row)
	}
	return fmt.Sprintf("%s缺少字段: %s", where, strings.Join(e.Fields, ", "))
}

// ImageDecodeError 表示校徽文件无法读取或格式不受支持。
type ImageDecodeError struct {
	Path string
	Err  error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("解码图片 %s 失败: %v", e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }
