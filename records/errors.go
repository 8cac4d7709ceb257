package records

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat 表示无法识别的数据文件类型。
var ErrUnsupportedFormat = errors.New("不支持的数据文件格式")

// MissingColumnError 表示表头中缺少必需的列。
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("表头缺少必需列: %s", strings.Join(e.Columns, ", "))
}
