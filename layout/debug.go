package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// debugDump 是调试 JSON 的顶层结构：先给出统计，再给出完整的卡片排版。
type debugDump struct {
	PageCount int       `json:"pageCount"`
	CardCount int       `json:"cardCount"`
	Document  *Document `json:"document"`
}

// WriteDebugJSON 输出每页每张卡片的矩形、文字与图片位置（单位 mm），用于核对版式。
// 目录不存在时会自动创建。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return fmt.Errorf("没有可输出的排版结果")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(debugDump{
		PageCount: len(doc.Pages),
		CardCount: doc.CardCount(),
		Document:  doc,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
