package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDebugJSON(t *testing.T) {
	e := newTestEngine(t)
	doc, err := e.Generate(makeRecords(4), testExam)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	path := filepath.Join(t.TempDir(), "nested", "layout.json")
	if err := WriteDebugJSON(doc, path); err != nil {
		t.Fatalf("输出调试 JSON 失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	var dump struct {
		PageCount int `json:"pageCount"`
		CardCount int `json:"cardCount"`
		Document  struct {
			Pages []struct {
				Cards []struct {
					Slot struct{ Y float64 }
				}
			}
		} `json:"document"`
	}
	if err := json.Unmarshal(data, &dump); err != nil {
		t.Fatalf("解析调试 JSON 失败: %v", err)
	}
	if dump.PageCount != 2 || dump.CardCount != 4 {
		t.Fatalf("unexpected summary: %+v", dump)
	}
	if got := dump.Document.Pages[0].Cards[2].Slot.Y; got != 200 {
		t.Fatalf("third card Y got=%v want=200", got)
	}

	if err := WriteDebugJSON(nil, path); err == nil {
		t.Fatalf("expected error for nil document")
	}
}
