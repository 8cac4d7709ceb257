package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ByLCY/admitcard/layout"
)

// Plan 把文档中每张卡片的位置整理为表格：序号、页码、页内位置、纵坐标与学生信息。
func Plan(doc *layout.Document) *Table {
	t := &Table{
		Header: []string{"#", "Page", "Slot", "Y (mm)", "Name", "ID", "Class"},
		Right:  map[int]bool{0: true, 1: true, 2: true, 3: true},
	}
	if doc == nil {
		return t
	}
	for _, card := range doc.Cards() {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(card.Ordinal + 1),
			strconv.Itoa(card.Slot.PageIndex + 1),
			strconv.Itoa(card.Slot.Row + 1),
			strconv.FormatFloat(card.Slot.Y, 'f', -1, 64),
			card.Record.Name,
			card.Record.ID,
			card.Record.Class,
		})
	}
	return t
}

// WritePlan 输出分页计划及汇总行。
func WritePlan(w io.Writer, doc *layout.Document) error {
	if _, err := io.WriteString(w, Plan(doc).Render()); err != nil {
		return err
	}
	pages, cards := 0, 0
	if doc != nil {
		pages, cards = len(doc.Pages), doc.CardCount()
	}
	_, err := fmt.Fprintf(w, "%d cards on %d pages\n", cards, pages)
	return err
}
