package layout

import "testing"

func TestDocumentBuilderAppendsInOrder(t *testing.T) {
	b := NewDocumentBuilder(210, 297, DocumentMeta{Title: "t"})
	// 没有页面时 BeginCard 自动建页
	b.BeginCard(Card{Ordinal: 0})
	b.Text(TextBox{Content: "a"})
	b.BeginCard(Card{Ordinal: 1})
	b.Rect(Rect{Width: 1})
	b.NewPage()
	b.BeginCard(Card{Ordinal: 2})
	b.Image(ImageBox{Path: "x"})
	doc := b.Finish()

	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if len(doc.Pages[0].Cards) != 2 || len(doc.Pages[1].Cards) != 1 {
		t.Fatalf("unexpected cards per page: %d / %d", len(doc.Pages[0].Cards), len(doc.Pages[1].Cards))
	}
	if doc.Pages[0].Cards[0].Texts[0].Content != "a" || len(doc.Pages[0].Cards[1].Rects) != 1 || doc.Pages[1].Cards[0].Images[0].Path != "x" {
		t.Fatalf("元素未追加到正确的卡片")
	}
	if doc.Meta.Title != "t" || doc.Width != 210 {
		t.Fatalf("文档元信息丢失")
	}
}

func TestDocumentBuilderIgnoresDrawingWithoutCard(t *testing.T) {
	b := NewDocumentBuilder(210, 297, DocumentMeta{})
	b.Text(TextBox{Content: "orphan"})
	doc := b.Finish()
	if len(doc.Pages) != 0 {
		t.Fatalf("没有卡片时不应产生页面")
	}
}

func TestDocumentBuilderAfterFinish(t *testing.T) {
	b := NewDocumentBuilder(210, 297, DocumentMeta{})
	b.BeginCard(Card{Ordinal: 0})
	doc := b.Finish()

	b.NewPage()
	b.BeginCard(Card{Ordinal: 1})
	b.Text(TextBox{Content: "late"})
	if b.PageCount() != 0 {
		t.Fatalf("finished builder should report 0 pages, got %d", b.PageCount())
	}
	if again := b.Finish(); again != nil {
		t.Fatalf("second Finish should return nil")
	}
	if len(doc.Pages) != 1 || doc.CardCount() != 1 {
		t.Fatalf("returned document must not change: %d pages, %d cards", len(doc.Pages), doc.CardCount())
	}
}
