package layout

// DocumentBuilder 持有一次生成过程中的全部可变状态（当前页、已完成的卡片）。
// 它只属于单个 Generate 调用，不与其他调用共享。
type DocumentBuilder struct {
	doc     *Document
	current *Page
	card    *Card
}

// NewDocumentBuilder 创建一个空文档构建器。
func NewDocumentBuilder(width, height float64, meta DocumentMeta) *DocumentBuilder {
	return &DocumentBuilder{
		doc: &Document{Width: width, Height: height, Meta: meta},
	}
}

// NewPage 追加新页并把它设为当前页。Finish 之后调用不产生任何效果。
func (b *DocumentBuilder) NewPage() {
	if b.doc == nil {
		return
	}
	b.flushCard()
	b.doc.Pages = append(b.doc.Pages, Page{Index: len(b.doc.Pages)})
	b.current = &b.doc.Pages[len(b.doc.Pages)-1]
}

// PageCount 返回目前的页数。
func (b *DocumentBuilder) PageCount() int {
	if b.doc == nil {
		return 0
	}
	return len(b.doc.Pages)
}

// BeginCard 在当前页开始一张新卡片；若还没有页面则先创建一页。Finish 之后调用被忽略。
func (b *DocumentBuilder) BeginCard(card Card) {
	if b.doc == nil {
		return
	}
	b.flushCard()
	if b.current == nil {
		b.NewPage()
	}
	b.card = &card
}

// Rect 向当前卡片追加一个矩形。
func (b *DocumentBuilder) Rect(r Rect) {
	if b.card != nil {
		b.card.Rects = append(b.card.Rects, r)
	}
}

// Text 向当前卡片追加一行文字。
func (b *DocumentBuilder) Text(tb TextBox) {
	if b.card != nil {
		b.card.Texts = append(b.card.Texts, tb)
	}
}

// Image 向当前卡片追加一张图片。
func (b *DocumentBuilder) Image(img ImageBox) {
	if b.card != nil {
		b.card.Images = append(b.card.Images, img)
	}
}

// Finish 结束构建并返回文档。之后构建器不再持有文档：
// 再次 Finish 返回 nil，其余方法均为空操作，不会改动已返回的文档。
func (b *DocumentBuilder) Finish() *Document {
	b.flushCard()
	doc := b.doc
	b.doc, b.current = nil, nil
	return doc
}

func (b *DocumentBuilder) flushCard() {
	if b.card == nil || b.current == nil {
		return
	}
	b.current.Cards = append(b.current.Cards, *b.card)
	b.card = nil
}
