package layout

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/admitcard/binding"
	"github.com/ByLCY/admitcard/records"
)

const ellipsis = "..."

// Engine 把有序的学生记录排成每页固定数量的准考证。
// Engine 本身不保存生成过程中的状态，每次 Generate 使用独立的 DocumentBuilder。
type Engine struct {
	cfg Config
	ts  Typesetter
}

// NewEngine 创建排版引擎。Config 为零值时使用 DefaultConfig。
func NewEngine(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg.CardsPerPage == 0 {
		cfg = DefaultConfig()
	}
	if cfg.CardsPerPage < 0 || cfg.CardHeight <= 0 || cfg.CardWidth <= 0 {
		return nil, fmt.Errorf("layout: 版式参数无效")
	}
	known := cardValues(records.StudentRecord{}, ExamContext{})
	for _, tpl := range []string{cfg.Text.Title, cfg.Text.NameLine, cfg.Text.IDLine, cfg.Text.ClassLine, cfg.Text.Signature} {
		if missing := binding.Unresolved(tpl, known); len(missing) > 0 {
			return nil, fmt.Errorf("layout: 模板 %q 引用了未知字段: %s", tpl, strings.Join(missing, ", "))
		}
	}
	return &Engine{cfg: cfg, ts: opts.Typesetter}, nil
}

// Config 返回引擎使用的版式参数。
func (e *Engine) Config() Config { return e.cfg }

// Generate 为每条记录生成一张卡片：第 i 条位于第 i/CardsPerPage 页、页内第 i%CardsPerPage 个位置。
// 任一记录缺少字段即终止并返回 MalformedRecordError，不返回部分文档。
// 记录为空时返回零页文档。
func (e *Engine) Generate(recs []records.StudentRecord, ctx ExamContext) (*Document, error) {
	if strings.TrimSpace(ctx.ExamName) == "" {
		return nil, &MissingInputError{Field: "exam name"}
	}
	if ctx.Institution == "" {
		ctx.Institution = DefaultInstitution
	}

	b := NewDocumentBuilder(e.cfg.PageWidth, e.cfg.PageHeight, DocumentMeta{
		Title:    ctx.ExamName + " - Admit Cards",
		Author:   ctx.Institution,
		Subject:  e.cfg.Text.Title,
		Creator:  "admitcard",
		Keywords: []string{"admit card", ctx.ExamName},
	})
	for i, rec := range recs {
		if missing := rec.Missing(); len(missing) > 0 {
			return nil, &MalformedRecordError{Ordinal: i, Row: rec.Row, Fields: missing}
		}
		if err := e.renderCard(b, i, rec, ctx); err != nil {
			return nil, fmt.Errorf("排版第 %d 张卡片失败: %w", i+1, err)
		}
	}
	return b.Finish(), nil
}

func (e *Engine) renderCard(b *DocumentBuilder, ordinal int, rec records.StudentRecord, ctx ExamContext) error {
	cfg := e.cfg
	slot := cfg.SlotFor(ordinal)
	if slot.Row == 0 {
		b.NewPage()
	}
	b.BeginCard(Card{Ordinal: ordinal, Record: rec, Slot: slot})

	border, fill := cfg.BorderColor, cfg.InnerFill
	b.Rect(Rect{X: slot.Outer.X, Y: slot.Outer.Y, Width: slot.Outer.Width, Height: slot.Outer.Height, StrokeColor: &border, StrokeWidth: cfg.BorderWidth})
	b.Rect(Rect{X: slot.Inner.X, Y: slot.Inner.Y, Width: slot.Inner.Width, Height: slot.Inner.Height, FillColor: &fill})

	if ctx.Logo != nil {
		b.Image(e.logoBox(ctx.Logo, slot.Inner))
	}

	values := cardValues(rec, ctx)
	inner := slot.Inner
	header := FontResource{Family: cfg.FontFamily, Style: "B"}
	body := FontResource{Family: cfg.FontFamily}
	lh := cfg.LineHeight

	// 抬头三行在整页宽度上居中，截断宽度以内框为准
	y := inner.Y + cfg.HeaderInset
	page := Box{X: 0, Width: cfg.PageWidth, Height: lh}
	lines := []struct {
		text string
		font FontResource
		size float64
	}{
		{ctx.Institution, header, cfg.HeaderSize},
		{ctx.ExamName, header, cfg.HeaderSize},
		{binding.Interpolate(cfg.Text.Title, values), body, cfg.BodySize},
	}
	for _, ln := range lines {
		page.Y = y
		if err := e.place(b, ln.text, page, ln.font, ln.size, "center", inner.Width); err != nil {
			return err
		}
		y += lh
	}

	// "Admit Card" 之后只前进半行，再左对齐正文
	y -= lh / 2
	textX := inner.X + cfg.TextInset
	nameCell := Box{X: textX, Y: y, Width: inner.Right() - cfg.TextInset - textX, Height: lh}
	if err := e.place(b, binding.Interpolate(cfg.Text.NameLine, values), nameCell, body, cfg.BodySize, "left", nameCell.Width); err != nil {
		return err
	}

	y += lh
	idCell := Box{X: textX, Y: y, Width: cfg.IDColumn, Height: lh}
	if err := e.place(b, binding.Interpolate(cfg.Text.IDLine, values), idCell, body, cfg.BodySize, "left", idCell.Width-cfg.TextInset); err != nil {
		return err
	}
	classCell := Box{X: textX + cfg.IDColumn, Y: y, Width: inner.Right() - cfg.TextInset - (textX + cfg.IDColumn), Height: lh}
	if err := e.place(b, binding.Interpolate(cfg.Text.ClassLine, values), classCell, body, cfg.BodySize, "left", classCell.Width); err != nil {
		return err
	}

	// 签名行：从正文缩进处延伸到页面右边距，居中
	y += lh
	sigCell := Box{X: textX, Y: y, Width: cfg.PageWidth - cfg.CardX - textX, Height: lh}
	return e.place(b, binding.Interpolate(cfg.Text.Signature, values), sigCell, body, cfg.BodySize, "center", inner.Width-2*cfg.TextInset)
}

// place 把文字截断到 limit 宽度以内后放入单元格。
func (e *Engine) place(b *DocumentBuilder, content string, cell Box, font FontResource, size float64, align string, limit float64) error {
	fitted, err := e.fit(content, font, size, limit)
	if err != nil {
		return err
	}
	b.Text(TextBox{
		Content:  fitted,
		X:        cell.X,
		Y:        cell.Y,
		Width:    cell.Width,
		Height:   cell.Height,
		Font:     font,
		FontSize: size,
		Align:    align,
	})
	return nil
}

// fit 超出宽度时截短并追加省略号：二分查找能放下的最长前缀。
func (e *Engine) fit(content string, font FontResource, size, limit float64) (string, error) {
	w, err := e.measure(content, font, size)
	if err != nil {
		return "", err
	}
	if limit <= 0 || w <= limit {
		return content, nil
	}
	runes := []rune(content)
	best := ellipsis
	lo, hi := 1, len(runes)-1
	for lo <= hi {
		n := (lo + hi) / 2
		candidate := strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace) + ellipsis
		w, err := e.measure(candidate, font, size)
		if err != nil {
			return "", err
		}
		if w <= limit {
			best = candidate
			lo = n + 1
		} else {
			hi = n - 1
		}
	}
	return best, nil
}

func (e *Engine) measure(content string, font FontResource, size float64) (float64, error) {
	if e.ts == nil {
		return estimateTextWidth(content, size), nil
	}
	return e.ts.MeasureText(content, font, size)
}

func (e *Engine) logoBox(logo *Logo, inner Box) ImageBox {
	cfg := e.cfg
	width := cfg.LogoWidth
	height := width * logo.Aspect()
	if maxH := inner.Height - 2*cfg.LogoOffsetY; height > maxH {
		height = maxH
		width = height / logo.Aspect()
	}
	return ImageBox{
		Path:   logo.Path,
		X:      inner.X + cfg.LogoOffsetX,
		Y:      inner.Y + cfg.LogoOffsetY,
		Width:  width,
		Height: height,
		Image:  logo.Image,
	}
}

func cardValues(rec records.StudentRecord, ctx ExamContext) binding.Values {
	return binding.Values{
		"Name":        rec.Name,
		"ID":          rec.ID,
		"Class":       rec.Class,
		"Exam":        ctx.ExamName,
		"Institution": ctx.Institution,
	}
}

// estimateTextWidth 在没有字体度量时按平均字宽估算。
func estimateTextWidth(content string, fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = Pt(12)
	}
	return fontSize * 0.45 * float64(utf8.RuneCountInString(content))
}
