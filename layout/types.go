package layout

import (
	"image"

	"github.com/ByLCY/admitcard/records"
)

// 该文件定义排版结果，供渲染器与调试 JSON 共用。所有坐标与尺寸均为毫米，原点在页面左上角。

// Document 是一次生成得到的完整文档：按顺序排列的页面，每页按顺序排列的准考证。
type Document struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Pages  []Page       `json:"pages"`
	Meta   DocumentMeta `json:"meta"`
}

// CardCount 返回全部页面上的卡片总数。
func (d *Document) CardCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Cards)
	}
	return n
}

// Cards 按输入顺序返回全部卡片。
func (d *Document) Cards() []Card {
	out := make([]Card, 0, d.CardCount())
	for _, p := range d.Pages {
		out = append(out, p.Cards...)
	}
	return out
}

// Page 是一页上的卡片集合。
type Page struct {
	Index int    `json:"index"`
	Cards []Card `json:"cards"`
}

// Card 是一张已经排好坐标、可以直接绘制的准考证。
// 绘制顺序：Rects（外框、内白底）→ Images → Texts。
type Card struct {
	Ordinal int                   `json:"ordinal"`
	Record  records.StudentRecord `json:"record"`
	Slot    CardSlot              `json:"slot"`
	Rects   []Rect                `json:"rects"`
	Images  []ImageBox            `json:"images,omitempty"`
	Texts   []TextBox             `json:"texts"`
}

// FontResource 描述文字使用的字体。Family 为逻辑字体名，由渲染器映射到具体字形。
type FontResource struct {
	Family string `json:"family"`
	Style  string `json:"style"` // "" 常规，"B" 粗体
}

// Bold 报告字体是否为粗体。
func (f FontResource) Bold() bool { return f.Style == "B" }

// TextBox 表示单行文本所在的单元格。文字在单元格内按 Align 水平对齐、垂直居中。
type TextBox struct {
	Content  string       `json:"content"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Font     FontResource `json:"font"`
	FontSize float64      `json:"fontSize"` // mm
	Color    Color        `json:"color"`
	Align    string       `json:"align,omitempty"` // left（默认）/center/right
}

// Baseline 返回文字基线的纵坐标：与 fpdf 的 Cell 一致，取单元格中线下移 0.3 倍字号。
func (tb TextBox) Baseline() float64 {
	return tb.Y + tb.Height/2 + 0.3*tb.FontSize
}

// ImageBox 描述图片位置与尺寸。Image 为已解码的位图，不写入调试 JSON。
type ImageBox struct {
	Path   string      `json:"path"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Image  image.Image `json:"-"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Rect 表示一个矩形。StrokeColor 为空表示不描边，FillColor 为空表示不填充。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor *Color  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth"` // mm
	FillColor   *Color  `json:"fillColor,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
