// Package fpdfrenderer renders admit card documents with codeberg.org/go-pdf/fpdf
// using the PDF core fonts, so the output needs no embedded font data.
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/ByLCY/admitcard/layout"
	"github.com/ByLCY/admitcard/renderer"
)

const defaultStrokeWidth = 0.2

// coreFamilies 列出 fpdf 内置的标准字体，其余名称回退为 Times。
var coreFamilies = map[string]string{
	"times":     "Times",
	"helvetica": "Helvetica",
	"arial":     "Helvetica",
	"courier":   "Courier",
}

// UnsupportedTextError 表示文字含有核心字体（cp1252）无法表示的字符。
// fpdf 会把这些字符替换为 "."，因此在测量和绘制前直接报错。
type UnsupportedTextError struct {
	Text string
	Rune rune
}

func (e *UnsupportedTextError) Error() string {
	return fmt.Sprintf("fpdf 后端的核心字体无法显示字符 %q（%U）: %q，请改用 canvas 后端", e.Rune, e.Rune, e.Text)
}

// checkEncodable 确认 content 的每个字符都能编码为 cp1252。
func checkEncodable(content string) error {
	for _, r := range content {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return &UnsupportedTextError{Text: content, Rune: r}
		}
	}
	return nil
}

// Renderer draws layout documents via fpdf.
type Renderer struct {
	mu      sync.Mutex
	measure *fpdf.Fpdf // 仅用于测量文字宽度
	tr      func(string) string
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Backend  = (*Renderer)(nil)
)

// NewRenderer creates an fpdf-based renderer.
func NewRenderer() *Renderer {
	m := fpdf.New("P", "mm", "A4", "")
	return &Renderer{measure: m, tr: m.UnicodeTranslatorFromDescriptor("")}
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, layout.ErrEmptyDocument
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Meta.Title, true)
	pdf.SetSubject(doc.Meta.Subject, true)
	pdf.SetAuthor(doc.Meta.Author, true)
	pdf.SetCreator(doc.Meta.Creator, true)
	pdf.SetKeywords(strings.Join(doc.Meta.Keywords, ", "), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	registered := map[string]string{}
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, card := range page.Cards {
			drawRects(pdf, card.Rects)
			for _, img := range card.Images {
				if err := drawImage(pdf, img, registered); err != nil {
					return nil, err
				}
			}
			for _, tb := range card.Texts {
				if err := drawTextBox(pdf, tb, tr); err != nil {
					return nil, err
				}
			}
		}
		if pdf.Err() {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", page.Index+1, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// MeasureText 实现 layout.Typesetter，使用与绘制相同的核心字体度量。fontSize 为毫米。
func (r *Renderer) MeasureText(content string, font layout.FontResource, fontSize float64) (float64, error) {
	if err := checkEncodable(content); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.measure.SetFont(coreFamily(font.Family), fontStyle(font), layout.ToPt(fontSize))
	w := r.measure.GetStringWidth(r.tr(content))
	if r.measure.Err() {
		return 0, r.measure.Error()
	}
	return w, nil
}

func drawRects(pdf *fpdf.Fpdf, rects []layout.Rect) {
	for _, rc := range rects {
		style := ""
		if rc.FillColor != nil {
			pdf.SetFillColor(rc.FillColor.R, rc.FillColor.G, rc.FillColor.B)
			style += "F"
		}
		if rc.StrokeColor != nil {
			w := rc.StrokeWidth
			if w <= 0 {
				w = defaultStrokeWidth
			}
			pdf.SetLineWidth(w)
			pdf.SetDrawColor(rc.StrokeColor.R, rc.StrokeColor.G, rc.StrokeColor.B)
			style += "D"
		}
		if style == "" {
			continue
		}
		pdf.Rect(rc.X, rc.Y, rc.Width, rc.Height, style)
	}
}

// drawImage 把已解码的位图统一编码为 PNG 后登记，同一路径只登记一次。
func drawImage(pdf *fpdf.Fpdf, img layout.ImageBox, registered map[string]string) error {
	if img.Image == nil {
		return nil
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name, ok := registered[img.Path]
	if !ok {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img.Image); err != nil {
			return fmt.Errorf("编码图片 %s 失败: %w", img.Path, err)
		}
		name = fmt.Sprintf("logo-%d", len(registered))
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		if pdf.Err() {
			return fmt.Errorf("登记图片 %s 失败: %w", img.Path, pdf.Error())
		}
		registered[img.Path] = name
	}
	pdf.ImageOptions(name, img.X, img.Y, img.Width, img.Height, false, opts, 0, "")
	return nil
}

func drawTextBox(pdf *fpdf.Fpdf, tb layout.TextBox, tr func(string) string) error {
	if err := checkEncodable(tb.Content); err != nil {
		return err
	}
	pdf.SetFont(coreFamily(tb.Font.Family), fontStyle(tb.Font), layout.ToPt(tb.FontSize))
	pdf.SetTextColor(tb.Color.R, tb.Color.G, tb.Color.B)
	content := tr(tb.Content)
	x := tb.X
	switch strings.ToLower(tb.Align) {
	case "center":
		x = tb.X + (tb.Width-pdf.GetStringWidth(content))/2
	case "right", "end":
		x = tb.X + tb.Width - pdf.GetStringWidth(content)
	}
	pdf.Text(x, tb.Baseline(), content)
	return nil
}

func coreFamily(name string) string {
	if f, ok := coreFamilies[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f
	}
	return "Times"
}

func fontStyle(font layout.FontResource) string {
	if font.Bold() {
		return "B"
	}
	return ""
}
