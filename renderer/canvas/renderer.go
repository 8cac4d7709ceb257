package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/admitcard/fonts"
	"github.com/ByLCY/admitcard/layout"
	"github.com/ByLCY/admitcard/renderer"
)

const defaultStrokeWidth = 0.2

// Renderer draws admit card documents via github.com/tdewolff/canvas.
type Renderer struct {
	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ renderer.Backend  = (*Renderer)(nil)
)

// NewRenderer creates a canvas-based renderer using the embedded Latin Modern faces.
func NewRenderer() *Renderer {
	return &Renderer{fontFamilies: map[string]*canvas.FontFamily{}}
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, layout.ErrEmptyDocument
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, doc.Width, doc.Height, nil)
	r.applyMeta(writer, doc.Meta)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(doc.Width, doc.Height)
		}
		c, err := r.pageCanvas(doc, page)
		if err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Preview 将指定页面栅格化为 PNG，dpmm 为每毫米像素数。
func (r *Renderer) Preview(doc *layout.Document, pageIndex int, dpmm float64) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, layout.ErrEmptyDocument
	}
	if pageIndex < 0 || pageIndex >= len(doc.Pages) {
		return nil, fmt.Errorf("页码 %d 超出范围（共 %d 页）", pageIndex+1, len(doc.Pages))
	}
	if dpmm <= 0 {
		dpmm = 4
	}
	c, err := r.pageCanvas(doc, doc.Pages[pageIndex])
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码预览图失败: %w", err)
	}
	return buf.Bytes(), nil
}

// MeasureText 实现 layout.Typesetter：fontSize 入参为毫米，返回宽度同为毫米。
func (r *Renderer) MeasureText(content string, font layout.FontResource, fontSize float64) (float64, error) {
	face, err := r.fontFace(font, layout.ToPt(fontSize), layout.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(content), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) pageCanvas(doc *layout.Document, page layout.Page) (*canvas.Canvas, error) {
	c := canvas.New(doc.Width, doc.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(doc.Width, doc.Height))

	for _, card := range page.Cards {
		// 先形状作为背景，再图片，最后文字
		r.drawRects(ctx, card.Rects)
		r.drawImages(ctx, card.Images)
		for _, tb := range card.Texts {
			if err := r.drawTextBox(ctx, tb); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	// TextBox 的坐标/字号均为 mm；创建字体面需要 pt，这里做一次 mm→pt。
	face, err := r.fontFace(tb.Font, layout.ToPt(tb.FontSize), tb.Color)
	if err != nil {
		return err
	}

	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}
	ctx.DrawText(anchorX, tb.Baseline(), canvas.NewTextLine(face, tb.Content, textAlign))
	return nil
}

func (r *Renderer) drawImages(ctx *canvas.Context, images []layout.ImageBox) {
	for _, img := range images {
		if img.Image == nil || img.Width <= 0 {
			continue
		}
		dpmm := float64(img.Image.Bounds().Dx()) / img.Width
		if dpmm <= 0 {
			dpmm = 1
		}
		ctx.DrawImage(img.X, img.Y, img.Image, canvas.DPMM(dpmm))
	}
}

// drawRects 绘制矩形：StrokeColor 为空不描边，FillColor 为空不填充。
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	transparent := color.RGBA{0, 0, 0, 0}
	for _, rc := range rects {
		w := rc.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if rc.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*rc.FillColor))
		} else {
			ctx.SetFillColor(transparent)
		}
		if rc.StrokeColor != nil {
			ctx.SetStrokeColor(colorFromLayout(*rc.StrokeColor))
			ctx.SetStrokeWidth(w)
		} else {
			ctx.SetStrokeColor(transparent)
			ctx.SetStrokeWidth(0)
		}
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func (r *Renderer) fontFace(font layout.FontResource, size float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size, colorFromLayout(col), canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily 每种字重只加载一次字体数据；粗体单独成族，以常规样式登记。
func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, error) {
	name := fonts.ForWeight(font.Bold())
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[name]; ok {
		return family, nil
	}
	data, err := fonts.Load(name)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.fontFamilies[name] = family
	return family, nil
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
