package layout

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultInstitution 是卡片抬头默认显示的学校名称。
const DefaultInstitution = "Daffodil University School & College"

// ExamContext 是一次生成中所有卡片共享的只读考试信息。
type ExamContext struct {
	ExamName    string
	Institution string
	Logo        *Logo // 为空时卡片不绘制图片
}

// Logo 是已解码的校徽图片。
type Logo struct {
	Path  string
	Image image.Image
}

// Aspect 返回高宽比，无法计算时返回 1。
func (l *Logo) Aspect() float64 {
	if l == nil || l.Image == nil {
		return 1
	}
	b := l.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 1
	}
	return float64(b.Dy()) / float64(b.Dx())
}

// NewExamContext 构造考试信息；logoPath 为空表示不使用校徽，否则立即读取并解码。
func NewExamContext(examName, institution, logoPath string) (ExamContext, error) {
	ctx := ExamContext{
		ExamName:    strings.TrimSpace(examName),
		Institution: strings.TrimSpace(institution),
	}
	if ctx.Institution == "" {
		ctx.Institution = DefaultInstitution
	}
	if strings.TrimSpace(logoPath) == "" {
		return ctx, nil
	}
	logo, err := LoadLogo(logoPath)
	if err != nil {
		return ExamContext{}, err
	}
	ctx.Logo = logo
	return ctx, nil
}

// LoadLogo 读取并解码图片文件，支持 png/jpeg/gif/bmp/tiff/webp。
func LoadLogo(path string) (*Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImageDecodeError{Path: path, Err: err}
	}
	return DecodeLogo(path, data)
}

// DecodeLogo 从内存数据解码图片，name 仅用于错误信息。
func DecodeLogo(name string, data []byte) (*Logo, error) {
	if len(data) == 0 {
		return nil, &ImageDecodeError{Path: name, Err: fmt.Errorf("文件为空")}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ImageDecodeError{Path: name, Err: err}
	}
	return &Logo{Path: name, Image: img}, nil
}
