package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/admitcard/renderer"
	canvasrenderer "github.com/ByLCY/admitcard/renderer/canvas"
	fpdfrenderer "github.com/ByLCY/admitcard/renderer/fpdf"
)

// 可选的渲染后端名称。
const (
	BackendCanvas = "canvas"
	BackendFPDF   = "fpdf"
)

// ErrUnknownBackend 表示后端名称不受支持。
var ErrUnknownBackend = errors.New("未知的渲染后端")

// NewBackend 按名称构造渲染后端，空名称使用 canvas。
func NewBackend(name string) (renderer.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendCanvas:
		return canvasrenderer.NewRenderer(), nil
	case BackendFPDF:
		return fpdfrenderer.NewRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
