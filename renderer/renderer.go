package renderer

import "github.com/ByLCY/admitcard/layout"

// Renderer 将排版结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Backend 同时负责渲染与文字测量，保证截断时使用的字体度量与最终绘制一致。
type Backend interface {
	Renderer
	layout.Typesetter
}
