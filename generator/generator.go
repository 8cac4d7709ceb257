// Package generator 是准考证生成的调用入口：读取学生名单、排版并写出 PDF。
package generator

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/admitcard/layout"
	"github.com/ByLCY/admitcard/records"
	canvasrenderer "github.com/ByLCY/admitcard/renderer/canvas"
)

// DefaultFileName 是未指定输出路径时使用的文件名，位于系统临时目录。
const DefaultFileName = "All_Admit_Cards.pdf"

// previewDPMM 是预览图的分辨率（每毫米像素数）。
const previewDPMM = 4

// Options 控制一次生成。零值可用：canvas 后端，输出到临时目录。
type Options struct {
	Output      string // PDF 输出路径
	Backend     string // canvas | fpdf
	Institution string // 为空时使用默认学校名称
	Sheet       string // xlsx 工作表名称，为空取第一个
	Preview     string // 首页 PNG 预览路径
	Debug       string // 布局调试 JSON 路径
	Logger      *log.Logger
}

// Result 描述一次成功生成的产物。
type Result struct {
	Path     string
	Document *layout.Document
}

// GenerateAdmitCards 读取数据文件，为每名学生生成一张准考证并返回 PDF 路径。
// 考试名称、校徽和数据文件三者缺一即返回 MissingInputError，不尝试生成。
func GenerateAdmitCards(recordsPath, examName, logoPath string, opts Options) (string, error) {
	if err := requireInputs(examName, logoPath); err != nil {
		return "", err
	}
	if strings.TrimSpace(recordsPath) == "" {
		return "", &layout.MissingInputError{Field: "data file"}
	}
	recs, err := records.Load(recordsPath, opts.Sheet)
	if err != nil {
		return "", fmt.Errorf("读取学生名单失败: %w", err)
	}
	res, err := Generate(recs, examName, logoPath, opts)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Generate 对已读取的记录执行排版与渲染，并以原子方式写出 PDF。
func Generate(recs []records.StudentRecord, examName, logoPath string, opts Options) (*Result, error) {
	if err := requireInputs(examName, logoPath); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &layout.MissingInputError{Field: "data file"}
	}
	logger := opts.logger()

	backend, err := NewBackend(opts.Backend)
	if err != nil {
		return nil, err
	}
	doc, err := layoutCards(recs, examName, logoPath, opts.Institution, backend)
	if err != nil {
		return nil, err
	}
	logger.Printf("已排版 %d 张准考证，共 %d 页", doc.CardCount(), len(doc.Pages))

	// 先在内存中完成全部渲染，再落盘；任一文件写入失败时删除本次已写出的文件。
	pdfBytes, err := backend.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	var previewBytes []byte
	if opts.Preview != "" {
		if previewBytes, err = renderPreview(doc); err != nil {
			return nil, err
		}
	}

	out := opts.output()
	var written []string
	rollback := func() {
		for _, p := range written {
			os.Remove(p)
		}
	}
	if err := writeAtomic(out, pdfBytes); err != nil {
		return nil, fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	written = append(written, out)
	logger.Printf("后端 %s 已写出 %s（%d 字节）", opts.backendName(), out, len(pdfBytes))

	if opts.Preview != "" {
		if err := writeAtomic(opts.Preview, previewBytes); err != nil {
			rollback()
			return nil, fmt.Errorf("写入预览图失败: %w", err)
		}
		written = append(written, opts.Preview)
		logger.Printf("已输出预览图：%s", opts.Preview)
	}
	if opts.Debug != "" {
		if err := writeDebug(doc, opts.Debug); err != nil {
			written = append(written, opts.Debug)
			rollback()
			return nil, err
		}
		logger.Printf("已输出调试 JSON：%s", opts.Debug)
	}
	return &Result{Path: out, Document: doc}, nil
}

// Layout 只做排版不写文件，文字度量使用所选后端，与真实输出一致。
func Layout(recs []records.StudentRecord, examName, logoPath string, opts Options) (*layout.Document, error) {
	if strings.TrimSpace(examName) == "" {
		return nil, &layout.MissingInputError{Field: "exam name"}
	}
	backend, err := NewBackend(opts.Backend)
	if err != nil {
		return nil, err
	}
	return layoutCards(recs, examName, logoPath, opts.Institution, backend)
}

func layoutCards(recs []records.StudentRecord, examName, logoPath, institution string, ts layout.Typesetter) (*layout.Document, error) {
	ctx, err := layout.NewExamContext(examName, institution, logoPath)
	if err != nil {
		return nil, err
	}
	engine, err := layout.NewEngine(layout.Options{Config: layout.DefaultConfig(), Typesetter: ts})
	if err != nil {
		return nil, fmt.Errorf("初始化排版引擎失败: %w", err)
	}
	doc, err := engine.Generate(recs, ctx)
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return doc, nil
}

func requireInputs(examName, logoPath string) error {
	if strings.TrimSpace(examName) == "" {
		return &layout.MissingInputError{Field: "exam name"}
	}
	if strings.TrimSpace(logoPath) == "" {
		return &layout.MissingInputError{Field: "logo"}
	}
	return nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard, "", 0)
}

func (o Options) output() string {
	if o.Output != "" {
		return o.Output
	}
	return filepath.Join(os.TempDir(), DefaultFileName)
}

func (o Options) backendName() string {
	if name := strings.ToLower(strings.TrimSpace(o.Backend)); name != "" {
		return name
	}
	return BackendCanvas
}

// writeAtomic 先写入同目录临时文件再重命名，失败时不留下半成品。
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".admitcards-*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("设置文件权限失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	return nil
}

func writeDebug(doc *layout.Document, debugPath string) error {
	if err := layout.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// renderPreview 总是使用 canvas 栅格化首页，与 PDF 后端无关。
func renderPreview(doc *layout.Document) ([]byte, error) {
	img, err := canvasrenderer.NewRenderer().Preview(doc, 0, previewDPMM)
	if err != nil {
		return nil, fmt.Errorf("生成预览图失败: %w", err)
	}
	return img, nil
}
