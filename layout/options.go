package layout

// Config 描述准考证版式的固定几何参数（单位：mm）。
type Config struct {
	PageWidth     float64
	PageHeight    float64
	CardsPerPage  int
	CardHeight    float64 // 相邻两张卡片顶部的间距
	PageTopMargin float64
	CardX         float64
	CardWidth     float64
	CardBoxHeight float64 // 外框高度
	InnerInset    float64
	BorderColor   Color
	BorderWidth   float64
	InnerFill     Color

	LogoWidth   float64
	LogoOffsetX float64 // 校徽相对内框左上角的偏移
	LogoOffsetY float64
	LineHeight  float64 // 单元格高度
	HeaderSize  float64 // 标题字号（mm）
	BodySize    float64 // 正文字号（mm）
	IDColumn    float64 // ID 所在首列宽度
	TextInset   float64 // 正文相对内框的左缩进
	HeaderInset float64 // 标题块相对内框顶部的偏移

	FontFamily string
	Text       CardText
}

// CardText 是卡片各行文字的模板，占位符见 binding.Interpolate。
type CardText struct {
	Title     string
	NameLine  string
	IDLine    string
	ClassLine string
	Signature string
}

// DefaultConfig 返回 A4 纵向、每页三张卡片的标准版式。
func DefaultConfig() Config {
	return Config{
		PageWidth:     210,
		PageHeight:    297,
		CardsPerPage:  3,
		CardHeight:    95,
		PageTopMargin: 10,
		CardX:         10,
		CardWidth:     190,
		CardBoxHeight: 85,
		InnerInset:    3,
		BorderColor:   Color{R: 0, G: 100, B: 0},
		BorderWidth:   0.2,
		InnerFill:     Color{R: 255, G: 255, B: 255},

		LogoWidth:   20,
		LogoOffsetX: 3,
		LogoOffsetY: 2,
		LineHeight:  10,
		HeaderSize:  Pt(16),
		BodySize:    Pt(12),
		IDColumn:    95,
		TextInset:   5,
		HeaderInset: 5,

		FontFamily: "Times",
		Text: CardText{
			Title:     "Admit Card",
			NameLine:  "Name: ${Name}",
			IDLine:    "ID: ${ID}",
			ClassLine: "Class: ${Class}",
			Signature: "Accounts: __________________________         Principal: __________________________",
		},
	}
}

// Options 配置排版引擎的依赖。
type Options struct {
	Config     Config
	Typesetter Typesetter // 为空时按字号估算文字宽度
}

// Typesetter 负责测量单行文本的宽度（mm），由渲染器实现以保证测量与绘制使用同一套字体度量。
type Typesetter interface {
	MeasureText(content string, font FontResource, fontSize float64) (float64, error)
}
