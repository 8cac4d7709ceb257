package layout

// Box 是一个轴对齐矩形区域。
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Inset 返回四边各向内收缩 d 后的区域。
func (b Box) Inset(d float64) Box {
	return Box{X: b.X + d, Y: b.Y + d, Width: b.Width - 2*d, Height: b.Height - 2*d}
}

// Right 返回右边界横坐标。
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom 返回下边界纵坐标。
func (b Box) Bottom() float64 { return b.Y + b.Height }

// CardSlot 是卡片在文档中的几何位置，只由序号推导，不依赖卡片内容。
type CardSlot struct {
	PageIndex int     `json:"pageIndex"`
	Row       int     `json:"row"` // 页内位置 0..CardsPerPage-1
	Y         float64 `json:"y"`
	Outer     Box     `json:"outer"`
	Inner     Box     `json:"inner"`
}

// SlotFor 计算第 ordinal 张卡片（从 0 开始）的位置。
func (c Config) SlotFor(ordinal int) CardSlot {
	per := c.perPage()
	row := ordinal % per
	y := c.PageTopMargin + float64(row)*c.CardHeight
	outer := Box{X: c.CardX, Y: y, Width: c.CardWidth, Height: c.CardBoxHeight}
	return CardSlot{
		PageIndex: ordinal / per,
		Row:       row,
		Y:         y,
		Outer:     outer,
		Inner:     outer.Inset(c.InnerInset),
	}
}

// PageCount 返回容纳 n 张卡片所需的页数，即 ceil(n / CardsPerPage)。
func (c Config) PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	per := c.perPage()
	return (n + per - 1) / per
}

func (c Config) perPage() int {
	if c.CardsPerPage <= 0 {
		return 1
	}
	return c.CardsPerPage
}
