package layout

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Pt 把以点为单位的字号换算为毫米。
func Pt(v float64) float64 { return v * PtToMm }

// ToPt 把毫米换算为点。
func ToPt(mm float64) float64 { return mm * MmToPt }
