package analysis

// CodewordPrefix is prepended to a key in per-key series labels ("20x64").
const CodewordPrefix = "20x"

// LineStyle is the dash pattern of a plotted series.
type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
	DashDot
	Dotted
)

// LineStyles is the fixed palette series styles are drawn from, in order.
var LineStyles = []LineStyle{Solid, Dashed, DashDot, Dotted}

func (s LineStyle) String() string {
	switch s {
	case Solid:
		return "solid"
	case Dashed:
		return "dashed"
	case DashDot:
		return "dash-dot"
	case Dotted:
		return "dotted"
	}
	return "unknown"
}

// Point is one (x, y) sample of a series.
type Point struct {
	X, Y float64
}

// Series is one plotted line.
type Series struct {
	Key    int // Table key for per-key series; row index for per-sigma series
	Label  string
	Style  LineStyle
	Points []Point
}

// SeriesSet is the data behind one chart: its series in legend order plus the
// keys they were built from.
type SeriesSet struct {
	Keys   []int
	Series []Series
}
