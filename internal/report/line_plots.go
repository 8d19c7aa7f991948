package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/user/sim_plotter_go/internal/analysis"
	"github.com/user/sim_plotter_go/internal/parser"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Kind names one of the charts the tool can render.
type Kind int

const (
	ErrorVsSigma Kind = iota
	TimeVsK
	BerVsSnr
)

// AllKinds is every chart kind in rendering order.
var AllKinds = []Kind{ErrorVsSigma, TimeVsK, BerVsSnr}

// logFloorMin and logFloorMax bound the Y axis of a log chart that has no positive value.
const (
	logFloorMin = 1e-6
	logFloorMax = 1.0
)

type chartDef struct {
	name        string
	title       string
	xLabel      string
	yLabel      string
	legendTitle string
	logY        bool
	data        func(*parser.ResultSet) (*analysis.SeriesSet, error)
}

var chartDefs = map[Kind]chartDef{
	ErrorVsSigma: {
		name:        "error_rate_vs_sigma",
		title:       "Error Rate vs Sigma",
		xLabel:      "Sigma",
		yLabel:      "Error Rate",
		legendTitle: "Codeword Size",
		data:        analysis.ErrorRateVsSigma,
	},
	TimeVsK: {
		name:        "time_vs_k",
		title:       "Time vs k for All Sigmas",
		xLabel:      "k",
		yLabel:      "Time",
		legendTitle: "Sigma Values",
		data:        analysis.TimeVsK,
	},
	BerVsSnr: {
		name:        "ber_vs_snr",
		title:       "Bit Error Rate (BER) vs Signal-to-Noise Ratio (SNR) [dB]",
		xLabel:      "SNR (dB)",
		yLabel:      "Bit Error Rate (BER)",
		legendTitle: "Codeword Size",
		logY:        true,
		data:        analysis.BERVsSNR,
	},
}

func (k Kind) String() string {
	if def, ok := chartDefs[k]; ok {
		return def.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FileName is the image file a chart of this kind is saved to.
func (k Kind) FileName() string {
	return k.String() + ".png"
}

// ParseKinds parses a comma separated list of chart names. The result holds
// each kind once, in rendering order.
func ParseKinds(s string) ([]Kind, error) {
	want := make(map[Kind]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		found := false
		for _, k := range AllKinds {
			if k.String() == name {
				want[k] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown chart: %s", name)
		}
	}
	if len(want) == 0 {
		return nil, fmt.Errorf("no charts selected")
	}
	kinds := make([]Kind, 0, len(want))
	for _, k := range AllKinds {
		if want[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// Chart is one rendered figure. The legend is kept apart from the plot so it
// can be drawn in its own column to the right of the data area.
type Chart struct {
	Kind     Kind
	Plot     *plot.Plot
	Legend   plot.Legend
	Warnings []string

	labels []string
}

// dashes maps a series style onto a gonum dash pattern.
func dashes(s analysis.LineStyle) []vg.Length {
	switch s {
	case analysis.Dashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case analysis.DashDot:
		return []vg.Length{vg.Points(6), vg.Points(2), vg.Points(1.5), vg.Points(2)}
	case analysis.Dotted:
		return []vg.Length{vg.Points(1.5), vg.Points(2)}
	}
	return nil
}

// NewChart builds the chart of the given kind from a result set.
func NewChart(kind Kind, rs *parser.ResultSet) (*Chart, error) {
	def, ok := chartDefs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown chart kind: %d", int(kind))
	}
	set, err := def.data(rs)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = def.title
	p.X.Label.Text = def.xLabel
	p.Y.Label.Text = def.yLabel
	p.BackgroundColor = color.White
	if def.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	c := &Chart{Kind: kind, Plot: p, Legend: plot.NewLegend()}
	c.Legend.Top = true
	c.Legend.Left = true
	c.Legend.XOffs = vg.Points(10)
	c.addLegendEntry(def.legendTitle)

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, s := range set.Series {
		pts := make(plotter.XYs, 0, len(s.Points))
		dropped := 0
		for _, pt := range s.Points {
			if def.logY && pt.Y <= 0 {
				dropped++
				continue
			}
			pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
			yMin = math.Min(yMin, pt.Y)
			yMax = math.Max(yMax, pt.Y)
		}
		if dropped > 0 {
			c.Warnings = append(c.Warnings, fmt.Sprintf("%s: %s has %d non-positive value(s) left off the log axis", kind, s.Label, dropped))
		}
		if len(pts) == 0 {
			c.Warnings = append(c.Warnings, fmt.Sprintf("%s: %s has no plottable points", kind, s.Label))
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create line for %s", s.Label)
		}
		line.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Dashes = dashes(s.Style)

		p.Add(line)
		c.Legend.Add(s.Label, line)
		c.labels = append(c.labels, s.Label)
	}

	if def.logY {
		// LogScale panics on a non-positive bound, so the range is pinned here
		// instead of being left to the default padding of equal bounds.
		switch {
		case math.IsInf(yMin, 1):
			p.Y.Min, p.Y.Max = logFloorMin, logFloorMax
		case yMin == yMax:
			p.Y.Min, p.Y.Max = yMin/10, yMax*10
		default:
			p.Y.Min, p.Y.Max = yMin, yMax
		}
	}

	return c, nil
}

func (c *Chart) addLegendEntry(title string) {
	c.Legend.Add(title)
	c.labels = append(c.labels, title)
}

// LegendWidth is the width of the column the legend is drawn in.
func (c *Chart) LegendWidth() vg.Length {
	sty := c.Legend.TextStyle
	var widest vg.Length
	for _, l := range c.labels {
		if w := sty.Width(l); w > widest {
			widest = w
		}
	}
	return c.Legend.XOffs + c.Legend.ThumbnailWidth + sty.Width(" ") + widest + vg.Points(10)
}

// Draw renders the chart on a new image canvas. width and height size the
// plot area; the canvas is widened by the legend column.
func (c *Chart) Draw(width, height vg.Length) *vgimg.Canvas {
	legendW := c.LegendWidth()
	img := vgimg.New(width+legendW, height)
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	c.Plot.Draw(draw.Crop(dc, 0, -legendW, 0, 0))

	// Line the legend up with the top of the data area, below the title.
	top := vg.Length(0)
	if c.Plot.Title.Text != "" {
		top = c.Plot.Title.TextStyle.Height(c.Plot.Title.Text) + c.Plot.Title.Padding
	}
	c.Legend.Draw(draw.Crop(dc, width, 0, 0, -top))
	return img
}

// PNG renders the chart and returns the encoded image.
func (c *Chart) PNG(width, height vg.Length) ([]byte, error) {
	img := c.Draw(width, height)
	buf := new(bytes.Buffer)
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(buf); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s plot to buffer", c.Kind)
	}
	return buf.Bytes(), nil
}

// Save renders the chart as a PNG file at path.
func (c *Chart) Save(path string, width, height vg.Length) ([]byte, error) {
	imgBytes, err := c.PNG(width, height)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, imgBytes, 0o644); err != nil {
		return nil, errors.Wrapf(err, "failed to save %s plot", c.Kind)
	}
	return imgBytes, nil
}
