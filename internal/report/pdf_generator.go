package report

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/user/sim_plotter_go/internal/analysis"
	"github.com/user/sim_plotter_go/internal/parser"
	"gonum.org/v1/plot/vg"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// SavedChart is a chart that has been written to disk, kept for the PDF bundle.
type SavedChart struct {
	Kind   Kind
	Path   string
	PNG    []byte
	Width  vg.Length // Full image width, legend column included
	Height vg.Length
}

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64 // Y position of the next flowing element
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) writeTable(headers []string, colWidthsRel []float64, rows [][]string) {
	colWidthsAbs := make([]float64, len(colWidthsRel))
	for i, rel := range colWidthsRel {
		colWidthsAbs[i] = rel * pdfContentWidth
	}
	writeRow := func(cells []string, style string, fill bool) {
		s.checkAddPage(s.lineHeight)
		s.applyStyle(style)
		x := pdfMargin
		for i, cell := range cells {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidthsAbs[i], s.lineHeight, cell, "1", 0, "C", fill, 0, "")
			x += colWidthsAbs[i]
		}
		s.currentY += s.lineHeight
	}
	writeRow(headers, "tableHeader", true)
	for _, row := range rows {
		writeRow(row, "tableCell", false)
	}
}

// addImage places a PNG scaled to fit the remaining content area, keeping its aspect ratio.
func (s *pdfStyler) addImage(imageBytes []byte, imageName string, aspect float64, caption string) error {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if err := s.pdf.Error(); err != nil {
		return errors.Wrapf(err, "failed to register image %s", imageName)
	}

	width := pdfContentWidth
	height := width * aspect
	available := s.pageHeight - s.currentY - s.lineHeight - 2
	if height > available {
		height = available
		width = height / aspect
	}

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.ImageOptions(imageName, x, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height
	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	return nil
}

// BuildPDFReport bundles the saved charts into a landscape PDF: a summary page
// listing the loaded tables, then one chart per page.
func BuildPDFReport(outPath string, rs *parser.ResultSet, charts []SavedChart) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)

	styler := newPDFStyler(pdf)
	styler.newPage()

	keys := rs.SortedKeys()
	styler.writeParagraph(fmt.Sprintf("Simulation Results Report (%d Tables)", len(keys)), "h1", "C")
	styler.addSpacer(5)

	rows := make([][]string, 0, len(keys))
	for i, k := range keys {
		t := rs.Tables[k]
		rows = append(rows, []string{
			analysis.KeyLabel(k),
			fmt.Sprintf("%d", k),
			fmt.Sprintf("%d", len(t.Rows)),
			analysis.StyleFor(i).String(),
			filepath.Base(t.Path),
		})
	}
	styler.writeParagraph("Loaded Tables", "h2", "L")
	styler.writeTable(
		[]string{"Series", "k", "Rows", "Line Style", "File"},
		[]float64{0.15, 0.1, 0.1, 0.15, 0.5},
		rows,
	)

	if len(rs.Warnings) > 0 {
		styler.addSpacer(5)
		styler.writeParagraph("Loading Warnings", "h2", "L")
		for _, w := range rs.Warnings {
			styler.writeParagraph(w, "normal", "L")
		}
	}

	for _, c := range charts {
		styler.newPage()
		styler.writeParagraph(chartDefs[c.Kind].title, "h2", "L")
		if len(c.PNG) == 0 || c.Width <= 0 {
			styler.writeParagraph(fmt.Sprintf("Plot for %s not available.", c.Kind), "normal", "L")
			continue
		}
		if err := styler.addImage(c.PNG, c.Kind.String(), float64(c.Height/c.Width), filepath.Base(c.Path)); err != nil {
			return err
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return errors.Wrap(err, "failed to write PDF report")
	}
	return nil
}
