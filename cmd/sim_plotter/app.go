package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/user/sim_plotter_go/internal/parser"
	"github.com/user/sim_plotter_go/internal/report"
	"gonum.org/v1/plot/vg"
)

// Config holds everything a run needs, as parsed from the command line.
type Config struct {
	Dir      string
	OutDir   string // Defaults to Dir
	Ext      string
	Lenient  bool
	Charts   []report.Kind
	Show     bool
	PDFPath  string
	Width    vg.Length // Plot area, legend column excluded
	Height   vg.Length
	LogLevel LogLevel
}

// App runs the discover, load, render pipeline once.
type App struct {
	cfg       Config
	out       io.Writer
	log       *statusLogger
	presenter report.Presenter
}

// NewApp creates a new App for the given configuration. Confirmations go to
// stdout and status lines to stderr.
func NewApp(cfg Config, stdout, stderr io.Writer) *App {
	var presenter report.Presenter = report.NopPresenter{}
	if cfg.Show {
		presenter = report.BrowserPresenter{}
	}
	if cfg.OutDir == "" {
		cfg.OutDir = cfg.Dir
	}
	return &App{
		cfg:       cfg,
		out:       stdout,
		log:       newStatusLogger(stderr, cfg.LogLevel),
		presenter: presenter,
	}
}

// Run executes the pipeline. An empty directory is reported on stdout and is
// not an error; every other failure stops the run and is returned.
func (a *App) Run() error {
	a.log.Infof("Scanning: %s", a.cfg.Dir)
	rs, err := parser.LoadResultSet(a.cfg.Dir, parser.LoadOptions{Ext: a.cfg.Ext, Lenient: a.cfg.Lenient})
	if errors.Is(err, parser.ErrNoResultFiles) {
		fmt.Fprintf(a.out, "No matching files found in the directory: %s\n", a.cfg.Dir)
		return nil
	}
	if err != nil {
		return err
	}
	for _, w := range rs.Warnings {
		a.log.Warnf("%s", w)
	}

	keys := rs.SortedKeys()
	a.log.Infof("Loaded %d tables, k=%v", len(keys), keys)

	saved := make([]report.SavedChart, 0, len(a.cfg.Charts))
	for _, kind := range a.cfg.Charts {
		sc, err := a.renderChart(kind, rs)
		if err != nil {
			return err
		}
		saved = append(saved, sc)
	}

	if a.cfg.PDFPath != "" {
		a.log.Infof("Generating PDF: %s...", a.cfg.PDFPath)
		if err := report.BuildPDFReport(a.cfg.PDFPath, rs, saved); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Report saved to %s\n", a.cfg.PDFPath)
	}
	return nil
}

// renderChart builds one chart, saves it, reports the path and then presents it.
func (a *App) renderChart(kind report.Kind, rs *parser.ResultSet) (report.SavedChart, error) {
	a.log.Debugf("Plot: %s", kind)
	chart, err := report.NewChart(kind, rs)
	if err != nil {
		return report.SavedChart{}, errors.Wrapf(err, "failed to build %s", kind)
	}
	for _, w := range chart.Warnings {
		a.log.Warnf("%s", w)
	}

	path := filepath.Join(a.cfg.OutDir, kind.FileName())
	imgBytes, err := chart.Save(path, a.cfg.Width, a.cfg.Height)
	if err != nil {
		return report.SavedChart{}, err
	}
	fmt.Fprintf(a.out, "Plot saved to %s\n", path)

	if err := a.presenter.Present(path); err != nil {
		a.log.Warnf("Could not display %s: %v", path, err)
	}

	return report.SavedChart{
		Kind:   kind,
		Path:   path,
		PNG:    imgBytes,
		Width:  a.cfg.Width + chart.LegendWidth(),
		Height: a.cfg.Height,
	}, nil
}
