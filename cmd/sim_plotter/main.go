// Command sim_plotter renders comparison charts from a directory of simulation
// result tables named <n>x<k>.csv.
//
// Usage:
//
//	sim_plotter [flags] <path_to_folder>
//
// Charts are written as PNG files into the folder (or -out) and, unless
// -show=false, opened with the desktop image viewer after they are saved.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/user/sim_plotter_go/internal/parser"
	"github.com/user/sim_plotter_go/internal/report"
	"gonum.org/v1/plot/vg"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage: expected exactly one directory argument")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}

	app := NewApp(cfg, stdout, stderr)
	if err := app.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// parseArgs reads flags and the single directory argument. Usage is printed to
// stderr on any problem.
func parseArgs(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("sim_plotter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: sim_plotter [flags] <path_to_folder>\n")
		fs.PrintDefaults()
	}

	var (
		charts   = fs.String("charts", "error_rate_vs_sigma,time_vs_k,ber_vs_snr", "comma separated charts to render")
		ext      = fs.String("ext", parser.DefaultExt, "file extension of result tables")
		lenient  = fs.Bool("lenient", false, "skip files whose name has no <prefix>x<k> key instead of aborting")
		show     = fs.Bool("show", true, "open each chart in the image viewer after saving")
		outDir   = fs.String("out", "", "output directory for charts (default: the input directory)")
		pdfPath  = fs.String("pdf", "", "also bundle the charts into this PDF report")
		width    = fs.Float64("width", 12, "plot width in inches, legend excluded")
		height   = fs.Float64("height", 8, "plot height in inches")
		logLevel = fs.String("log-level", "info", "debug|info|warn|error")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return Config{}, errUsage
	}

	kinds, err := report.ParseKinds(*charts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return Config{}, errUsage
	}
	level, err := ParseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return Config{}, errUsage
	}
	if *width <= 0 || *height <= 0 {
		fmt.Fprintf(stderr, "Error: plot size must be positive\n")
		fs.Usage()
		return Config{}, errUsage
	}

	return Config{
		Dir:      fs.Arg(0),
		OutDir:   *outDir,
		Ext:      *ext,
		Lenient:  *lenient,
		Charts:   kinds,
		Show:     *show,
		PDFPath:  *pdfPath,
		Width:    vg.Length(*width) * vg.Inch,
		Height:   vg.Length(*height) * vg.Inch,
		LogLevel: level,
	}, nil
}
