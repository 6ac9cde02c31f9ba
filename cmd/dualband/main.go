// Command dualband runs the dual-band negative half-cycle distortion offline.
//
// Usage:
//
//	dualband [flags] -in input.wav -out output.wav
//	dualband -response [-rate 48000] [-cutoff 1000]
//	dualband -thd [-freq 100] [-low 1] [-high 0]
//	dualband -list-modes
//
// Band modes are given as host indices (0, 1, 2) or names (off, half, full).
//
// Examples:
//
//	dualband -in guitar.wav -out fuzz.wav -cutoff 400 -low full -high half
//	dualband -response -rate 44100 -cutoff 200
//	dualband -thd -freq 100 -cutoff 1000 -low half
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-dualband/dsp/core"
	"github.com/cwbudde/algo-dualband/dsp/effects"
	"github.com/cwbudde/algo-dualband/dsp/effects/dualband"
	"github.com/cwbudde/algo-dualband/dsp/filter/biquad"
	"github.com/cwbudde/algo-dualband/dsp/filter/crossover"
	"github.com/cwbudde/algo-dualband/dsp/signal"
	"github.com/cwbudde/algo-dualband/internal/render"
	"github.com/cwbudde/algo-dualband/measure/response"
	"github.com/cwbudde/algo-dualband/measure/thd"
)

var errUsage = errors.New("usage")

// responseFrequencies are the rows of the -response table.
var responseFrequencies = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}

type options struct {
	in, out   string
	cutoff    float64
	low, high string
	block     int
	rate      float64
	freq      float64
	logLevel  string
	response  bool
	thd       bool
	listModes bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 2
	}

	level, err := resolveLogLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch {
	case opts.listModes:
		err = printModes(stdout)
	case opts.response:
		err = printResponse(stdout, opts)
	case opts.thd:
		err = printTHD(stdout, opts, logger)
	default:
		err = renderFile(opts, logger)
	}

	if err != nil {
		logger.Error("dualband failed", "err", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("dualband", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.in, "in", "", "input WAV file")
	fs.StringVar(&opts.out, "out", "", "output WAV file")
	fs.Float64Var(&opts.cutoff, "cutoff", crossover.DefaultCutoff, "crossover frequency in Hz (20..20000)")
	fs.StringVar(&opts.low, "low", "0", "low band mode: 0|off, 1|half, 2|full")
	fs.StringVar(&opts.high, "high", "0", "high band mode: 0|off, 1|half, 2|full")
	fs.IntVar(&opts.block, "block", 512, "processing block size in samples")
	fs.Float64Var(&opts.rate, "rate", 48000, "sample rate for -response and -thd")
	fs.Float64Var(&opts.freq, "freq", 100, "test tone frequency for -thd")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	fs.BoolVar(&opts.response, "response", false, "print the measured crossover response")
	fs.BoolVar(&opts.thd, "thd", false, "print the harmonic content of a processed test tone")
	fs.BoolVar(&opts.listModes, "list-modes", false, "list band modes")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dualband [flags] -in input.wav -out output.wav\n\n")
		fmt.Fprintf(stderr, "Splits each channel at -cutoff and shapes the negative half-cycle\n")
		fmt.Fprintf(stderr, "of each band independently.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  dualband -in in.wav -out out.wav -cutoff 400 -low full\n")
		fmt.Fprintf(stderr, "  dualband -response -rate 44100 -cutoff 200\n")
		fmt.Fprintf(stderr, "  dualband -thd -freq 100 -low half\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() > 0 {
		fs.Usage()
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.block <= 0 {
		return opts, fmt.Errorf("block size must be positive, got %d", opts.block)
	}
	if !core.ValidSampleRate(opts.rate) {
		return opts, fmt.Errorf("sample rate must be positive, got %v", opts.rate)
	}
	if !opts.listModes && !opts.response && !opts.thd && (opts.in == "" || opts.out == "") {
		fs.Usage()
		return opts, errUsage
	}

	return opts, nil
}

func resolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

func parseMode(s string) (effects.BandMode, error) {
	m, ok := effects.BandModeFromString(s)
	if !ok {
		return effects.BandModeOff, fmt.Errorf("invalid band mode %q", s)
	}
	return m, nil
}

// newProcessor builds a processor from the command-line parameters, routed
// through the same bridge a host would use.
func newProcessor(opts options, logger *slog.Logger, spec ...core.ProcessorOption) (*dualband.Processor, error) {
	low, err := parseMode(opts.low)
	if err != nil {
		return nil, err
	}
	high, err := parseMode(opts.high)
	if err != nil {
		return nil, err
	}

	p := dualband.New(
		dualband.WithLogger(logger),
		dualband.WithSpec(append([]core.ProcessorOption{core.WithBlockSize(opts.block)}, spec...)...),
	)
	p.OnParameterChanged(dualband.ParamCutoff, float32(opts.cutoff))
	p.OnParameterChanged(dualband.ParamLowMode, float32(low))
	p.OnParameterChanged(dualband.ParamHighMode, float32(high))

	s := p.Snapshot()
	logger.Debug("parameters",
		"cutoff", s.Cutoff,
		"low", s.Low.Label(),
		"high", s.High.Label())

	return p, nil
}

func renderFile(opts options, logger *slog.Logger) error {
	p, err := newProcessor(opts, logger)
	if err != nil {
		return err
	}

	stats, err := render.RenderFile(opts.in, opts.out, p, logger)
	if err != nil {
		return err
	}

	logger.Info("done",
		"frames", stats.Frames,
		"seconds", float64(stats.Frames)/float64(stats.Format.SampleRate))
	return nil
}

func printModes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Index\tName\tLabel\n")
	fmt.Fprintf(tw, "-----\t----\t-----\n")
	for _, m := range effects.BandModes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", m, m, m.Label())
	}
	return tw.Flush()
}

func printResponse(w io.Writer, opts options) error {
	xo := crossover.New(core.WithSampleRate(opts.rate), core.WithChannels(1))
	cutoff := xo.SetCutoffFrequency(opts.cutoff)

	res, err := response.MeasureCrossover(xo, response.DefaultFFTSize)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "LR%d crossover at %.1f Hz, %.0f Hz sample rate\n", crossover.Order, cutoff, opts.rate)
	fmt.Fprintf(w, "biquad kernel %s (registered: %s)\n\n", biquad.Kernel(), strings.Join(biquad.Kernels(), ", "))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Freq [Hz]\tLow [dB]\tHigh [dB]\tSum [dB]\t\n")
	for _, f := range responseFrequencies {
		if f >= opts.rate/2 {
			continue
		}
		fmt.Fprintf(tw, "%.0f\t%.2f\t%.2f\t%.3f\t\n",
			f, res.Low.MagnitudeDB(f), res.High.MagnitudeDB(f), math.Abs(res.Sum.MagnitudeDB(f)))
	}
	return tw.Flush()
}

func printTHD(w io.Writer, opts options, logger *slog.Logger) error {
	p, err := newProcessor(opts, logger, core.WithSampleRate(opts.rate), core.WithChannels(1))
	if err != nil {
		return err
	}

	gen, err := signal.NewGenerator(opts.rate)
	if err != nil {
		return err
	}

	// Two seconds of tone; the first half lets the crossover settle.
	n := gen.Samples(2)
	tone, err := gen.Sine(opts.freq, 1, n)
	if err != nil {
		return err
	}
	p.ProcessBlock([][]float64{tone}, 1)

	res, err := thd.AnalyzeSignal(tone[n/2:], thd.Config{
		SampleRate:      opts.rate,
		FundamentalFreq: opts.freq,
		MaxHarmonics:    9,
	})
	if err != nil {
		return err
	}

	s := p.Snapshot()
	fmt.Fprintf(w, "%.1f Hz tone, cutoff %.1f Hz, low %q, high %q\n\n", opts.freq, s.Cutoff, s.Low.Label(), s.High.Label())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Fundamental\t%.1f Hz\n", res.FundamentalFreq)
	fmt.Fprintf(tw, "DC\t%.4f\n", res.DC)
	fmt.Fprintf(tw, "THD\t%.2f %%\n", res.THD*100)
	fmt.Fprintf(tw, "Even\t%.2f %%\n", res.EvenHD*100)
	fmt.Fprintf(tw, "Odd\t%.2f %%\n", res.OddHD*100)
	for k, h := range res.Harmonics {
		fmt.Fprintf(tw, "H%d\t%.2f dB\n", k+2, core.LinearToDB(h))
	}
	return tw.Flush()
}
