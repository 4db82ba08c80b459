package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/born-ml/activation/activation"
	"github.com/born-ml/activation/backend/cpu"
	"github.com/born-ml/activation/tensor"
)

// cli holds the state shared by the subcommands.
type cli struct {
	out     io.Writer
	backend string
	verbose bool
	logger  *slog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "activ",
		Short:         "Evaluate logit and PReLU activations",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.backend, "backend", "", "backend name (default: $ACTIV_BACKEND or cpu)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log backend selection and timings")

	root.AddCommand(c.logitCmd(), c.preluCmd(), c.runCmd(), c.backendsCmd(), versionCmd())
	return root
}

// dispatcher builds a Dispatcher from the environment and the --backend flag.
func (c *cli) dispatcher() (*activation.Dispatcher, error) {
	cfg, err := activation.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}

	d, err := activation.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(d.Backend().Name(), cfg.Backend) {
		c.logger.Warn("backend unavailable, using fallback", "requested", cfg.Backend, "using", d.Backend().Name())
	}
	c.logger.Debug("dispatcher ready", "backend", d.Backend().Name(), "dtype", d.DefaultDType())
	return d, nil
}

// activationFlags are the flags shared by the activation subcommands.
type activationFlags struct {
	eps   float64
	slope string
	shape string
}

func (f *activationFlags) addEps(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.eps, "eps", 0, "clamp input to [eps, 1-eps] first (0 disables)")
}

func (f *activationFlags) addSlope(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.slope, "slope", "", "comma separated slope values")
}

func (f *activationFlags) addShape(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.shape, "shape", "", "comma separated input shape (default: one axis)")
}

// apply parses the input values and runs typ on the configured backend.
func (c *cli) apply(typ activation.Type, f *activationFlags, values []string) error {
	d, err := c.dispatcher()
	if err != nil {
		return err
	}
	defer d.Close()

	x, err := parseTensor(values, f.shape, d.DefaultDType())
	if err != nil {
		return err
	}

	var params activation.Params
	if f.eps > 0 {
		params.Eps = &f.eps
	}
	if f.slope != "" {
		slopeValues, err := parseFloats(strings.Split(f.slope, ","))
		if err != nil {
			return fmt.Errorf("--slope: %w", err)
		}
		params.Slope = slopeValues
		if len(slopeValues) == 1 {
			params.Slope = slopeValues[0]
		}
	}

	y, err := d.Apply(typ, x, params)
	if err != nil {
		return err
	}
	c.logger.Debug("applied", "activation", typ, "shape", y.Shape())
	return c.print(y)
}

func (c *cli) logitCmd() *cobra.Command {
	var f activationFlags

	cmd := &cobra.Command{
		Use:   "logit [flags] VALUE...",
		Short: "Compute log(x / (1 - x)) for each value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.apply(activation.TypeLogit, &f, args)
		},
	}
	f.addEps(cmd)
	f.addShape(cmd)
	return cmd
}

func (c *cli) preluCmd() *cobra.Command {
	var f activationFlags

	cmd := &cobra.Command{
		Use:   "prelu --slope S[,S...] [flags] -- VALUE...",
		Short: "Compute x where x > 0, slope*x otherwise",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.apply(activation.TypePReLU, &f, args)
		},
	}
	f.addSlope(cmd)
	f.addShape(cmd)
	_ = cmd.MarkFlagRequired("slope")
	return cmd
}

func (c *cli) runCmd() *cobra.Command {
	var f activationFlags

	names := lo.Map(activation.Types(), func(t activation.Type, _ int) string { return t.String() })
	cmd := &cobra.Command{
		Use:       "run NAME [flags] -- VALUE...",
		Short:     "Run the activation named NAME (" + strings.Join(names, ", ") + ")",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: names,
		RunE: func(_ *cobra.Command, args []string) error {
			typ, err := activation.FromName(args[0])
			if err != nil {
				return err
			}
			return c.apply(typ, &f, args[1:])
		},
	}
	f.addEps(cmd)
	f.addSlope(cmd)
	f.addShape(cmd)
	return cmd
}

func (c *cli) backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered backends and whether they can be opened",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, name := range activation.Backends() {
				cfg := activation.DefaultConfig()
				cfg.Backend = name
				cfg.FallbackToCPU = false

				d, err := activation.NewFromConfig(cfg)
				if err != nil {
					c.logger.Debug("backend unavailable", "backend", name, "err", err)
					fmt.Fprintf(c.out, "%-8s unavailable\n", name)
					continue
				}
				fmt.Fprintf(c.out, "%-8s %s\n", name, describe(d.Backend()))
				d.Close()
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "activ %s\n", version)
		},
	}
}

// describe reports the device and, for CPU backends, the detected features.
func describe(b tensor.Backend) string {
	if f, ok := b.(interface{ Features() cpu.Features }); ok {
		return fmt.Sprintf("%s %s", b.Device(), f.Features())
	}
	return b.Device().String()
}

func (c *cli) print(t *tensor.RawTensor) error {
	values := lo.Map(t.Float64s(), func(v float64, _ int) string {
		return strconv.FormatFloat(v, 'g', 8, 64)
	})
	_, err := fmt.Fprintf(c.out, "%v [%s]\n", t.Shape(), strings.Join(values, " "))
	return err
}

func parseTensor(args []string, shape string, dtype tensor.DataType) (*tensor.RawTensor, error) {
	values, err := parseFloats(args)
	if err != nil {
		return nil, err
	}

	dims := tensor.Shape{len(values)}
	if shape != "" {
		parsed, err := parseInts(strings.Split(shape, ","))
		if err != nil {
			return nil, fmt.Errorf("--shape: %w", err)
		}
		dims = parsed
	}
	if !dtype.IsFloat() {
		dtype = tensor.Float32
	}
	return tensor.FromFloat64(values, dims, dtype, tensor.CPU)
}

func parseFloats(fields []string) ([]float64, error) {
	fields = lo.Compact(lo.Map(fields, func(s string, _ int) string { return strings.TrimSpace(s) }))
	if len(fields) == 0 {
		return nil, errors.New("no values")
	}

	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields []string) (tensor.Shape, error) {
	out := make(tensor.Shape, 0, len(fields))
	for _, f := range lo.Compact(lo.Map(fields, func(s string, _ int) string { return strings.TrimSpace(s) })) {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid dimension %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}
