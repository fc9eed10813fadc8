package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sky-flux/irt"
	"github.com/sky-flux/irt/estimation"
	"github.com/sky-flux/irt/internal/metrics"
)

// MStepOptions holds flags for the mstep command.
type MStepOptions struct {
	ConfigPath  string
	InputPath   string
	MetricsFile string
	Commit      bool
}

// MStepResult is the output of the mstep command.
type MStepResult struct {
	Diagnostics   estimation.Diagnostics `json:"diagnostics"`
	LogLikelihood *float64               `json:"log_likelihood,omitempty"`
	Committed     bool                   `json:"committed"`
	Items         []ItemResult           `json:"items"`
	Distribution  DistributionResult     `json:"distribution"`
}

// ItemResult reports one item after the pass.
type ItemResult struct {
	ID         string     `json:"id,omitempty"`
	Family     irt.Family `json:"family"`
	Parameters []float64  `json:"parameters"`
	Proposal   []float64  `json:"proposal"`
}

// DistributionResult reports the latent distribution after the pass.
type DistributionResult struct {
	Points            []float64 `json:"points"`
	Densities         []float64 `json:"densities"`
	Mean              float64   `json:"mean"`
	StandardDeviation float64   `json:"standard_deviation"`
}

// NewMStepCommand creates the mstep command.
func NewMStepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MStepOptions{}

	cmd := &cobra.Command{
		Use:   "mstep",
		Short: "Run one maximization pass",
		Long: `Run one maximization pass over the items of a calibration input.

The input lists the items, the quadrature and either expected counts
(estimates) or a raw response matrix (responses), in which case an
expectation step runs first. With --commit the proposals are committed
and the latent distribution is re-estimated and rescaled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMStep(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (YAML)")
	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "calibration input file (YAML)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.Commit, "commit", false, "commit proposals and update the latent distribution")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runMStep(rootOpts *RootOptions, opts *MStepOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose)

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	in, err := LoadInput(opts.InputPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load input", err)
	}

	items, err := irt.NewModels(in.Items)
	if err != nil {
		return WrapExitError(ExitCommandError, "build items", err)
	}
	dist, err := in.Quadrature.Distribution()
	if err != nil {
		return WrapExitError(ExitCommandError, "build quadrature", err)
	}

	result := &MStepResult{}
	est := in.Estimates
	if est == nil {
		var loglik float64
		est, loglik, err = estimation.Estep(items, dist, in.Responses)
		if err != nil {
			return WrapExitError(ExitCommandError, "expectation step", err)
		}
		result.LogLikelihood = &loglik
		logger.Debug("expectation step complete", "examinees", len(in.Responses), "loglik", loglik)
	}

	reg := prometheus.NewRegistry()
	m, err := estimation.NewMStep(cfg.estimationConfig(logger, metrics.NewPrometheus(reg, cfg.MetricsNamespace)))
	if err != nil {
		return WrapExitError(ExitCommandError, "configure mstep", err)
	}

	ctx := cmd.Context()
	result.Diagnostics, err = m.Run(ctx, items, dist, est)
	if err != nil {
		return WrapExitError(ExitFailure, "maximization pass", err)
	}
	if opts.Commit {
		for _, item := range items {
			item.Commit()
		}
		if _, err := m.UpdateLatentDistribution(ctx, items, dist, est); err != nil {
			return WrapExitError(ExitFailure, "update latent distribution", err)
		}
		result.Committed = true
	}

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, reg); err != nil {
			return WrapExitError(ExitCommandError, "write metrics", err)
		}
	}

	for j, item := range items {
		result.Items = append(result.Items, ItemResult{
			ID:         in.Items[j].ID,
			Family:     item.Family(),
			Parameters: item.Parameters(),
			Proposal:   item.Proposal(),
		})
	}
	result.Distribution = DistributionResult{
		Points:            dist.Points(),
		Densities:         dist.Densities(),
		Mean:              dist.Mean(),
		StandardDeviation: dist.StandardDeviation(),
	}
	return formatter.Success(result)
}

// WriteText prints the result as aligned tables.
func (r *MStepResult) WriteText(w io.Writer) error {
	d := r.Diagnostics
	fmt.Fprintf(w, "Diagnostics: hard failures %d, negative discrimination %d, negative guessing %d, slipping out of range %d\n",
		d.HardFailures, d.NegativeDiscrimination, d.NegativeGuessing, d.SlippingOutOfRange)
	if r.LogLikelihood != nil {
		fmt.Fprintf(w, "Log-likelihood: %.6f\n", *r.LogLikelihood)
	}
	fmt.Fprintf(w, "Committed: %t\n\n", r.Committed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tFAMILY\tPARAMETERS\tPROPOSAL")
	for j, item := range r.Items {
		id := item.ID
		if id == "" {
			id = fmt.Sprint(j)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, item.Family, formatVector(item.Parameters), formatVector(item.Proposal))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nDistribution: %d points, mean %.6f, sd %.6f\n",
		len(r.Distribution.Points), r.Distribution.Mean, r.Distribution.StandardDeviation)
	return err
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 4, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
