package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/railfill/pkg/config"
	"github.com/matzehuels/railfill/pkg/evaluate"
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/pipeline"
	"github.com/matzehuels/railfill/pkg/placer"
	"github.com/matzehuels/railfill/pkg/railing"
)

// generateOptions holds flag values that override the run file.
type generateOptions struct {
	cacheOptions
	seed      uint64
	strategy  string
	evaluator string
	rods      int
	layers    int
	attempts  int
	output    string
	tui       bool
	quiet     bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <run.toml>",
		Short: "Fill a railing frame with infill rods",
		Long: `Generate infill rods for the frame described in a run file and print the
bill of materials. Flags override the values in the run file.

Runs with an explicit seed are reproducible and their results are cached.`,
		Example: `  railfill generate run.toml
  railfill generate run.toml --seed 42 --rods 24 --layers 2
  railfill generate run.toml --evaluator quality --tui -o result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.Load(args[0])
			if err != nil {
				return err
			}
			applyOverrides(cmd, &f.Generation, opts)
			return c.runGenerate(cmd.Context(), f, opts)
		},
	}

	opts.cacheOptions.register(cmd)
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 seeds from the clock and disables caching)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", fmt.Sprintf("placement strategy %v", placer.Strategies()))
	cmd.Flags().StringVar(&opts.evaluator, "evaluator", "", fmt.Sprintf("arrangement evaluator %v", evaluate.Kinds()))
	cmd.Flags().IntVar(&opts.rods, "rods", 0, "number of infill rods")
	cmd.Flags().IntVar(&opts.layers, "layers", 0, "number of layers")
	cmd.Flags().IntVar(&opts.attempts, "attempts", 0, "maximum evaluation attempts")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result as JSON to this file")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show an interactive progress view")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print the summary without the bill of materials")

	_ = cmd.RegisterFlagCompletionFunc("strategy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(placer.Strategies()))
		for _, s := range placer.Strategies() {
			names = append(names, string(s))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("evaluator", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(evaluate.Kinds()))
		for _, k := range evaluate.Kinds() {
			names = append(names, string(k))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// applyOverrides copies explicitly set flags onto p.
func applyOverrides(cmd *cobra.Command, p *generate.Params, opts generateOptions) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		p.Seed = opts.seed
	}
	if flags.Changed("strategy") {
		p.Strategy = placer.Strategy(opts.strategy)
	}
	if flags.Changed("evaluator") {
		p.Evaluator.Kind = evaluate.Kind(opts.evaluator)
	}
	if flags.Changed("rods") {
		p.Placement.NumRods = opts.rods
	}
	if flags.Changed("layers") {
		p.Placement.NumLayers = opts.layers
	}
	if flags.Changed("attempts") {
		p.MaxEvaluationAttempts = opts.attempts
	}
}

func (c *CLI) runGenerate(ctx context.Context, f *config.File, opts generateOptions) error {
	frame, err := f.Frame.Build()
	if err != nil {
		return err
	}
	params := f.Generation
	if err := params.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cacheOptions)
	if err != nil {
		return err
	}
	defer runner.Close()

	c.Logger.Debug("generating",
		"frame_rods", frame.RodCount(), "rods", params.Placement.NumRods,
		"layers", params.Placement.NumLayers, "strategy", params.Strategy,
		"evaluator", params.Evaluator.Kind, "seed", params.Seed)

	res, cached, err := c.generate(ctx, runner, frame, params, opts)
	if err != nil {
		return err
	}

	printGenerateResult(res, cached, opts.quiet)

	if opts.output != "" {
		if err := writeJSON(opts.output, res); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// generate picks the progress display: the TUI when requested, log lines
// when verbose, otherwise a spinner.
func (c *CLI) generate(ctx context.Context, runner *pipeline.Runner, frame *railing.Frame, params generate.Params, opts generateOptions) (*generate.Result, bool, error) {
	switch {
	case opts.tui:
		return runTUI(ctx, runner, frame, params)
	case c.Logger.GetLevel() <= log.DebugLevel:
		return runner.Generate(ctx, frame, params, newLogObserver(ctx))
	}
	spinner := newSpinnerWithContext(ctx, "Generating infill...")
	spinner.Start()
	defer spinner.Stop()
	return runner.Generate(ctx, frame, params, spinner.Observer())
}

func printGenerateResult(res *generate.Result, cached, quiet bool) {
	switch res.Status {
	case generate.StatusCompleted:
		printSuccess("Generated %d rods", res.Infill.RodCount())
	case generate.StatusCancelled:
		printWarning("Cancelled with %d rods", res.Infill.RodCount())
	default:
		printError("No acceptable arrangement")
	}
	printStats(res, cached)
	if reason := res.Reason(); reason != "" {
		printDetail("%s", reason)
	}
	if res.Infill.RodCount() == 0 {
		return
	}
	if !quiet {
		printNewline()
		fmt.Fprintln(stdout, bomTable(res.Infill))
	}
	printKeyValue("Length", fmt.Sprintf("%.2f cm", res.Infill.TotalLength()))
	printKeyValue("Weight", fmt.Sprintf("%.3f kg", res.Infill.TotalWeight()))
	printKeyValue("Run", res.RunID)
}

// writeJSON writes v to path as indented JSON.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
