package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/railfill/pkg/config"
	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/evaluate"
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/holes"
	"github.com/matzehuels/railfill/pkg/railing"
)

// holesCommand creates the holes command.
func (c *CLI) holesCommand() *cobra.Command {
	var infillPath string

	cmd := &cobra.Command{
		Use:   "holes <run.toml>",
		Short: "List the holes an arrangement leaves in its frame",
		Long: `List the regions the frame and infill rods enclose, largest first, and
score the arrangement with the quality evaluator.

Without --infill the empty frame is analysed.`,
		Example: `  railfill generate run.toml --seed 7 -o result.json
  railfill holes run.toml --infill result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.Load(args[0])
			if err != nil {
				return err
			}
			frame, err := f.Frame.Build()
			if err != nil {
				return err
			}
			infill := railing.NewInfill(nil)
			if infillPath != "" {
				if infill, err = loadInfill(infillPath); err != nil {
					return err
				}
			}
			return runHoles(frame, infill, f.Generation.Evaluator)
		},
	}

	cmd.Flags().StringVar(&infillPath, "infill", "", "result or infill JSON written by generate --output")
	return cmd
}

func runHoles(frame *railing.Frame, infill *railing.Infill, p evaluate.Params) error {
	p.Kind = evaluate.KindQuality
	ev, err := evaluate.New(p)
	if err != nil {
		return err
	}
	res := ev.Evaluate(infill, frame)

	hs := res.Holes
	printInfo("%d holes, %.1f cm² total", len(hs), holes.TotalArea(hs))
	if len(hs) > 0 {
		fmt.Fprintln(stdout, holesTable(hs))
	}

	printKeyValue("Fitness", fmt.Sprintf("%.3f", res.Fitness))
	if s := res.Scores; s != nil {
		printKeyValue("Holes", fmt.Sprintf("%.3f", s.HoleUniformity))
		printKeyValue("Incircles", fmt.Sprintf("%.3f", s.IncircleUniformity))
		printKeyValue("Angles", fmt.Sprintf("%.3f", s.AngleDistribution))
		printKeyValue("Spacing", fmt.Sprintf("%.3f / %.3f", s.SpacingVertical, s.SpacingOther))
	}
	if res.Rejections.Total() > 0 {
		printWarning("Rejected: %s", res.Rejections.String())
	}
	if infill.RodCount() == 0 {
		printNextStep("Generate an arrangement", "railfill generate <run.toml> --seed 1 -o result.json")
	}
	return nil
}

// loadInfill reads a generate result or a bare infill from path.
func loadInfill(path string) (*railing.Infill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "infill file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read infill")
	}

	var res generate.Result
	if err := json.Unmarshal(data, &res); err == nil && res.Infill != nil {
		return res.Infill, nil
	}
	var in railing.Infill
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode infill")
	}
	return &in, nil
}
