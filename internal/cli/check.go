package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/assign"
	"github.com/matzehuels/giftring/pkg/errors"
	pkgio "github.com/matzehuels/giftring/pkg/io"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		flags  requestFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "check [request.toml|request.json]",
		Short: "Validate a request without generating",
		Long: `Validate participants, constraints and shape the way generate does, and
report problems that make generation impossible before any search runs:
pairings both forced and banned, participants forced towards two partners,
forced loops that break a single ring, and unreachable cycle sizes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadedConfig()
			if err != nil {
				return err
			}
			req, err := flags.build(cmd, args, cfg.Generate)
			if err != nil {
				return err
			}
			shape, err := req.Shape.Shape()
			if err != nil {
				return err
			}

			rep := assign.Check(req.Participants, shape, req.Banned, req.Forced)
			if asJSON {
				if err := pkgio.WriteJSON(os.Stdout, rep); err != nil {
					return err
				}
			} else {
				printReport(req, shape, rep)
			}
			if rep.Failure != nil {
				return errors.New(rep.Failure.Reason, "request cannot be generated")
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(req pkgio.Request, shape assign.Shape, rep assign.Report) {
	printInfo("%s, shape %s",
		StyleNumber.Render(fmt.Sprintf("%d participants", len(req.Participants))),
		StyleValue.Render(shape.String()))
	printDetail("%d banned, %d forced pairing(s)", len(rep.Banned), len(rep.Forced))
	if rep.Ignored > 0 {
		printWarning("%d pairing(s) ignored: unknown participant or repeated", rep.Ignored)
	}
	for _, chain := range rep.Chains {
		printDetail("forced chain %s", chain)
	}
	if rep.Failure != nil {
		printError("%s", rep.Failure.Warning)
		return
	}
	printSuccess("Request is valid")
}
