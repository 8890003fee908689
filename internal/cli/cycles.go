package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/errors"
	pkgio "github.com/matzehuels/giftring/pkg/io"
	"github.com/matzehuels/giftring/pkg/pipeline"
)

// cyclesCommand creates the cycles command.
func (c *CLI) cyclesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "cycles assignment.json",
		Short: "Show the giving cycles of an existing assignment",
		Long: `Read an assignment (participants and pairings) and list its cycles.

The assignment must give every participant exactly one receiver and make
every participant exactly one receiver.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatText && format != pipeline.FormatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "cycles supports text and json output, not %q", format)
			}
			a, err := pkgio.ReadAssignmentFile(args[0])
			if err != nil {
				return err
			}
			report, err := pipeline.NewRunner(nil, nil, c.Logger).Cycles(a)
			if err != nil {
				return err
			}

			if format == pipeline.FormatJSON {
				return pkgio.WriteJSON(os.Stdout, report)
			}
			printInfo("%s in %s",
				StyleNumber.Render(fmt.Sprintf("%d participants", len(a.Participants))),
				StyleNumber.Render(fmt.Sprintf("%d cycles", len(report.Cycles))))
			fmt.Println(cyclesTable(report))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", pipeline.FormatText, "output format: text or json")
	return cmd
}
