package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/assign"
	"github.com/matzehuels/giftring/pkg/errors"
	pkgio "github.com/matzehuels/giftring/pkg/io"
	"github.com/matzehuels/giftring/pkg/pipeline"
)

// requestFlags are the flags that build or amend a request.
type requestFlags struct {
	participants []string
	shape        string
	size         int
	op           string
	banned       []string
	forced       []string
	seed         uint64
	attempts     int
	workers      int
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVarP(&f.participants, "participant", "p", nil, "participant name (repeatable or comma-separated)")
	fl.StringVar(&f.shape, "shape", "", "cycle shape: none, hamiltonian, equal, inequality")
	fl.IntVar(&f.size, "size", 0, "cycle size for equal, bound for inequality")
	fl.StringVar(&f.op, "op", "", "inequality operator: gt or lt")
	fl.StringArrayVar(&f.banned, "ban", nil, "banned pairing GIVER:RECEIVER (repeatable)")
	fl.StringArrayVar(&f.forced, "force", nil, "forced pairing GIVER:RECEIVER (repeatable)")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed (0 draws a fresh one; seeded results are cached)")
	fl.IntVar(&f.attempts, "attempts", 0, "attempt budget (default from config, else 1000)")
	fl.IntVar(&f.workers, "workers", 0, "parallel search workers")
}

// build reads the optional request file and applies the flags on top.
// Participants and shape flags replace the file's values; constraint flags
// add to them.
func (f *requestFlags) build(cmd *cobra.Command, args []string, defaults GenerateConfig) (pkgio.Request, error) {
	var req pkgio.Request
	if len(args) == 1 {
		r, err := pkgio.ReadRequest(args[0])
		if err != nil {
			return pkgio.Request{}, err
		}
		req = r
	}

	changed := cmd.Flags().Changed
	if changed("participant") {
		req.Participants = f.participants
	}
	if changed("shape") {
		req.Shape.Kind = f.shape
	}
	if changed("size") {
		req.Shape.Size = f.size
		if req.Shape.Kind == "" {
			req.Shape.Kind = assign.KindEqual
		}
	}
	if changed("op") {
		req.Shape.Operator = f.op
		req.Shape.Kind = assign.KindInequality
	}
	for _, s := range f.banned {
		c, err := parseConstraint(s)
		if err != nil {
			return pkgio.Request{}, err
		}
		req.Banned = append(req.Banned, c)
	}
	for _, s := range f.forced {
		c, err := parseConstraint(s)
		if err != nil {
			return pkgio.Request{}, err
		}
		req.Forced = append(req.Forced, c)
	}
	if changed("seed") {
		req.Seed = f.seed
	}
	if changed("attempts") {
		req.Attempts = f.attempts
	}
	if changed("workers") {
		req.Workers = f.workers
	}

	if req.Attempts == 0 {
		req.Attempts = defaults.Attempts
	}
	if req.Workers == 0 {
		req.Workers = defaults.Workers
	}
	return req, req.Validate()
}

// parseConstraint parses "GIVER:RECEIVER".
func parseConstraint(s string) (assign.Constraint, error) {
	from, to, ok := strings.Cut(s, ":")
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if !ok || from == "" || to == "" {
		return assign.Constraint{}, errors.New(errors.ErrCodeInvalidInput, "invalid pairing %q (want GIVER:RECEIVER)", s)
	}
	return assign.Constraint{From: from, To: to}, nil
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags   requestFlags
		format  string
		outPath string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "generate [request.toml|request.json]",
		Short: "Generate a gift-exchange assignment",
		Long: `Generate an assignment from a request file, from flags, or from both.

Flags override the participants and shape of a request file and add to its
banned and forced pairings.`,
		Example: `  giftring generate -p Ana,Ben,Cleo,Dev --shape hamiltonian
  giftring generate exchange.toml --seed 7 -o svg --out ring.svg
  giftring generate -p Ana,Ben,Cleo,Dev,Eli,Fay --size 3 --ban Ana:Ben --force Cleo:Dev`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			cfg, err := c.loadedConfig()
			if err != nil {
				return err
			}
			req, err := flags.build(cmd, args, cfg.Generate)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), req, format, outPath, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "output", "o", pipeline.FormatText, "output format: "+strings.Join(pipeline.ValidFormats, ", "))
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(pipeline.ValidFormats, cobra.ShellCompDirectiveNoFileComp))
	cmd.Flags().StringVar(&outPath, "out", "", "write output to this file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, req pkgio.Request, format, outPath string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	var spinner *Spinner
	if req.Attempts >= spinnerThreshold {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Searching up to %d assignments...", req.Attempts))
		spinner.Start()
	}
	out, err := runner.Generate(ctx, req)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if format == pipeline.FormatText && outPath == "" {
		printAssignment(out)
	} else {
		data, err := pipeline.Render(ctx, out, format)
		if err != nil {
			return err
		}
		if outPath == "" {
			if _, err := os.Stdout.Write(data); err != nil {
				return err
			}
		} else {
			if err := errors.ValidatePath(outPath); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			printSuccess("Wrote %s output", format)
			printFile(outPath)
		}
	}

	if !out.Result.Success {
		return errors.New(out.Result.Reason, "no assignment satisfies the request")
	}
	return nil
}

func printAssignment(out *pipeline.Output) {
	res := out.Result
	if len(res.Pairings) == 0 {
		printError("%s", res.Warning)
		return
	}

	if res.Success {
		printSuccess("Assignment for %s", StyleNumber.Render(fmt.Sprintf("%d participants", out.Stats.Participants)))
	} else {
		printWarning("Best assignment found (constraints not fully met)")
	}
	fmt.Println(assignmentTable(out.Request, res))
	fmt.Println(statsLine(out))
	if res.Warning != "" {
		printWarning("%s", res.Warning)
	}
}
