package cli

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/blockscope/internal/plan"
)

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <query>",
		Short: "Show the execution plan tree for a query",
		Long: `Obtain the engine's EXPLAIN (FORMAT JSON) plan for a query and
render it as an operator tree.

With --format json the raw EXPLAIN document is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), rootOpts, strings.TrimSpace(args[0]))
		},
	}
	return cmd
}

func runPlan(ctx context.Context, opts *RootOptions, query string) error {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Verbose:   opts.Verbose,
	}

	sess, err := connect(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	out.VerboseLog("explaining query: %s", query)
	doc, err := sess.Plan(ctx, query)
	if err != nil {
		return WrapExitError(ExitCommandError, "get query plan", err)
	}

	tree, err := plan.Parse(doc)
	if err != nil {
		return WrapExitError(ExitCommandError, "parse query plan", err)
	}

	if opts.Format == "json" {
		var raw json.RawMessage = doc
		return out.Success(raw)
	}
	return out.Success(strings.TrimRight(tree.Render(), "\n"))
}
