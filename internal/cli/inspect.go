package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	Relation string     `json:"relation"`
	BlockID  int64      `json:"block_id"`
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
}

// NewInspectCommand creates the inspect command (the block browser).
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <relation> <block-id>",
		Short: "Show the rows stored in one heap block of a relation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid block id %q", args[1]), err)
			}
			return runInspect(cmd.Context(), rootOpts, args[0], blockID)
		},
	}
	return cmd
}

func runInspect(ctx context.Context, opts *RootOptions, relation string, blockID int64) error {
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

	headers, rows, err := sess.BlockRows(ctx, relation, blockID)
	if err != nil {
		return WrapExitError(ExitCommandError, "read block contents", err)
	}

	if opts.Format == "json" {
		return out.Success(InspectResult{
			Relation: relation,
			BlockID:  blockID,
			Headers:  headers,
			Rows:     rows,
		})
	}

	fmt.Fprintf(out.Writer, "Block %d of %s (%d rows)\n", blockID, relation, len(rows))
	tw := tabwriter.NewWriter(out.Writer, 2, 4, 2, ' ', 0)
	printRow(tw, headers)
	for _, row := range rows {
		printRow(tw, row)
	}
	return tw.Flush()
}

func printRow(tw *tabwriter.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw)
}
