package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/blockscope/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	ConfigPath string
	Profile    string

	Conn engine.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the blockscope CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "blockscope",
		Short: "blockscope - block-level access analysis for PostgreSQL queries",
		Long: "Reconstructs, for an arbitrary SQL query, the set of physical heap\n" +
			"blocks each referenced relation contributes when the query runs.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "connection profiles file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "connection profile name")
	cmd.PersistentFlags().StringVar(&opts.Conn.Host, "host", "", "database host (default 0.0.0.0)")
	cmd.PersistentFlags().StringVar(&opts.Conn.Port, "port", "", "database port (default 5432)")
	cmd.PersistentFlags().StringVar(&opts.Conn.User, "user", "", "database user (default postgres)")
	cmd.PersistentFlags().StringVar(&opts.Conn.Password, "password", "", "database password (default postgres)")
	cmd.PersistentFlags().StringVar(&opts.Conn.Database, "dbname", "", "database name (default postgres)")

	// Add subcommands
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewBlocksCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// connect resolves the effective connection config (profile file first,
// explicit flags on top, placeholders last) and opens a session.
func connect(opts *RootOptions) (*engine.Session, error) {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resolve connection config", err)
	}
	sess, err := engine.Open(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "connect to database", err)
	}
	return sess, nil
}
