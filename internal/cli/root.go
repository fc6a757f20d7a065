// Package cli provides the command-line interface for polycue.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/polycue/internal/output/manager"
	"github.com/jmylchreest/polycue/internal/version"
)

var (
	// Global flags
	globalVerbose bool
	globalQuiet   bool

	// Output writer manager shared by the generate command
	outputManager *manager.Manager
)

// NewRootCmd builds the polycue command tree. Each call returns a fresh tree
// with its own writer manager and flag bindings.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polycue",
		Short: "Generate visually distinct polygonal colour markers",
		Long: `polycue generates sets of visually distinct, multi-colour polygonal markers
("tags"). Each tag is a regular polygon whose wedges are filled with colours
chosen to be as far apart as possible in CIE Lab space, both within a tag and
across the whole set.

Tags are written as PNG images together with a JSON manifest describing every
colour, so they can be recognised at a glance or by a vision pipeline.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Initialise writer manager from environment config
	outputManager = manager.NewBuilder().
		WithEnvConfig().
		Build()

	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCapacityCmd())
	rootCmd.AddCommand(newPoolCmd())
	rootCmd.AddCommand(newInspectCmd())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns the pipeline logger: debug output on stderr when verbose,
// silent otherwise.
func newLogger(cmd *cobra.Command) hclog.Logger {
	if globalVerbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "polycue",
			Output: cmd.ErrOrStderr(),
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "polycue",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// stdout returns the writer for normal output, discarding it under --quiet.
func stdout(cmd *cobra.Command) io.Writer {
	if globalQuiet {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

var versionJSON bool

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			if versionJSON {
				data, err := info.JSON()
				if err != nil {
					return fmt.Errorf("failed to marshal version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
	return cmd
}
