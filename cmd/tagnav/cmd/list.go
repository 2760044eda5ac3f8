package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"tagnav/internal/source"
)

func newListCmd() *cobra.Command {
	var include, asJSON bool

	cmd := &cobra.Command{
		Use:   "list [include]",
		Short: "List every tag as a candidate, sorted by name",
		Long: "Reads the configured tags files and prints one candidate per line. " +
			"With --include (or the argument \"include\") the tags files under the include paths are read instead.",
		ValidArgs: []string{source.IncludeArg},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, "list")
			if err != nil {
				return err
			}
			candidates := s.query(include || slices.Contains(args, source.IncludeArg))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), candidates)
			}
			return writeCandidates(cmd.OutOrStdout(), candidates)
		},
	}

	cmd.Flags().BoolVar(&include, "include", false, "Read tags files under the include paths")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newFilesCmd() *cobra.Command {
	var include bool

	cmd := &cobra.Command{
		Use:   "files",
		Short: "Print the tags files that list would read",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, "files")
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), source.Select(s.host(), selectArgs(include)))
		},
	}

	cmd.Flags().BoolVar(&include, "include", false, "List tags files under the include paths")
	return cmd
}
