package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagnav/internal/store"
	"tagnav/internal/tags"
)

func newExportCmd() *cobra.Command {
	var include bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current candidates to the snapshot database",
		Long: "Collects candidates like list and replaces the contents of the snapshot " +
			"database (SQLite by default, PostgreSQL with --dsn) with them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, "export")
			if err != nil {
				return err
			}

			candidates := s.query(include)

			st, err := store.Open(cmd.Context(), s.database.ToDBConfig())
			if err != nil {
				return fmt.Errorf("opening snapshot %s: %w", s.database, err)
			}
			defer st.Close()

			if _, err := st.Replace(cmd.Context(), candidates); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}

			tagCount, fileCount, err := st.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("reading snapshot stats: %w", err)
			}
			s.logger.Info("snapshot written", "database", s.database.String(), "tags", tagCount, "files", fileCount)
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d tags from %d tags files to %s\n", tagCount, fileCount, s.database)
			return nil
		},
	}

	cmd.Flags().BoolVar(&include, "include", false, "Export tags files under the include paths")
	return cmd
}

func newLookupCmd() *cobra.Command {
	var kind string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look a tag up by exact name in the snapshot database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, "lookup")
			if err != nil {
				return err
			}

			st, err := store.OpenExisting(cmd.Context(), s.database.ToDBConfig())
			if err != nil {
				return err
			}
			defer st.Close()

			found, err := st.FindByName(cmd.Context(), args[0], kind, limit)
			if err != nil {
				return err
			}
			if asJSON {
				if found == nil {
					found = []tags.Candidate{}
				}
				return writeJSON(cmd.OutOrStdout(), found)
			}
			if len(found) == 0 {
				return fmt.Errorf("tag %q not found", args[0])
			}
			return writeCandidates(cmd.OutOrStdout(), found)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only match tags of this kind")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
