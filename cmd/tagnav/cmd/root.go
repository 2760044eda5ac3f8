package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tagnav/internal/config"
	"tagnav/internal/db"
	"tagnav/internal/logging"
	"tagnav/internal/source"
	"tagnav/internal/tags"
)

const version = "0.1.0"

// NewRootCmd builds the tagnav command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tagnav",
		Short: "List ctags symbols as navigation candidates",
		Long: "tagnav reads ctags tags files and turns every tag into a candidate " +
			"(name, file, line or search pattern), sorted by name.",
		SilenceUsage: true,
	}

	f := rootCmd.PersistentFlags()
	f.String("tags", "", "Comma separated tags files, vim 'tags' syntax (env TAGNAV_TAGS)")
	f.String("include-path", "", "Include roots searched with --include (env TAGNAV_INCLUDE_PATH)")
	f.String("tag-names", "", "Comma separated tags file names for the include walk (env TAGNAV_TAG_NAMES)")
	f.String("encoding", "", "Encoding of the tags files (env TAGNAV_ENCODING)")
	f.String("workdir", "", "Directory relative tags entries resolve against (default: cwd)")
	f.String("log-level", "", "debug, info, warn, error (env TAGNAV_LOG_LEVEL)")
	f.String("db", "", "SQLite snapshot path (env TAGNAV_DB_PATH, default "+config.DefaultDatabasePath+")")
	f.String("dsn", "", "PostgreSQL connection string for the snapshot (env TAGNAV_DB_DSN)")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newFilesCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// settings is the environment configuration with flag overrides applied.
type settings struct {
	tags     config.TagsConfig
	database config.DatabaseConfig
	workdir  string
	logger   *slog.Logger
}

func loadSettings(cmd *cobra.Command, component string) (*settings, error) {
	f := cmd.Flags()

	logCfg := logging.LoadConfigFromEnv(component)
	if lvl, _ := f.GetString("log-level"); lvl != "" {
		level, ok := logging.ParseLevel(lvl)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", lvl)
		}
		logCfg.Level = level
	}

	s := &settings{
		tags:     config.LoadTagsConfigFromEnv(),
		database: config.LoadDatabaseConfigFromEnv(),
		logger:   logging.New(logCfg),
	}
	if v, _ := f.GetString("tags"); v != "" {
		s.tags.Tags = config.SplitOption(v)
	}
	if v, _ := f.GetString("include-path"); v != "" {
		s.tags.IncludePaths = config.SplitPathList(v)
	}
	if v, _ := f.GetString("tag-names"); v != "" {
		s.tags.TagNames = config.SplitOption(v)
	}
	if v, _ := f.GetString("encoding"); v != "" {
		s.tags.Encoding = v
	}

	s.workdir, _ = f.GetString("workdir")
	if s.workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		s.workdir = wd
	}

	if v, _ := f.GetString("dsn"); v != "" {
		s.database.Type = db.DatabasePostgres
		s.database.DSN = v
	}
	if v, _ := f.GetString("db"); v != "" {
		s.database.Type = db.DatabaseSQLite
		s.database.Path = v
	}
	if s.database.Type == db.DatabaseSQLite && s.database.Path != "" && !filepath.IsAbs(s.database.Path) {
		s.database.Path = filepath.Join(s.workdir, s.database.Path)
	}
	return s, nil
}

func (s *settings) host() *source.FSHost {
	return source.NewFSHost(s.tags, s.workdir, s.logger)
}

func (s *settings) collector() *tags.Collector {
	return tags.NewCollector(nil, s.logger)
}

// query runs one collection; include selects the include tags files.
func (s *settings) query(include bool) []tags.Candidate {
	return source.Query(s.host(), s.collector(), s.tags.Encoding, selectArgs(include))
}

func selectArgs(include bool) []string {
	if include {
		return []string{source.IncludeArg}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print tagnav version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tagnav %s\n", version)
		},
	}
}
