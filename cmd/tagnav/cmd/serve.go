package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tagnav/internal/mcp"
	"tagnav/internal/tools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tag tools over MCP on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, "serve")
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := mcp.NewServer("tagnav", version, s.logger)
			tools.RegisterAll(server, tools.Deps{
				Host:      s.host(),
				Collector: s.collector(),
				Encoding:  s.tags.Encoding,
				Database:  s.database,
			})

			s.logger.Info("starting MCP server", "version", version, "workdir", s.workdir)
			return server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
