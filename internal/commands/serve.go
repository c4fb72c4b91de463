package commands

import (
	"github.com/spf13/cobra"

	"github.com/tally-home/tally/internal/server"
	"github.com/tally-home/tally/internal/store"
)

func newServeCommand() *cobra.Command {
	var repoDir string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the import API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			parser, err := ws.parser("")
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), ws.cfg, ws.dir)
			if err != nil {
				return err
			}
			defer st.Close()

			if addr == "" {
				addr = ws.cfg.Server.Addr
			}
			srv := server.New(server.Options{
				Store:   st,
				Parser:  parser,
				Logger:  ws.log,
				LogRoot: ws.dir,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "data directory")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from tally.yaml)")
	return cmd
}
