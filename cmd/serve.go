package cmd

import (
	"github.com/simonvc/ratedash/internal/server"
	"github.com/simonvc/ratedash/internal/store"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := stderrLogger()

		st, err := store.Open(flagDB)
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := newCache(logger)
		if err != nil {
			return err
		}
		defer c.Close()

		srv := server.New(st, serveAddr, server.WithLogger(logger), server.WithCache(c, cacheTTL()))
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", cfg.Addr, "Listen address")
	rootCmd.AddCommand(serveCmd)
}
