package cmd

import (
	"fmt"
	"net"

	"github.com/simonvc/ratedash/internal/web"
	"github.com/spf13/cobra"
)

var (
	webPort int
	webHost string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Launch TUI in browser via a web terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := stderrLogger()

		apiAddr := flagServer
		if !cmd.Flags().Changed("server") {
			addr, cleanup, err := startEmbedded(logger)
			if err != nil {
				return err
			}
			defer cleanup()
			apiAddr = addr
		}

		listenAddr := net.JoinHostPort(webHost, fmt.Sprintf("%d", webPort))
		fmt.Printf("ratedash web UI: http://%s\n", listenAddr)

		webSrv := web.NewServer(listenAddr, apiAddr, web.WithLogger(logger))
		return webSrv.ListenAndServe()
	},
}

func init() {
	webCmd.Flags().IntVar(&webPort, "port", 8833, "HTTP port for web terminal")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "HTTP host for web terminal")
	rootCmd.AddCommand(webCmd)
}
