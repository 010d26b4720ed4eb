package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/Zachdehooge/fireguard-dashboard/internal/history"
	"github.com/Zachdehooge/fireguard-dashboard/internal/server"
)

var listenAddr string

// addServeCmd adds the 'serve' subcommand running the interactive dashboard.
func addServeCmd(rootCmd *cobra.Command) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := current.cfg
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}

			var opts []server.Option
			if cfg.HistoryDir != "" {
				store, err := history.Open(cfg.HistoryDir)
				if err != nil {
					return fmt.Errorf("failed to open history: %w", err)
				}
				defer store.Close()
				opts = append(opts, server.WithHistory(store))
			}

			srv := server.New(current.client, cfg, current.logger, opts...)
			cmd.Println(fmt.Sprintf("Dashboard running at http://localhost%s (API %s). Press Ctrl+C to stop.", displayAddr(cfg.ListenAddr), cfg.APIBaseURL))
			return srv.Run(cmd.Context())
		},
	}

	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// displayAddr returns the port part of addr for the startup hint.
func displayAddr(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return ":" + port
	}
	return addr
}
