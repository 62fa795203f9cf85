package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coastline-labs/anchor/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the Anchor HTTP API server.

The server reads its configuration from the config file and ANCHOR_*
environment variables. Without an identity provider base URL the server
refuses to start, since every API route requires authentication.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.verifier == nil {
		return fmt.Errorf("identity provider base URL is required to serve the API")
	}

	addr := a.cfg.Server.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	server := httpapi.NewServer(httpapi.Config{
		Addr:            addr,
		WebhookSecret:   a.cfg.Server.WebhookSecret,
		KeepaliveSecret: a.cfg.Server.KeepaliveSecret,
	}, a.verifier, httpapi.Services{
		Users:         a.users,
		Companies:     a.companies,
		Contacts:      a.contacts,
		Interactions:  a.interactions,
		Notes:         a.notes,
		Notifications: a.notifications,
		Threads:       a.threads,
		Search:        a.search,
		Assistant:     a.assistant,
		Stats:         a.stats,
		Keepalive:     a.keepalive,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}
