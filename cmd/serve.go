package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/kozaktomas/contact-album/internal/config"
	"github.com/kozaktomas/contact-album/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Contact Album web server.
The server runs resolution jobs in the background and serves generated
albums, so matching can be driven from a browser instead of the CLI.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (default from WEB_PORT or 8080)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from WEB_HOST or 127.0.0.1)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	host := cfg.Web.Host
	port := cfg.Web.Port
	if v := mustGetString(cmd, "host"); v != "" {
		host = v
	}
	if v := mustGetInt(cmd, "port"); v > 0 {
		port = v
	}

	server := web.NewServer(cfg, host, port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Contact Album on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
