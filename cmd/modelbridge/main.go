// Package main is the entry point for the modelbridge CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"golang.org/x/term"

	"modelbridge/pkg/config"
	"modelbridge/pkg/gateway"
	"modelbridge/pkg/logger"
	"modelbridge/pkg/providers"
	_ "modelbridge/pkg/providers/all"
	"modelbridge/pkg/tools"
	"modelbridge/pkg/version"
)

var (
	configPath string
	profile    string
	transport  string
	addr       string
)

var rootCmd = &cobra.Command{
	Use:   "modelbridge",
	Short: "modelbridge - MCP tools backed by a hosted model provider",
	Long: `modelbridge exposes ask, ask-pro, web search, web reader and document
parsing tools to MCP clients and forwards every call to one provider profile.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool catalog over MCP",
	Long: `Serve the tool catalog over MCP.

Examples:
  # stdio, for clients that spawn the server
  modelbridge serve

  # Streamable HTTP
  modelbridge serve --transport http --addr 127.0.0.1:8931

  # Gemini profile
  GOOGLE_API_KEY=... modelbridge serve --profile gemini`,
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "provider profile (overrides config)")

	serveCmd.Flags().StringVar(&transport, "transport", "", "transport: stdio or http (overrides config)")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address host:port for the http transport")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLoader returns a loader with command-line overrides applied.
func newLoader() (*config.Loader, error) {
	loader := config.NewLoader()
	if profile != "" {
		loader.Set("provider.profile", profile)
	}
	if transport != "" {
		loader.Set("server.transport", transport)
	}
	if addr != "" {
		if err := loader.SetAddr(addr); err != nil {
			return nil, err
		}
	}
	return loader, nil
}

func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}
	return config.ProvideConfig(loader, configPath)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	if cfg.Server.Transport == config.TransportStdio && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "modelbridge speaks MCP on stdin/stdout; start it from an MCP client or use --transport http.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg)
}

// serve runs the gateway until ctx is done or the transport ends.
func serve(ctx context.Context, cfg *config.Config) error {
	var srv *gateway.Server
	app := fx.New(
		fx.Supply(cfg),
		config.Module,
		logger.Module,
		providers.Module,
		tools.Module,
		gateway.Module,
		fx.Populate(&srv),
		fx.NopLogger, // stdout belongs to the protocol
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-srv.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
