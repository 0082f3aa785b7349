package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"modelbridge/pkg/config"
	"modelbridge/pkg/logger"
	"modelbridge/pkg/providers"
	"modelbridge/pkg/tools"
)

var toolsFormat string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog for the configured profile",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().StringVar(&toolsFormat, "format", "json", "output format: json or yaml")
}

func runTools(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	cfg, err := loader.Load(configPath)
	if err != nil {
		return err
	}
	return writeCatalog(cmd.OutOrStdout(), cfg, toolsFormat)
}

func writeCatalog(w io.Writer, cfg *config.Config, format string) error {
	// Listing never calls the provider, so a missing credential is fine here.
	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = "unset"
	}
	desc, err := providers.ProvideDescriptor(cfg)
	if err != nil {
		return err
	}

	log, err := logger.New(&logger.Config{Level: logger.LevelError, Console: io.Discard})
	if err != nil {
		return err
	}
	client := providers.NewClient(desc, providers.NewInvokerWithClient(http.DefaultClient))
	registry, err := tools.NewCatalog(client, log)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(registry.Descriptors(), "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		// Schemas only carry JSON tags; go through a generic value.
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
}
