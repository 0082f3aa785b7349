package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"modelbridge/pkg/config"
	"modelbridge/pkg/fileutil"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a starter configuration file with every key at its default.

The file goes to --config when given, otherwise ~/.modelbridge/config.yaml.
The API key is left empty; set it in the file, in MODELBRIDGE_PROVIDER_API_KEY
or in the profile's legacy variable (ZAI_API_KEY, GOOGLE_API_KEY).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfigPath()
		if err != nil {
			return err
		}
		return writeStarterConfig(cmd.OutOrStdout(), path, initForce)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func initConfigPath() (string, error) {
	if p := strings.TrimSpace(configPath); p != "" {
		return filepath.Abs(p)
	}
	home, err := config.GetConfigHome()
	if err != nil {
		return "", fmt.Errorf("resolving config home: %w", err)
	}
	return filepath.Join(home, "config.yaml"), nil
}

func writeStarterConfig(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := config.DefaultConfig()
	if profile != "" {
		cfg.Provider.Profile = profile
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	// The file will hold a credential once edited.
	if err := fileutil.WriteFileAtomic(path, data, 0o600); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
