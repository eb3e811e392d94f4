package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmathews/vecforge/internal/config"
)

const defaultConfigPath = "/etc/vecforge/config.yaml"

const configHeader = `# vecforge configuration.
# app.username and app.database are the settings most installs override;
# everything else matches a stock PGDG PostgreSQL 16 install on EL9.
`

// newConfigInitCmd creates the "config init" subcommand
func newConfigInitCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Write the built-in defaults to a config file for editing. Refuses to overwrite an existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Fprintf(os.Stderr, "Error: %s already exists, refusing to overwrite\n", outPath)
				os.Exit(ExitConfigError)
			}

			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return fmt.Errorf("marshal default config: %w", err)
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(ExitConfigError)
			}
			if err := os.WriteFile(outPath, append([]byte(configHeader), data...), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(ExitConfigError)
			}

			fmt.Printf("Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", defaultConfigPath, "where to write the config file")
	return cmd
}
