package cli

import (
	"errors"
	"fmt"

	"api_catalog/internal/catalog"
	"api_catalog/internal/config"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command group.
func NewSeedCommand(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Inspect seed files",
	}

	validate := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a YAML or JSON seed file",
		Long:  "Check a YAML or JSON seed file. Without FILE, the seed_file from the config is checked.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Load(root.ConfigPath)
				if err != nil {
					return err
				}
				if cfg.SeedFile == "" {
					return errors.New("no seed file: pass FILE or set seed_file in the config")
				}
				path = cfg.SeedFile
			}

			products, err := catalog.LoadSeedFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d products OK\n", path, len(products))
			return nil
		},
	}

	cmd.AddCommand(validate)
	return cmd
}
