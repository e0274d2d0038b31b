package cli

import (
	"encoding/json"
	"time"

	"api_catalog/internal/client"
	"api_catalog/internal/config"

	"github.com/spf13/cobra"
)

// NewProductsCommand creates the products command group, which talks to a running server.
// Without --server the URL is derived from the configured listen address.
func NewProductsCommand(root *RootOptions) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Query a running catalog server",
	}
	cmd.PersistentFlags().StringVar(&server, "server", "", "catalog server base URL (default from config addr, http://localhost:8081)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every product and the listing summary as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("server") {
				cfg, err := config.Load(root.ConfigPath)
				if err != nil {
					return err
				}
				server = cfg.BaseURL()
			}

			c := client.New(server, client.WithTimeout(30*time.Second))
			defer c.Close()

			products, summary, err := c.ListWithSummary(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"results": products, "metadata": summary})
		},
	}

	cmd.AddCommand(list)
	return cmd
}
