package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-orderform/pkg/remote"
)

func newDiscoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Print the list endpoints found in the backend's OpenAPI document",
		Long: `discover reads <backend>/openapi.json and prints the endpoints section
of a config file, ready to paste under "backend:".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := append(a.cfg.ClientOptions(), remote.WithLogger(a.logger))
			endpoints, err := remote.New(opts...).Discover(cmd.Context())
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(map[string]remote.Endpoints{"endpoints": endpoints})
		},
	}
}
