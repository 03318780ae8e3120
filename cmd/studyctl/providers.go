package main

import (
	"github.com/spf13/cobra"
)

func providersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "Show the configured provider tiers in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(c.outputFormat)
			if err != nil {
				return err
			}
			svc, err := c.service(cmd.Context())
			if err != nil {
				return err
			}
			return writeProviders(cmd.OutOrStdout(), format, svc.Providers())
		},
	}
}
