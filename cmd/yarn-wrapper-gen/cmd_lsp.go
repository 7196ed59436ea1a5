package main

import (
	"github.com/FabricCore/yarn-wrapper-gen/config"
	"github.com/FabricCore/yarn-wrapper-gen/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var configPath string
	var pkg string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server for mapping files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("package") || cfg.Package == "" {
				cfg.Package = pkg
			}
			server := lsp.NewServer(version, cfg.Options())
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file with generator settings")
	cmd.Flags().StringVar(&pkg, "package", "wrapped", "package used when previewing generated members")

	return cmd
}
