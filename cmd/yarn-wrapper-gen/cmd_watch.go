package main

import (
	"context"
	"fmt"

	"github.com/FabricCore/yarn-wrapper-gen/workspace"
	"github.com/FabricCore/yarn-wrapper-gen/wrapper"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "watch" + generateUsage,
		Short: "Generate wrappers, then regenerate whenever a mapping file changes",
		Args:  flags.positionalArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}
			opts := cfg.RunOptions()
			out := cmd.OutOrStdout()

			// A failed run is reported and the watch goes on until the
			// mappings are fixed.
			generate := func(ctx context.Context, changed []string) error {
				if len(changed) > 0 {
					fmt.Fprintf(out, "%d paths changed\n", len(changed))
				}
				result, err := wrapper.Run(ctx, opts)
				if err != nil {
					fmt.Fprintf(out, "Generation failed: %s\n", err)
					return nil
				}
				fmt.Fprintf(out, "Generated %d wrappers in %s\n", len(result.Files), cfg.Output)
				return nil
			}

			ctx := cmd.Context()
			generate(ctx, nil)

			watcher, err := workspace.NewWatcher(cfg.Source, generate)
			if err != nil {
				return err
			}
			return watcher.Run(ctx)
		},
	}

	flags.register(cmd)

	return cmd
}
