package main

import (
	"fmt"

	"github.com/FabricCore/yarn-wrapper-gen/config"
	"github.com/FabricCore/yarn-wrapper-gen/wrapper"
	"github.com/spf13/cobra"
)

const generateUsage = " <source-dir> <output-dir> <package> [<from> <to>]..."

// generateFlags are shared by every command that runs the generator.
type generateFlags struct {
	configPath       string
	namespace        string
	jobs             int
	noJavadoc        bool
	segmentRepackage bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML config file; positional arguments override it")
	cmd.Flags().StringVar(&f.namespace, "namespace", config.DefaultNamespace, "readable package prefix of the classes that get wrapped")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "classes generated in parallel (0 = number of CPUs)")
	cmd.Flags().BoolVar(&f.noJavadoc, "no-javadoc", false, "do not turn mapping comments into Javadoc")
	cmd.Flags().BoolVar(&f.segmentRepackage, "segment-repackage", false, "match repackaging prefixes on whole package segments only")
}

// positionalArgs accepts no arguments when a config file supplies them.
func (f *generateFlags) positionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && f.configPath != "" {
		return nil
	}
	if len(args) < 3 {
		return fmt.Errorf("requires <source-dir> <output-dir> <package>, received %d arguments", len(args))
	}
	if (len(args)-3)%2 != 0 {
		return config.ErrOddRepackageArgs
	}
	return nil
}

// load layers defaults, the config file, positional arguments and explicitly
// set flags, in that order.
func (f *generateFlags) load(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		if err := cfg.ApplyArgs(args); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("namespace") {
		cfg.Namespace = f.namespace
	}
	if flags.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if f.noJavadoc {
		javadoc := false
		cfg.Javadoc = &javadoc
	}
	if f.segmentRepackage {
		cfg.SegmentRepackage = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newGenerateCmd(name string) *cobra.Command {
	var flags generateFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   name + generateUsage,
		Short: "Generate wrapper classes for every mapped class",
		Long: `Reads every mapping file below <source-dir> and writes one Java wrapper class
per mapped class below <output-dir>, in <package> followed by the class's own
package. Each <from> <to> pair rewrites <from> to <to> in generated package
and type names.`,
		Args:  flags.positionalArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}
			opts := cfg.RunOptions()
			opts.DryRun = dryRun

			result, err := wrapper.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				for _, path := range result.Files {
					fmt.Fprintln(out, path)
				}
				return nil
			}
			fmt.Fprintf(out, "Generated %d wrappers in %s\n", len(result.Files), cfg.Output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "list the files that would be written without writing them")

	return cmd
}
