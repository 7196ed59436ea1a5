package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/FabricCore/yarn-wrapper-gen/format"
	"github.com/FabricCore/yarn-wrapper-gen/mapping"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <mapping-file>...",
		Short: "Dump the parsed records of mapping files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(dumpFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read mapping file: %w", err)
				}
				classes, err := mapping.ParseUnits(string(data))
				if err != nil {
					return fmt.Errorf("%s: %w", filename, err)
				}
				for _, class := range classes {
					if err := enc.Encode(class); err != nil {
						return fmt.Errorf("encode %s: %w", dumpFormat, err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format ("+strings.Join(format.Names, ", ")+")")

	return cmd
}
