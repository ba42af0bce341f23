package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opf-attic/jpylyzer/internal/env"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - JP2 image validator and properties extractor",
	}

	rootCmd.AddCommand(
		DefineCheckCommand(),
		DefineBoxesCommand(),
		DefineVersionCommand(),
	)

	return rootCmd.Execute()
}
