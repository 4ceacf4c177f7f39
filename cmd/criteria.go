package cmd

import (
	"github.com/chrisdamba/mealgen/internal/generator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCriteriaCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "criteria",
		Short: "Print the sampled orders and their filter criteria as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			dataset, err := generator.NewGenerator(cfg, log).Generate()
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(dataset.Fixtures); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
