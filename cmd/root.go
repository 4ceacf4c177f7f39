package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chrisdamba/mealgen/internal/generator"
	"github.com/chrisdamba/mealgen/internal/logger"
	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// rootOptions carries the state shared by the root command and its subcommands.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "mealgen",
		Short: "Generates meal order fixtures for end-to-end tests",
		Long: `mealgen builds every combination of the configured meal attributes, samples a bounded
set of representative orders from them and derives the order list filters a test
should apply for each row. Fixtures go to the console, files, Kafka or Postgres.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gen := generator.NewGenerator(cfg, log)
			if err := gen.Run(ctx); err != nil {
				log.Error().Err(err).Msg("generation failed")
				return err
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./mealgen.yaml or $HOME/.mealgen.yaml)")

	flags.Int64("seed", 42, "Random seed for price simulation")
	flags.String("today", "", "Reference day for meal dates, e.g. 2024-01-01 or 1.1.2024 (default is the current day)")
	flags.Int("sample-size", 16, "Maximum number of orders to sample")
	flags.Bool("simulate-prices", false, "Attach unit, row and order prices")
	flags.String("output-format", models.OutputFormatConsole, "Output format: "+strings.Join(models.OutputFormats, ", "))
	flags.String("output-path", "", "Base directory for file outputs")
	flags.String("output-folder", "fixtures", "Folder under the output path for file outputs")
	flags.Bool("kafka-enabled", false, "Publish fixtures to Kafka")
	flags.String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.Bool("log-pretty", false, "Human readable log output")
	flags.Bool("dry-run", false, "Generate and summarise without writing")
	flags.Bool("show-progress", false, "Show a progress bar while writing")

	rootCmd.AddCommand(newCriteriaCmd(opts))
	return rootCmd, opts
}

func (o *rootOptions) initConfig(cmd *cobra.Command) error {
	_ = godotenv.Load()

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
	} else {
		o.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			o.v.AddConfigPath(home)
		}
		o.v.SetConfigType("yaml")
		o.v.SetConfigName("mealgen")
	}

	models.ConfigureEnv(o.v)

	if err := o.v.ReadInConfig(); err != nil {
		if o.cfgFile != "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", o.v.ConfigFileUsed())
	return nil
}

// loadConfig layers the flags the user set over env, file and defaults.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*models.Config, zerolog.Logger, error) {
	var bindErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := o.v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, zerolog.Nop(), bindErr
	}

	cfg, err := models.LoadConfig(o.v, "")
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("error loading config: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Out: cmd.ErrOrStderr()})
	log.Debug().
		Int64("seed", cfg.Seed).
		Str("today", cfg.Today.Format("2006-01-02")).
		Str("output_format", cfg.OutputFormat).
		Msg("config loaded")
	return cfg, log, nil
}

func Execute() {
	rootCmd, _ := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
