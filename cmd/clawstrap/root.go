package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonwraymond/clawstrap/bootstrap"
	"github.com/jonwraymond/clawstrap/config"
	"github.com/jonwraymond/clawstrap/diag"
	"github.com/jonwraymond/clawstrap/observe"
)

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "clawstrap [flags] -- command [args...]",
		Short: "Decode credential environment variables, then exec the wrapped command",
		Long: `clawstrap prepares credential files for a wrapped application and then
replaces itself with that application's command line. All diagnostics go to
stderr; stdout, the exit code, and signal handling belong to the wrapped
process.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			app := bootstrap.New(cfg, logger, bootstrap.WithVersion(version))
			return app.Run(cmd.Context(), args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (YAML)")
	flags.String("config-dir", "", "base directory for default credential targets")
	flags.String("manifest", "", "YAML secret manifest overriding the built-in table")
	flags.Bool("debug", false, "emit extended diagnostics and span traces to stderr")

	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("config_dir", flags.Lookup("config-dir"))
	_ = v.BindPFlag("manifest", flags.Lookup("manifest"))
	_ = v.BindPFlag("debug", flags.Lookup("debug"))

	cmd.AddCommand(newDoctorCmd(v), newVersionCmd())
	return cmd
}

// loadConfig resolves the logger and configuration shared by all commands.
// The level is derived from the resolved config, not the raw flag, so
// "debug: true" set only in the config file still lowers the threshold.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (observe.Logger, *config.Config, error) {
	cfg, err := config.Load(cmd.Context(), v, observe.NewLogger("info"))
	if err != nil {
		return nil, nil, err
	}
	return observe.NewLogger(logLevel(cfg)), cfg, nil
}

func logLevel(cfg *config.Config) string {
	if cfg.Debug {
		return "debug"
	}
	return "info"
}

func newDoctorCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [command]",
		Short: "Run the bootstrap diagnostics without handing off",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}

			command := ""
			if len(args) > 0 {
				command = args[0]
			}

			app := bootstrap.New(cfg, logger, bootstrap.WithVersion(version))
			results := app.Diagnose(cmd.Context(), command)
			diag.Report(cmd.Context(), logger, results)

			fmt.Fprintf(cmd.OutOrStdout(), "doctor: %s\n", diag.Overall(results))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the clawstrap version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clawstrap %s\n", version)
		},
	}
}
