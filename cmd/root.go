// Package cmd wires the wpcompass CLI: scan a site from the terminal
// or run the HTTP API.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/config"
	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/logger"
)

var (
	cfgFile string
	cfg     config.Config
	log     *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wpcompass",
	Short: "WordPress migration-readiness scanner",
	Long: `wpcompass audits a public WordPress site and maps what a migration
would actually involve: content types and their counts, taxonomy
relationships, URL structure, multilingual setup, detected plugins,
and third-party integrations.

The scan is read-only and unauthenticated. It uses the WordPress REST
API when the site exposes it, and falls back to sitemap and RSS
analysis when it does not.

Examples:
  wpcompass scan example.com
  wpcompass scan https://example.com --json
  wpcompass serve --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		var err error
		log, err = logger.New(cfg.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default is .wpcompass.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (json, console)")
	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent header for scan requests")
	rootCmd.PersistentFlags().Float64("rate-limit", 10, "outbound requests per second")
	rootCmd.PersistentFlags().Int("rate-burst", 5, "outbound request burst size")

	viper.BindPFlag("logger.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logger.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("scanner.user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))
	viper.BindPFlag("scanner.rate_limit.requests_per_second", rootCmd.PersistentFlags().Lookup("rate-limit"))
	viper.BindPFlag("scanner.rate_limit.burst_size", rootCmd.PersistentFlags().Lookup("rate-burst"))

	viper.BindEnv("logger.level", "WPCOMPASS_LOG_LEVEL")
	viper.BindEnv("logger.format", "WPCOMPASS_LOG_FORMAT")
	viper.BindEnv("scanner.user_agent", "WPCOMPASS_USER_AGENT")
	viper.BindEnv("server.addr", "WPCOMPASS_ADDR")
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wpcompass")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("WPCOMPASS")

	// Missing config file is fine; flags, env vars, and defaults cover
	// everything.
	_ = viper.ReadInConfig()

	cfg = config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaults := config.Default()
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = defaults.Logger.Level
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = defaults.Logger.Format
	}
	if cfg.Scanner.UserAgent == "" {
		cfg.Scanner.UserAgent = defaults.Scanner.UserAgent
	}
	if cfg.Scanner.RateLimit.RequestsPerSecond == 0 {
		cfg.Scanner.RateLimit.RequestsPerSecond = defaults.Scanner.RateLimit.RequestsPerSecond
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	return nil
}
