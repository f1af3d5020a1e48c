package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/CodeMonkeyCybersecurity/wpcompass/pkg/report"
	"github.com/CodeMonkeyCybersecurity/wpcompass/pkg/scanner"
)

var (
	scanJSON    bool
	scanTimeout time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan <site-url>",
	Short: "Scan a WordPress site and print a migration report",
	Long: `Scan a public WordPress site and print a migration-readiness report.

The scanner probes the WordPress REST API first. When the API is
exposed it enumerates content types, taxonomies, item counts, and
samples, and classifies content complexity from rendered markup. When
the API is blocked, the scan falls back to sitemap and RSS analysis
with estimated counts.

Examples:
  wpcompass scan example.com
  wpcompass scan https://blog.example.com --json > report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit the full report as JSON")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 2*time.Minute, "overall scan deadline")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	s := scanner.New(log, nil, scannerOptions())

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	if !scanJSON {
		fmt.Fprintf(os.Stderr, "\nScanning %s ...\n\n", target)
	}

	result, err := s.Scan(ctx, target)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Result         *scanner.ScanResult `json:"result"`
			Annotations    []report.Annotation `json:"annotations"`
			MigrationScope report.Scope        `json:"migrationScope"`
		}{
			Result:         result,
			Annotations:    report.Annotations(result),
			MigrationScope: report.MigrationScope(result),
		})
	}

	fmt.Println(report.Render(result))
	if !result.APIAvailable {
		color.New(color.Faint).Println("Counts are sitemap estimates. Re-run against a site with an open REST API for exact numbers.")
	}
	return nil
}

func scannerOptions() scanner.Options {
	opts := scanner.Defaults()
	if cfg.Scanner.UserAgent != "" {
		opts.UserAgent = cfg.Scanner.UserAgent
	}
	if cfg.Scanner.ProbeTimeout > 0 {
		opts.ProbeTimeout = cfg.Scanner.ProbeTimeout
	}
	if cfg.Scanner.FetchTimeout > 0 {
		opts.FetchTimeout = cfg.Scanner.FetchTimeout
	}
	if cfg.Scanner.PageTimeout > 0 {
		opts.PageTimeout = cfg.Scanner.PageTimeout
	}
	if cfg.Scanner.RedirectTimeout > 0 {
		opts.RedirectTimeout = cfg.Scanner.RedirectTimeout
	}
	opts.RequestsPerSecond = cfg.Scanner.RateLimit.RequestsPerSecond
	opts.Burst = cfg.Scanner.RateLimit.BurstSize
	opts.AllowPrivateHosts = cfg.Scanner.AllowPrivateHosts
	return opts
}
