package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/solardome/helm-nist-crosswalk/internal/crosswalk"
	"github.com/solardome/helm-nist-crosswalk/internal/ingest/nist"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "helm-nist-map error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		helmDir       string
		runsPattern   string
		dataDir       string
		playbookURL   string
		playbookCache string
		mappingConfig string
		outJSON       string
		outCSV        string
		checksumsPath string
		runLogPath    string
		metricsPath   string
		helmVersion   string
		fetchTimeout  time.Duration
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "helm-nist-map",
		Short: "Map HELM benchmark metric groups to NIST AI RMF playbook indicators",
		Long: `Build a weighted crosswalk from HELM Classic metric groups to NIST AI RMF
playbook indicators.

Examples:
  # Use the default HELM download and data directories
  helm-nist-map

  # Read runs from every suite under a HELM output tree
  helm-nist-map --helm-dir=benchmark_output --runs='benchmark_output/runs/**/runs.json'

  # Override the mapping table and export gauges for node_exporter
  helm-nist-map --mapping-config=mapping.yaml --metrics-out=/var/lib/node_exporter/helm_nist.prom`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			doc, err := crosswalk.Run(ctx, crosswalk.Config{
				HELMDir:           helmDir,
				RunsPattern:       runsPattern,
				DataDir:           dataDir,
				PlaybookURL:       playbookURL,
				PlaybookCachePath: playbookCache,
				MappingConfigPath: mappingConfig,
				OutJSONPath:       outJSON,
				OutCSVPath:        outCSV,
				ChecksumsPath:     checksumsPath,
				RunLogPath:        runLogPath,
				MetricsPath:       metricsPath,
				HELMVersion:       helmVersion,
				FetchTimeout:      fetchTimeout,
				Logger:            logger,
				Summary:           cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nrun_id=%s mappings=%d models=%d json=%s csv=%s checksums=%s run_log=%s\n",
				doc.Metadata.RunID, len(doc.Mappings), len(doc.Models),
				doc.Outputs.JSON, doc.Outputs.CSV, doc.Outputs.Checksums, doc.Outputs.RunLog)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&helmDir, "helm-dir", crosswalk.DefaultHELMDir, "HELM release data directory containing schema.json")
	f.StringVar(&runsPattern, "runs", "", "Path or glob of HELM runs.json files (default <helm-dir>/runs.json)")
	f.StringVar(&dataDir, "data-dir", crosswalk.DefaultDataDir, "Directory for the playbook cache and outputs")
	f.StringVar(&playbookURL, "playbook-url", nist.DefaultURL, "NIST AI RMF playbook JSON URL")
	f.StringVar(&playbookCache, "playbook-cache", "", "Playbook cache path (default <data-dir>/playbook.json)")
	f.StringVar(&mappingConfig, "mapping-config", "", "YAML mapping table overriding the built-in categories")
	f.StringVar(&outJSON, "out-json", "", "Output mapping JSON path (default <data-dir>/helm_to_nist_mapping.json)")
	f.StringVar(&outCSV, "out-csv", "", "Output mapping CSV path (default <data-dir>/helm_to_nist_mapping.csv)")
	f.StringVar(&checksumsPath, "checksums", "", "Output checksums.sha256 path (default next to out-json)")
	f.StringVar(&runLogPath, "run-log", "", "Output run log path (default next to out-json)")
	f.StringVar(&metricsPath, "metrics-out", "", "Write a Prometheus textfile with the computed weights")
	f.StringVar(&helmVersion, "helm-version", crosswalk.DefaultHELMVersion, "HELM release recorded in the output metadata")
	f.DurationVar(&fetchTimeout, "fetch-timeout", nist.DefaultTimeout, "Playbook download timeout")
	f.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}
