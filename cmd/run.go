package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schoolutil-cli/internal/pipeline"
	"github.com/sells-group/schoolutil-cli/internal/utilization"
)

var (
	runCSVPath        string
	runXLSXPath       string
	runURL            string
	runYear           int
	runThresholdsPath string
	runPrintSnapshot  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute a utilization snapshot from the configured dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Flag overrides on top of the config file.
		if runCSVPath != "" {
			cfg.Dataset.CSVPath = runCSVPath
			cfg.Dataset.XLSXPath = ""
			cfg.Dataset.URL = ""
		}
		if runXLSXPath != "" {
			cfg.Dataset.XLSXPath = runXLSXPath
			cfg.Dataset.CSVPath = ""
			cfg.Dataset.URL = ""
		}
		if runURL != "" {
			cfg.Dataset.URL = runURL
			cfg.Dataset.CSVPath = ""
			cfg.Dataset.XLSXPath = ""
		}
		if cmd.Flags().Changed("year") {
			cfg.Dataset.Year = runYear
		}

		thresholds := cfg.Thresholds
		if runThresholdsPath != "" {
			t, err := utilization.LoadThresholds(runThresholdsPath)
			if err != nil {
				return err
			}
			thresholds = t
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		p := pipeline.New(cfg, st, thresholds)
		res, err := p.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("run complete",
			zap.String("run_id", res.Run.ID),
			zap.String("fingerprint", res.Snapshot.Fingerprint),
			zap.Bool("cached", res.Cached),
			zap.Int("buildings", len(res.Snapshot.Buildings)),
			zap.Int("rejections", len(res.Snapshot.Rejections)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if runPrintSnapshot {
			return enc.Encode(res.Snapshot)
		}
		return enc.Encode(res.Run)
	},
}

func init() {
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "path to dataset CSV (overrides config)")
	runCmd.Flags().StringVar(&runXLSXPath, "xlsx", "", "path to dataset XLSX (overrides config)")
	runCmd.Flags().StringVar(&runURL, "url", "", "dataset snapshot URL (overrides config)")
	runCmd.Flags().IntVar(&runYear, "year", 0, "reporting year filter (overrides config; 0 keeps all years)")
	runCmd.Flags().StringVar(&runThresholdsPath, "thresholds", "", "path to threshold override YAML")
	runCmd.Flags().BoolVar(&runPrintSnapshot, "print-snapshot", false, "print the full snapshot JSON instead of the run record")
	rootCmd.AddCommand(runCmd)
}
