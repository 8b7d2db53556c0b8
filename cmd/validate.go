package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schoolutil-cli/internal/ingest"
	"github.com/sells-group/schoolutil-cli/internal/model"
	"github.com/sells-group/schoolutil-cli/internal/normalize"
)

var validateCSVPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the normalizer only and print the rejection report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if validateCSVPath != "" {
			cfg.Dataset.CSVPath = validateCSVPath
			cfg.Dataset.XLSXPath = ""
			cfg.Dataset.URL = ""
		}

		ds, err := ingest.Load(ctx, cfg.Dataset)
		if err != nil {
			return err
		}

		res := normalize.Run(ds.Header, ds.Rows, normalize.Options{
			Year:               cfg.Dataset.Year,
			DropZeroEnrollment: cfg.Dataset.DropZeroEnrollment,
		})

		byReason := make(map[model.RejectReason]int)
		for _, rej := range res.Rejections {
			byReason[rej.Reason]++
		}

		zap.L().Info("validation complete",
			zap.String("source", ds.Source),
			zap.Int("valid_buildings", len(res.Records)),
			zap.Int("rejected_rows", len(res.Rejections)),
			zap.Int("skipped_year", res.SkippedYear),
		)

		report := struct {
			Source      string                     `json:"source"`
			Valid       int                        `json:"valid_buildings"`
			SkippedYear int                        `json:"skipped_year"`
			ByReason    map[model.RejectReason]int `json:"rejections_by_reason"`
			Rejections  []model.Rejection          `json:"rejections"`
		}{
			Source:      ds.Source,
			Valid:       len(res.Records),
			SkippedYear: res.SkippedYear,
			ByReason:    byReason,
			Rejections:  res.Rejections,
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateCSVPath, "csv", "", "path to dataset CSV (overrides config)")
	rootCmd.AddCommand(validateCmd)
}
