package ingest

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/schoolutil-cli/internal/config"
)

// Dataset is a loaded source snapshot. Raw holds the exact source bytes
// for fingerprinting; Source describes where it came from.
type Dataset struct {
	Source string
	Raw    []byte
	Header []string
	Rows   [][]string
}

// Load reads the dataset from whichever source the config names: a local
// CSV, a local XLSX export, or a CSV snapshot URL.
func Load(ctx context.Context, cfg config.DatasetConfig) (*Dataset, error) {
	switch {
	case cfg.CSVPath != "":
		raw, err := os.ReadFile(cfg.CSVPath)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read csv %s", cfg.CSVPath)
		}
		header, rows, err := ParseCSV(ctx, raw)
		if err != nil {
			return nil, err
		}
		return loaded(cfg.CSVPath, raw, header, rows), nil

	case cfg.XLSXPath != "":
		raw, err := os.ReadFile(cfg.XLSXPath)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read xlsx %s", cfg.XLSXPath)
		}
		header, rows, err := ReadXLSX(cfg.XLSXPath)
		if err != nil {
			return nil, err
		}
		return loaded(cfg.XLSXPath, raw, header, rows), nil

	case cfg.URL != "":
		raw, err := NewDownloader().Fetch(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		header, rows, err := ParseCSV(ctx, raw)
		if err != nil {
			return nil, err
		}
		return loaded(cfg.URL, raw, header, rows), nil

	default:
		return nil, eris.New("ingest: no dataset source configured (set dataset.csv_path, dataset.xlsx_path, or dataset.url)")
	}
}

func loaded(source string, raw []byte, header []string, rows [][]string) *Dataset {
	zap.L().Info("ingest: dataset loaded",
		zap.String("source", source),
		zap.Int("rows", len(rows)),
	)
	return &Dataset{Source: source, Raw: raw, Header: header, Rows: rows}
}
