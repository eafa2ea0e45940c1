package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fxreport-dev/fxreport/internal/config"
	"github.com/fxreport-dev/fxreport/internal/model"
	"github.com/fxreport-dev/fxreport/internal/rates"
	"github.com/fxreport-dev/fxreport/internal/report"
	"github.com/fxreport-dev/fxreport/internal/runlog"
)

func newReportCommand() *cobra.Command {
	var (
		configPath string
		daily      string
		historical string
		out        string
		xlsxOut    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the exchange rates report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if daily != "" {
				cfg.Inputs.Daily = daily
			}
			if historical != "" {
				cfg.Inputs.Historical = historical
			}
			if out != "" {
				cfg.Report.HTMLPath = out
			}
			if xlsxOut != "" {
				cfg.Report.XLSXPath = xlsxOut
			}
			return runReport(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "fxreport.yaml", "config file path")
	cmd.Flags().StringVar(&daily, "daily", "", "daily rates CSV (overrides config)")
	cmd.Flags().StringVar(&historical, "historical", "", "historical rates CSV (overrides config)")
	cmd.Flags().StringVar(&out, "out", "", "output HTML path (overrides config)")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "also write an XLSX workbook to this path")

	return cmd
}

// loadConfig reads the config file. The default path is allowed to be
// absent (built-in defaults apply); an explicitly passed path is not.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

// runReport executes the pipeline: daily parse, historical parse, mean
// calculation, render, write. Per-cell and per-row issues are reported
// and swallowed; structural and I/O errors abort the run.
func runReport(cfg *config.Config) error {
	opts := rates.Options{Currencies: cfg.Currencies}
	if cfg.Inputs.Delimiter != "" {
		opts.Delimiter = rune(cfg.Inputs.Delimiter[0])
	}
	places := int32(cfg.Report.DecimalPlaces)

	var entries []runlog.Entry

	fmt.Printf("Reading daily rates from %s...\n", cfg.Inputs.Daily)
	daily, err := parseDailyFile(cfg.Inputs.Daily, opts)
	if err != nil {
		return err
	}
	warnCurrencies("missing columns in daily file", daily.Missing)
	warnCurrencies("invalid or missing daily values", daily.Invalid)
	warnCurrencies("non-positive daily rates", daily.NonPositive)
	fmt.Printf("Extracted %d daily rates\n", len(daily.Rates))
	entries = append(entries, stageEntry("daily", cfg.Inputs.Daily, len(daily.Rates), len(daily.Invalid)))

	fmt.Printf("Reading historical rates from %s...\n", cfg.Inputs.Historical)
	hist, err := parseHistoricalFile(cfg.Inputs.Historical, opts)
	if err != nil {
		return err
	}
	warnCurrencies("missing columns in historical file", hist.Missing)
	if hist.SkippedRows > 0 {
		fmt.Printf("Warning: skipped %d malformed historical rows\n", hist.SkippedRows)
	}
	sampleCount := 0
	for _, c := range cfg.Currencies {
		samples, ok := hist.Samples[c]
		if !ok {
			continue
		}
		valid := countValid(samples)
		sampleCount += valid
		fmt.Printf("  %s: %d samples\n", c, valid)
	}
	entries = append(entries, stageEntry("historical", cfg.Inputs.Historical, sampleCount, hist.SkippedRows))

	fmt.Println("Calculating mean historical rates...")
	means := rates.MeanRates(hist.Samples)
	for _, c := range cfg.Currencies {
		if mean, ok := means[c]; ok {
			fmt.Printf("  %s: %s\n", c, mean.StringFixed(places))
		}
	}
	entries = append(entries, stageEntry("means", "", len(means), 0))

	if len(daily.Rates) == 0 && len(means) == 0 {
		return errors.New("no exchange rate data found in either input file")
	}

	rows := report.BuildRows(cfg.Currencies, daily.Rates, means)
	page, err := report.RenderHTML(cfg.Report.Title, rows, places)
	if err != nil {
		return err
	}

	fmt.Printf("Saving report to %s...\n", cfg.Report.HTMLPath)
	if err := report.Save(cfg.Report.HTMLPath, page); err != nil {
		return err
	}
	entries = append(entries, stageEntry("write", cfg.Report.HTMLPath, len(rows), 0))

	if cfg.Report.XLSXPath != "" {
		fmt.Printf("Writing workbook to %s...\n", cfg.Report.XLSXPath)
		if err := report.SaveXLSX(cfg.Report.XLSXPath, rows, places); err != nil {
			return err
		}
	}

	if cfg.RunLog.Enabled {
		if err := runlog.Append(cfg.RunLog.Dir, entries); err != nil {
			return err
		}
	}

	fmt.Printf("Report complete: %d currencies\n", len(rows))
	return nil
}

func parseDailyFile(path string, opts rates.Options) (*model.DailyRates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening daily rates: %w", err)
	}
	defer f.Close()

	daily, err := rates.ParseDaily(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return daily, nil
}

func parseHistoricalFile(path string, opts rates.Options) (*model.HistoricalSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening historical rates: %w", err)
	}
	defer f.Close()

	hist, err := rates.ParseHistorical(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return hist, nil
}

func warnCurrencies(msg string, codes []model.CurrencyCode) {
	if len(codes) == 0 {
		return
	}
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = string(c)
	}
	fmt.Printf("Warning: %s: %s\n", msg, strings.Join(names, ", "))
}

func countValid(samples []decimal.NullDecimal) int {
	n := 0
	for _, s := range samples {
		if s.Valid {
			n++
		}
	}
	return n
}

func stageEntry(stage, details string, rows, skipped int) runlog.Entry {
	return runlog.Entry{
		Timestamp: time.Now().UTC(),
		Stage:     stage,
		Details:   details,
		Rows:      rows,
		Skipped:   skipped,
	}
}
