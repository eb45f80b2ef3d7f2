package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gokinet/adapters/advisor"
	"gokinet/adapters/advisor/heuristic"
	"gokinet/adapters/tabular"
	"gokinet/app"
	"gokinet/domain/core"
	"gokinet/domain/mapping"
	"gokinet/domain/rawtable"
	"gokinet/domain/timeaxis"
	"gokinet/domain/validation"
	"gokinet/internal"
	"gokinet/internal/config"
	"gokinet/internal/testkit"
	"gokinet/ports"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gokinet",
		Short: "Kinetic time-series ingestion from tabular exports",
	}

	rootCmd.AddCommand(
		newIngestCmd(),
		newAdviseCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newIngestCmd() *cobra.Command {
	var timeCol int
	var valueCols string
	var experimentCol int
	var replicateCol int
	var timeUnit string
	var noHeader bool
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "ingest [data-file]",
		Short: "Map a tabular export into a validated kinetics dataset",
		Long: `Parse a CSV or XLSX export, map the selected columns onto experiments
and series, and run the validation rules over the result.

Column indices are zero-based. Numeric time values are interpreted in
--time-unit unless the column header declares a unit itself.

Example: gokinet ingest plate_export.csv --time-col 0 --value-cols 1,2 --experiment-col 3 --time-unit min`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := buildSelection(timeCol, valueCols, experimentCol, replicateCol, timeUnit, noHeader)
			if err != nil {
				return err
			}
			return runIngest(args[0], sel, jsonPath)
		},
	}

	cmd.Flags().IntVar(&timeCol, "time-col", 0, "Index of the time column")
	cmd.Flags().StringVar(&valueCols, "value-cols", "", "Comma-separated indices of measured value columns")
	cmd.Flags().IntVar(&experimentCol, "experiment-col", mapping.NoColumn, "Index of the experiment label column (-1 for none)")
	cmd.Flags().IntVar(&replicateCol, "replicate-col", mapping.NoColumn, "Index of the replicate column (-1 for none)")
	cmd.Flags().StringVar(&timeUnit, "time-unit", "s", "Unit for numeric time values: s|min|h|d")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first row as data, not headers")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Write the full result as JSON to this path")

	return cmd
}

func newAdviseCmd() *cobra.Command {
	var apply bool
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "advise [data-file]",
		Short: "Suggest a column mapping for a tabular export",
		Long: `Inspect a CSV or XLSX export and suggest which columns hold time,
measured values, experiment labels and replicates.

Advisor selection is controlled by ADVISOR_ENABLED:
- false (default): built-in heuristics, no network access
- true: OpenAI-compatible endpoint configured via OPENAI_API_KEY,
  ADVISOR_MODEL and ADVISOR_BASE_URL

Example: ADVISOR_ENABLED=true OPENAI_API_KEY=... gokinet advise plate_export.xlsx --apply`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvise(cmd.Context(), args[0], apply, jsonPath)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Map and validate using the advised selection")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Write the advice as JSON to this path")

	return cmd
}

func newGenerateCmd() *cobra.Command {
	cfg := testkit.DefaultKineticsConfig()

	cmd := &cobra.Command{
		Use:   "generate [output-file]",
		Short: "Write a synthetic kinetics CSV for testing the pipeline",
		Long: `Generate a deterministic exponential-decay dataset and write it as CSV.

Example: gokinet generate decay.csv --experiments 3 --points 24 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.Experiments, "experiments", cfg.Experiments, "Number of experiments")
	cmd.Flags().IntVar(&cfg.Replicates, "replicates", cfg.Replicates, "Replicates per experiment")
	cmd.Flags().IntVar(&cfg.Points, "points", cfg.Points, "Points per series")
	cmd.Flags().Float64Var(&cfg.IntervalSec, "interval", cfg.IntervalSec, "Sampling interval in seconds")
	cmd.Flags().Float64Var(&cfg.NoiseStdDev, "noise", cfg.NoiseStdDev, "Gaussian noise standard deviation")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for deterministic output")

	return cmd
}

func runIngest(dataFile string, sel mapping.Selection, jsonPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	data, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dataFile, err)
	}

	service := app.NewIngestService(tabular.NewReader(cfg.Parse.MaxFileBytes), logger)

	started := time.Now()
	result, err := service.Ingest(filepath.Base(dataFile), data, sel)
	if err != nil {
		return err
	}

	if len(result.ConfigErrors) > 0 {
		fmt.Printf("\n🚫 SELECTION PROBLEMS\n")
		for _, ce := range result.ConfigErrors {
			fmt.Printf("• %s: %s\n", ce.Code, ce.Message)
		}
		return fmt.Errorf("selection rejected with %d problems", len(result.ConfigErrors))
	}

	printSummary(result, time.Since(started))

	if jsonPath != "" {
		if err := writeJSON(jsonPath, result); err != nil {
			return err
		}
		fmt.Printf("\nFull result written to %s\n", jsonPath)
	}

	return nil
}

func runAdvise(ctx context.Context, dataFile string, apply bool, jsonPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	data, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dataFile, err)
	}

	reader := tabular.NewReader(cfg.Parse.MaxFileBytes)
	workbook, err := reader.Parse(filepath.Base(dataFile), data, true)
	if err != nil {
		return err
	}
	table := workbook.ActiveTable()

	service := app.NewAdvisoryService(newAdvisor(cfg), cfg.Parse.MaxSampleRows, logger)
	advice, err := service.Advise(ctx, table)
	if err != nil {
		if core.IsAdvisoryError(err) {
			fmt.Println("🚫 Advisor unreachable. Check ADVISOR_BASE_URL and OPENAI_API_KEY, or set ADVISOR_ENABLED=false for offline heuristics.")
		}
		return err
	}

	printAdvice(advice, table)

	if jsonPath != "" {
		if err := writeJSON(jsonPath, advice); err != nil {
			return err
		}
		fmt.Printf("\nAdvice written to %s\n", jsonPath)
	}

	if !apply {
		return nil
	}

	sel, ok := advice.Selection()
	if !ok {
		return fmt.Errorf("no usable column advice to apply")
	}

	started := time.Now()
	result := app.NewIngestService(reader, logger).MapTable(table, sel)
	if len(result.ConfigErrors) > 0 {
		return fmt.Errorf("advised selection rejected with %d problems", len(result.ConfigErrors))
	}
	printSummary(result, time.Since(started))

	return nil
}

func runGenerate(outputFile string, cfg testkit.KineticsConfig) error {
	generator := testkit.NewKineticsGenerator(cfg)
	data := generator.CSV()

	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}

	fmt.Printf("✅ Wrote %d series × %d points to %s (%d bytes)\n",
		cfg.Experiments*cfg.Replicates, cfg.Points, outputFile, len(data))
	return nil
}

// buildSelection turns CLI flags into the engine's column selection
func buildSelection(timeCol int, valueCols string, experimentCol, replicateCol int, timeUnit string, noHeader bool) (mapping.Selection, error) {
	sel := mapping.NewSelection()
	sel.UseHeaderRow = !noHeader
	sel.TimeColumn = timeCol

	for _, part := range strings.Split(valueCols, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, err := strconv.Atoi(part)
		if err != nil {
			return sel, fmt.Errorf("invalid value column %q", part)
		}
		sel.ValueColumns = append(sel.ValueColumns, col)
	}

	if experimentCol != mapping.NoColumn {
		sel.ExperimentColumn = &experimentCol
	}
	if replicateCol != mapping.NoColumn {
		sel.ReplicateColumn = &replicateCol
	}

	if unit, ok := timeaxis.ParseUnit(timeUnit); ok {
		sel.TimeUnit = unit
	} else if strings.TrimSpace(timeUnit) != "" {
		return sel, fmt.Errorf("unknown time unit %q (use s, min, h or d)", timeUnit)
	}

	return sel, nil
}

// newAdvisor picks the LLM-backed suggester when configured, the
// deterministic heuristics otherwise.
func newAdvisor(cfg *config.Config) ports.Advisor {
	if !cfg.Advisor.Enabled {
		return heuristic.NewSuggester()
	}
	return advisor.NewSuggester(advisor.ClientConfig{
		APIKey:      cfg.Advisor.APIKey,
		BaseURL:     cfg.Advisor.BaseURL,
		Model:       cfg.Advisor.Model,
		MaxTokens:   cfg.Advisor.MaxTokens,
		Temperature: cfg.Advisor.Temperature,
		Timeout:     time.Duration(cfg.Advisor.TimeoutSeconds) * time.Second,
	})
}

func printSummary(result *app.IngestResult, elapsed time.Duration) {
	report := result.Report

	fmt.Printf("\n📊 INGESTION RESULTS\n")
	fmt.Printf("Status: %s\n", statusBadge(report.Status))
	fmt.Printf("Processing Time: %v\n", elapsed)
	fmt.Printf("Experiments: %d\n", report.Counts.Experiments)
	fmt.Printf("Series: %d\n", report.Counts.Series)
	fmt.Printf("Points: %d (dropped: %d)\n", report.Counts.Points, report.Counts.DroppedPoints)

	if result.Mapping.RowErrors.Count > 0 {
		fmt.Printf("\n⚠️  DISCARDED ROWS: %d (first: %v)\n",
			result.Mapping.RowErrors.Count, result.Mapping.RowErrors.Rows)
	}
	if n := result.Mapping.TimeAxis.SerialSuspectCount; n > 0 {
		fmt.Printf("ℹ️  %d time values look like spreadsheet serial dates\n", n)
	}

	for _, finding := range report.DatasetFindings {
		fmt.Printf("%s %s: %s\n", severityIcon(finding.Severity), finding.Code, finding.Description)
	}

	for _, exp := range report.ExperimentSummaries {
		if len(exp.Findings) == 0 {
			continue
		}
		fmt.Printf("\n%s %s\n", statusBadge(exp.Status), exp.ExperimentName)
		for _, finding := range exp.Findings {
			fmt.Printf("  %s %s [%s]: %s\n",
				severityIcon(finding.Severity), finding.Code, finding.SeriesName, finding.Description)
		}
	}
}

func printAdvice(advice *app.Advice, table *rawtable.RawTable) {
	fmt.Printf("\n🔎 COLUMN SUGGESTIONS\n")
	if advice.Columns == nil {
		fmt.Printf("• no usable advice: %v\n", advice.ColumnsErr)
	} else {
		for _, s := range advice.Columns.Suggestions {
			fmt.Printf("• %d %q → %s (%.0f%%)", s.Column, table.ColumnName(s.Column), s.Role, s.Confidence*100)
			if s.Rationale != "" {
				fmt.Printf(": %s", s.Rationale)
			}
			fmt.Println()
		}
		if advice.Columns.TimeUnit != "" {
			fmt.Printf("Time unit: %s\n", advice.Columns.TimeUnit)
		}
	}

	if advice.GroupingCol == mapping.NoColumn {
		return
	}

	fmt.Printf("\n🏷️  EXPERIMENT GROUPS (column %d %q)\n", advice.GroupingCol, table.ColumnName(advice.GroupingCol))
	if advice.Grouping == nil {
		fmt.Printf("• no usable grouping: %v\n", advice.GroupingErr)
		return
	}
	for _, g := range advice.Grouping.Groups {
		fmt.Printf("• %q ← %s\n", g.Canonical, strings.Join(g.Members, ", "))
	}
}

func statusBadge(status validation.Status) string {
	switch status {
	case validation.StatusClean:
		return "✅ clean"
	case validation.StatusNeedsInfo:
		return "⚠️  needs-info"
	default:
		return "🚫 broken"
	}
}

func severityIcon(severity validation.Severity) string {
	switch severity {
	case validation.SeverityError:
		return "🚫"
	case validation.SeverityWarn:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
