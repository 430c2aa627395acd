package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"doctag/internal/cache"
	"doctag/internal/model"
	"doctag/internal/pipeline"
	"doctag/internal/report"
	"doctag/internal/validate"
	"doctag/internal/worker"
)

var (
	outJSON    string
	outExcel   string
	workers    int
	noCache    bool
	verifyMode string
	llmModel   string
	llmBaseURL string
	timeout    time.Duration
)

var processCmd = &cobra.Command{
	Use:   "process <file-or-directory>",
	Short: "Extract and validate metadata from contracts",
	Long: `Process reads every supported document under the given path, masks
personal data, extracts metadata through the configured language model,
and validates the results.

Example:
  doctag process ./contracts --json registry.json --excel registry.xlsx
  doctag process contract.pdf --verify selective
  doctag process ./contracts --model gpt-4o-mini --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&outJSON, "json", "results.json", "output JSON path")
	processCmd.Flags().StringVar(&outExcel, "excel", "", "output Excel path (optional)")
	processCmd.Flags().IntVar(&workers, "workers", 0, "concurrent documents (default from config)")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")
	processCmd.Flags().StringVar(&verifyMode, "verify", "", "AI verification pass: off, selective, full")
	processCmd.Flags().StringVar(&llmModel, "model", "", "override model name")
	processCmd.Flags().StringVar(&llmBaseURL, "base-url", "", "override LLM endpoint URL")
	processCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if verifyMode != "" {
		cfg.Validation.Mode = verifyMode
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if llmBaseURL != "" {
		cfg.LLM.BaseURL = llmBaseURL
	}

	paths, err := worker.CollectFiles(input, cfg.Extract.Extensions)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents under %s (extensions: %v)", input, cfg.Extract.Extensions)
	}

	store, err := buildCache(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, store)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing %d documents with %d workers (model %s)\n",
			len(paths), cfg.Concurrency.Workers, cfg.LLM.Model)
	}

	batch := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	fileResults := batch.ProcessPaths(ctx, paths)

	results, docs, failed := collectResults(fileResults)
	validate.ValidateBatch(docs)

	out := report.NewBatch(cfg.LLM.Model, results)
	if outJSON != "" {
		if err := report.WriteJSON(out, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	excelPath := outExcel
	if excelPath == "" {
		excelPath = cfg.Output.Excel
	}
	if excelPath != "" {
		if err := report.WriteExcel(out, excelPath); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Excel: %s\n", excelPath)
		}
	}

	printSummary(results, failed)
	return nil
}

// collectResults splits worker output into report rows and the document set
// for cross-document validation. Failed documents get a synthetic error row
// so they appear in reports, but stay out of cross-document checks, which
// only make sense over metadata that was actually extracted.
func collectResults(fileResults []*worker.FileResult) ([]*pipeline.Result, []validate.Document, int) {
	results := make([]*pipeline.Result, 0, len(fileResults))
	docs := make([]validate.Document, 0, len(fileResults))
	failed := 0
	for _, fr := range fileResults {
		r := fr.Result
		if fr.Err != nil {
			failed++
			r = &pipeline.Result{
				Filename: filepath.Base(fr.Path),
				Metadata: model.EmptyMetadata(),
				Validation: &model.ValidationResult{
					Status:   model.StatusError,
					Warnings: []string{},
				},
				Error: fr.Err.Error(),
			}
			results = append(results, r)
			continue
		}
		results = append(results, r)
		docs = append(docs, validate.Document{
			Filename:   r.Filename,
			Metadata:   &r.Metadata,
			Validation: r.Validation,
		})
	}
	return results, docs, failed
}

func buildCache(cfg *model.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}
	dir := filepath.Join(home, ".doctag", "cache")
	return cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL), nil
}

func printSummary(results []*pipeline.Result, failed int) {
	counts := make(map[model.ValidationStatus]int)
	cached := 0
	for _, r := range results {
		if r.Validation != nil {
			counts[r.Validation.Status]++
		}
		if r.Cached {
			cached++
		}
	}
	fmt.Printf("Processed %d documents: %d ok, %d warning, %d unreliable, %d error",
		len(results), counts[model.StatusOK], counts[model.StatusWarning],
		counts[model.StatusUnreliable], counts[model.StatusError])
	if cached > 0 {
		fmt.Printf(" (%d from cache)", cached)
	}
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
}
