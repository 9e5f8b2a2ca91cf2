package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"parafrase/internal/config"
	"parafrase/internal/logging"
	"parafrase/internal/pipeline"
	"parafrase/internal/progress"
	"parafrase/internal/refine"
	"parafrase/internal/risk"
	"parafrase/internal/router"
	"parafrase/internal/search"
	"parafrase/internal/synonym"
	"parafrase/internal/types"
)

var (
	// Global flags
	verbose    bool
	configPath string
	outputPath string
	mode       string
	workers    int

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "parafrase",
	Short: "parafrase - risk-adaptive academic paraphrase engine",
	Long: `parafrase rewrites Indonesian academic text to reduce textual
similarity while preserving meaning.

Each passage is scored for known high-risk patterns (academic templates,
technical definitions, citations, methodology phrasing, domain terms) and
routed to local synonym substitution, optionally escalated through three
levels of Gemini refinement. Headings, citations, labels, and quotes are
never rewritten. Document jobs checkpoint per unit and resume after
interruption.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if mode != "" {
			cfg.Processing.Mode = mode
		}
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// processCmd rewrites a document file
var processCmd = &cobra.Command{
	Use:   "process [input-file]",
	Short: "Rewrite a document, resuming any interrupted job",
	Long: `Reads a text document, splits it into paragraph-bounded units, and
rewrites each unit through the risk-adaptive pipeline. Progress is
checkpointed in SQLite after every unit; rerunning the same document
with the same settings resumes where the previous run stopped.

Example:
  parafrase process skripsi-bab2.txt -o skripsi-bab2.out.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

// assessCmd scores text without rewriting it
var assessCmd = &cobra.Command{
	Use:   "assess [input-file]",
	Short: "Score a document's units without rewriting",
	Long: `Reports the per-unit risk score, category, matched patterns, and the
routing decision that process would make, as a JSON array.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

// batchCmd rewrites independent passages concurrently
var batchCmd = &cobra.Command{
	Use:   "batch [input-file]",
	Short: "Rewrite independent passages concurrently",
	Long: `Reads a text file of blank-line separated passages and rewrites each
one through the risk-adaptive pipeline using processing.workers
concurrent workers. Unlike process, batch treats every passage as an
independent unit and does not checkpoint progress, so it suits
collections of short unrelated texts rather than whole documents.

Example:
  parafrase batch abstrak-kumpulan.txt -w 8 -o abstrak-kumpulan.out.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

// jobsCmd inspects stored progress
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List stored document jobs",
	RunE:  runJobs,
}

// jobsDeleteCmd removes one stored job
var jobsDeleteCmd = &cobra.Command{
	Use:   "delete [job-id]",
	Short: "Delete a stored job's progress",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsDelete,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "", "routing mode: smart or balanced")

	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	batchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	batchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent workers (default: processing.workers)")

	jobsCmd.AddCommand(jobsDeleteCmd)
	rootCmd.AddCommand(processCmd, batchCmd, assessCmd, jobsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled by SIGINT or SIGTERM so a
// document job checkpoints cleanly instead of dying mid-unit.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// buildPipeline assembles the pipeline from configuration. Refinement and
// search are optional; the synonym resource is not.
func buildPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	log := logging.Named("cli")

	res, err := synonym.Load(cfg.Synonyms.Path)
	if err != nil {
		return nil, fmt.Errorf("loading synonym resource: %w", err)
	}
	log.Info("synonym resource loaded",
		zap.String("path", cfg.Synonyms.Path),
		zap.Int("entries", res.Len()))

	var refiner pipeline.Refiner
	if cfg.LLM.APIKey != "" {
		gen, err := refine.NewGeminiGenerator(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return nil, err
		}
		limiter := refine.NewRateLimiter(cfg.LLM.BaseDelay, cfg.LLM.MinDelay, cfg.LLM.MaxDelay)
		refiner = refine.NewAdapter(gen, limiter, refine.Options{
			MaxRetries:  cfg.LLM.MaxRetries,
			BaseDelay:   cfg.LLM.BaseDelay,
			CallTimeout: cfg.LLM.Timeout,
		})
	} else {
		log.Warn("no Gemini API key configured, running local-only")
	}

	var searcher search.Provider
	if cfg.Search.Enabled {
		searcher = search.NewDuckDuckGo(search.DuckDuckGoOptions{
			Region:    cfg.Search.Region,
			Language:  cfg.Search.Language,
			Timeout:   cfg.Search.Timeout,
			MinLength: cfg.Search.MinSnippetLength,
			MaxLength: cfg.Search.MaxSnippetLength,
		})
	}

	return pipeline.New(cfg, res, refiner, searcher), nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}

	store, err := progress.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening progress store: %w", err)
	}
	defer store.Close()

	result, err := p.ProcessDocument(ctx, store, string(data))
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Text+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		fmt.Println(result.Text)
	}

	report := buildReport(result, p.Stats().Snapshot())
	if outputPath != "" {
		if data, err := json.MarshalIndent(report, "", "  "); err == nil {
			reportPath := outputPath + ".report.json"
			if werr := os.WriteFile(reportPath, append(data, '\n'), 0o644); werr != nil {
				logging.Named("cli").Warn("failed to write report file",
					zap.String("path", reportPath), zap.Error(werr))
			}
		}
	}
	printReport(cmd, report)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var units []types.TextUnit
	for i, para := range splitForAssess(string(data)) {
		units = append(units, types.TextUnit{Index: i, Text: para})
	}
	if len(units) == 0 {
		return fmt.Errorf("input contains no processable text")
	}

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}

	n := workers
	if n < 1 {
		n = cfg.Processing.Workers
	}
	results, err := p.ProcessConcurrent(ctx, units, n)
	if err != nil {
		return err
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	out := strings.Join(texts, "\n\n")

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

type jobReport struct {
	JobID    string         `json:"job_id"`
	Units    int            `json:"units"`
	Resumed  bool           `json:"resumed"`
	Local    int            `json:"local_only"`
	ByLevel  [4]int         `json:"ai_calls_by_level"`
	Searches int            `json:"search_queries"`
	Skipped  int            `json:"refinements_skipped"`
	Methods  map[string]int `json:"methods"`
}

func buildReport(result *pipeline.DocumentResult, stats pipeline.Counters) jobReport {
	report := jobReport{
		JobID:    result.JobID,
		Units:    len(result.Units),
		Resumed:  result.Resumed,
		Local:    stats.LocalOnly,
		ByLevel:  stats.AICallsByLevel,
		Searches: stats.SearchQueries,
		Skipped:  stats.RefinementsSkipped,
		Methods:  make(map[string]int),
	}
	for _, u := range result.Units {
		report.Methods[u.Method]++
	}
	return report
}

// printReport writes the job summary to stderr so stdout stays clean for
// the rewritten text.
func printReport(cmd *cobra.Command, report jobReport) {
	enc := json.NewEncoder(cmd.ErrOrStderr())
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}

func runAssess(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	type unitReport struct {
		Index      int                  `json:"index"`
		Preview    string               `json:"preview"`
		Score      float64              `json:"score"`
		Category   string               `json:"category"`
		Complexity float64              `json:"complexity"`
		Level      int                  `json:"level"`
		Matches    []types.PatternMatch `json:"matches,omitempty"`
	}

	var reports []unitReport
	for i, para := range splitForAssess(string(data)) {
		a := risk.Assess(para)
		reports = append(reports, unitReport{
			Index:      i,
			Preview:    preview(para, 80),
			Score:      a.Score,
			Category:   a.Category.String(),
			Complexity: a.Complexity,
			Level:      router.LevelFor(a.Score),
			Matches:    a.Matches,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func runJobs(cmd *cobra.Command, args []string) error {
	store, err := progress.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening progress store: %w", err)
	}
	defer store.Close()

	ids, err := store.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no stored jobs")
		return nil
	}
	for _, id := range ids {
		line := id
		if rec, err := store.Load(id); err == nil {
			line = fmt.Sprintf("%s  %d/%d units  updated %s",
				id, len(rec.Completed), rec.TotalUnits,
				rec.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	store, err := progress.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening progress store: %w", err)
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted job %s\n", args[0])
	return nil
}

func splitForAssess(text string) []string {
	var units []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			units = append(units, strings.Join(strings.Fields(para), " "))
		}
	}
	return units
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
