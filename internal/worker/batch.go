package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arguslabs/argus/internal/model"
)

// Runner analyzes a single source. Satisfied by pipeline.Analyzer.
type Runner interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Bundle, error)
	ScanURL(ctx context.Context, url string) (*model.Bundle, error)
}

// AnalyzeJob analyzes one manifest entry: a URL (rate-limited per domain)
// or a local file path.
type AnalyzeJob struct {
	Source  string
	Runner  Runner
	Limiter *Limiter // applied to URL sources only, may be nil
}

// Execute runs the job.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	var bundle *model.Bundle
	var err error

	if IsURL(j.Source) {
		if j.Limiter != nil {
			if werr := j.Limiter.Wait(ctx, j.Source); werr != nil {
				return &AnalyzeResult{Source: j.Source, Err: fmt.Errorf("rate limit: %w", werr)}
			}
		}
		bundle, err = j.Runner.ScanURL(ctx, j.Source)
	} else {
		bundle, err = j.Runner.AnalyzeFile(ctx, j.Source)
	}

	return &AnalyzeResult{Source: j.Source, Bundle: bundle, Err: err}
}

// AnalyzeResult is the outcome of one batch entry.
type AnalyzeResult struct {
	Source string
	Bundle *model.Bundle
	Err    error
}

// GetError returns the job error, if any.
func (r *AnalyzeResult) GetError() error {
	return r.Err
}

// BatchProcessor analyzes many sources concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor with per-domain rate limiting
// for URL sources.
func NewBatchProcessor(runner Runner, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
	}
}

// Process analyzes all sources and returns one result per source. The
// collector drains results while sources are still being submitted, so
// manifests of any size move through the pool's bounded buffers.
func (b *BatchProcessor) Process(ctx context.Context, sources []string) []*AnalyzeResult {
	if len(sources) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	collector := Collect(pool)

	for _, source := range sources {
		pool.Submit(&AnalyzeJob{
			Source:  source,
			Runner:  b.runner,
			Limiter: b.limiter,
		})
	}
	pool.Close()

	results := collector.Results()
	out := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		out[i] = result.(*AnalyzeResult)
	}
	return out
}

// ProcessFile reads a manifest and analyzes every entry.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return b.Process(ctx, sources), nil
}

// ReadSourcesFromFile reads one source per line, skipping blanks and #
// comments, deduplicating in order.
func ReadSourcesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return sources, nil
}

// IsURL reports whether a manifest entry is a web source.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
