package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/amberin/jobradar/internal/filter"
	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/source"
)

// Pipeline owns one full run:
// fetch (concurrent) → merge → freshness filter → dedup → score (sequential)
// → threshold → sort → deliver.
type Pipeline struct {
	sources     []source.Registration
	store       model.ProcessedStore
	analyzer    model.JobAnalyzer
	notifier    model.Notifier
	profile     model.CandidateProfile
	window      time.Duration
	minScore    int
	resultsPath string // empty disables results persistence
	logger      *slog.Logger
}

// New creates a pipeline wired with all its dependencies.
func New(
	sources []source.Registration,
	store model.ProcessedStore,
	analyzer model.JobAnalyzer,
	notifier model.Notifier,
	profile model.CandidateProfile,
	window time.Duration,
	minScore int,
	resultsPath string,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		sources:     sources,
		store:       store,
		analyzer:    analyzer,
		notifier:    notifier,
		profile:     profile,
		window:      window,
		minScore:    minScore,
		resultsPath: resultsPath,
		logger:      logger,
	}
}

// Run executes one pipeline cycle. Source failures are contained per-source
// and scoring failures per-job; Run itself fails only on delivery or context
// errors.
func (p *Pipeline) Run(ctx context.Context) error {
	fetched := p.fetchAll(ctx)
	if len(fetched) == 0 {
		p.logger.Info("no jobs fetched from any source, nothing to do")
		return nil
	}

	fresh := filter.Fresh(fetched, p.window)

	var pending []model.Job
	for _, job := range fresh {
		processed, err := p.store.Has(job.ID)
		if err != nil {
			return err
		}
		if !processed {
			pending = append(pending, job)
		}
	}

	scored := p.scoreAll(ctx, pending)

	var qualified []model.AnalyzedJob
	for _, aj := range scored {
		if aj.Score >= p.minScore {
			qualified = append(qualified, aj)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})

	if p.resultsPath != "" {
		if err := SaveResults(p.resultsPath, scored); err != nil {
			p.logger.Warn("failed to persist run results", "path", p.resultsPath, "error", err)
		}
	}

	if len(qualified) > 0 {
		if err := p.notifier.DeliverBatch(qualified); err != nil {
			return err
		}
	}

	p.logger.Info("pipeline run complete",
		"fetched", len(fetched),
		"fresh", len(fresh),
		"new", len(pending),
		"scored", len(scored),
		"qualified", len(qualified),
	)
	return nil
}

// fetchAll invokes every adapter concurrently and awaits them jointly.
// Each source's outcome is isolated: one failure never cancels or affects
// sibling fetches (settle-all, not fail-fast).
func (p *Pipeline) fetchAll(ctx context.Context) []model.Job {
	results := make([][]model.Job, len(p.sources))
	errs := make([]error, len(p.sources))

	var wg sync.WaitGroup
	for i, reg := range p.sources {
		wg.Add(1)
		go func(i int, reg source.Registration) {
			defer wg.Done()
			results[i], errs[i] = reg.Adapter.FetchJobs(ctx)
		}(i, reg)
	}
	wg.Wait()

	var merged []model.Job
	for i, reg := range p.sources {
		name := reg.Adapter.Name()
		if errs[i] != nil {
			p.logger.Error("source fetch failed, continuing without it",
				"source", name,
				"policy", reg.Policy,
				"error", errs[i],
			)
			continue
		}
		p.logger.Info("source fetched", "source", name, "jobs", len(results[i]))
		merged = append(merged, results[i]...)
	}
	return merged
}

// scoreAll scores jobs strictly sequentially. Each job is marked processed
// immediately after its scoring attempt, success or failure, before the next
// job is scored — a crash mid-batch loses at most one dedup marker, and a
// permanently malformed job is never retried on later runs.
func (p *Pipeline) scoreAll(ctx context.Context, jobs []model.Job) []model.AnalyzedJob {
	var scored []model.AnalyzedJob
	for _, job := range jobs {
		if ctx.Err() != nil {
			p.logger.Warn("run interrupted, stopping scoring", "remaining", len(jobs)-len(scored))
			return scored
		}

		aj, err := p.analyzer.Analyze(ctx, job, p.profile)

		if addErr := p.store.Add(job.ID); addErr != nil {
			p.logger.Error("failed to mark job processed", "job_id", job.ID, "error", addErr)
		}

		if err != nil {
			p.logger.Warn("scoring failed, job marked processed and skipped",
				"job_id", job.ID,
				"error", err,
			)
			continue
		}
		scored = append(scored, aj)
	}
	return scored
}
