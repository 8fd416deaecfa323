package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/telcoagents/agent"
	"github.com/hupe1980/telcoagents/artifact"
	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/session"
)

// Setup builds the participants for one episode: a fresh driver, the tool
// environment it acts against and the user it serves. Returning fresh
// instances per episode keeps state from leaking between episodes.
type Setup func(strategy string, episode int) (agent.Agent, Environment, User, error)

// Options holds dependency overrides passed to New().
type Options struct {
	// Logger receives run progress events. Defaults to a no-op logger.
	Logger logging.Logger

	// Sessions stores the per-episode conversation records.
	Sessions session.Store

	// Artifacts archives episode transcripts and the run report.
	Artifacts artifact.Store
}

// Runner executes a configured benchmark run: every strategy times every
// episode, fanned out under the configured concurrency limit. Each episode
// is recorded through the session store and archived through the artifact
// store; results are aggregated into a Report.
type Runner struct {
	cfg       *Config
	setup     Setup
	logger    logging.Logger
	sessions  session.Store
	artifacts artifact.Store
}

// New constructs a Runner for the given config and episode setup.
func New(cfg *Config, setup Setup, optFns ...func(o *Options)) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("runner: config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if setup == nil {
		return nil, fmt.Errorf("runner: episode setup is required")
	}

	opts := Options{
		Logger:    logging.NewNoOpLogger(),
		Sessions:  session.NewInMemoryStore(),
		Artifacts: artifact.NewInMemoryStore(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Runner{
		cfg:       cfg,
		setup:     setup,
		logger:    opts.Logger,
		sessions:  opts.Sessions,
		artifacts: opts.Artifacts,
	}, nil
}

// Run executes every configured episode and returns the aggregated report.
// Episode level failures (driver errors, exhausted bounds) are recorded in
// their results; only setup and storage problems abort the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	runID := r.cfg.SaveTo
	if runID == "" {
		runID = core.NewID()
	}

	total := len(r.cfg.Strategies) * r.cfg.Episodes

	r.logger.Info("run.started",
		"run_id", runID,
		"domain", r.cfg.Domain,
		"strategies", len(r.cfg.Strategies),
		"episodes", total,
	)

	var (
		mu      sync.Mutex
		results = make([]*Result, 0, total)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxConcurrency)

	for _, strategy := range r.cfg.Strategies {
		for i := 0; i < r.cfg.Episodes; i++ {
			strategy, i := strategy, i

			g.Go(func() error {
				res, err := r.runEpisode(ctx, runID, strategy, i)
				if err != nil {
					return err
				}

				mu.Lock()
				results = append(results, res)
				mu.Unlock()

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := buildReport(runID, r.cfg.Domain, results)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("runner: encode report: %w", err)
	}

	if err := r.artifacts.Save(runID, "report.json", data); err != nil {
		return nil, fmt.Errorf("runner: archive report: %w", err)
	}

	r.logger.Info("run.finished", "run_id", runID, "episodes", len(results))

	return report, nil
}

// runEpisode prepares, executes and archives a single episode.
func (r *Runner) runEpisode(ctx context.Context, runID, strategy string, index int) (*Result, error) {
	drv, env, user, err := r.setup(strategy, index)
	if err != nil {
		return nil, fmt.Errorf("runner: setup %s episode %d: %w", strategy, index, err)
	}

	if r.cfg.Seed != nil {
		if err := drv.SetSeed(*r.cfg.Seed); err != nil {
			return nil, fmt.Errorf("runner: seed %s episode %d: %w", strategy, index, err)
		}
	}

	sessionID := fmt.Sprintf("%s-%s-%d", runID, strategy, index)

	if err := r.sessions.Create(&session.Record{
		ID:        sessionID,
		Strategy:  strategy,
		Episode:   index,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("runner: create record %s: %w", sessionID, err)
	}

	ep := &episode{
		strategy:      strategy,
		index:         index,
		sessionID:     sessionID,
		agent:         drv,
		env:           env,
		user:          user,
		maxTurns:      r.cfg.MaxTurns,
		maxToolErrors: r.cfg.MaxToolErrors,
		sessions:      r.sessions,
		logger:        r.logger,
	}

	res := ep.run(ctx)

	if err := r.archiveEpisode(runID, sessionID, res); err != nil {
		return nil, err
	}

	return res, nil
}
