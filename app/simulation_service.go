package app

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"omsim/domain/campaign"
	"omsim/domain/core"
	"omsim/domain/radon"
	"omsim/internal/config"
	"omsim/internal/errors"
	loglib "omsim/internal/log"
	"omsim/internal/metrics"
)

// SimulationRequest defines one sweep over a building
type SimulationRequest struct {
	Building  *radon.Building `validate:"required"`
	Mode      string          `validate:"oneof=random permutations"`
	Trials    int             `validate:"gte=1"`
	Noise     int             `validate:"gte=0"`
	Seed      int64
	StartStep int `validate:"gte=1"`
	Workers   int `validate:"gte=1"`
}

var requestValidator = validator.New()

// Validate checks the request fields
func (r SimulationRequest) Validate() error {
	if err := requestValidator.Struct(r); err != nil {
		return errors.ValidationErrorf("invalid simulation request: %v", err)
	}
	return nil
}

// RequestFromConfig maps the simulation settings onto a request
func RequestFromConfig(b *radon.Building, cfg config.SimulationConfig) SimulationRequest {
	return SimulationRequest{
		Building:  b,
		Mode:      cfg.Mode,
		Trials:    cfg.Trials,
		Noise:     cfg.Noise,
		Seed:      cfg.Seed,
		StartStep: cfg.StartStep,
		Workers:   cfg.Workers,
	}
}

// SimulationService builds campaigns for every planned trial in parallel
type SimulationService struct {
	logger  loglib.Logger
	metrics metrics.Collector
}

// NewSimulationService creates a simulation service; nil arguments fall back
// to no-op implementations.
func NewSimulationService(logger loglib.Logger, collector metrics.Collector) *SimulationService {
	if collector == nil {
		collector = metrics.NewNop()
	}
	return &SimulationService{
		logger:  loglib.NewLogger(logger).WithFields(loglib.Fields{loglib.ModuleField: "simulation"}),
		metrics: collector,
	}
}

// Run plans and executes a sweep. Each trial owns a noise source seeded from
// the plan, so results do not depend on the worker count. A trial whose
// campaign cannot be built is recorded as a failure; only cancellation aborts
// the sweep.
func (s *SimulationService) Run(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	startTime := time.Now()

	trials, err := Plan(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to plan simulation")
	}

	runID := core.NewRunID()
	logger := s.logger.WithFields(loglib.Fields{loglib.RunIDField: runID.String()})
	logger.Info("simulation started", loglib.Fields{
		"building": req.Building.Name,
		"mode":     req.Mode,
		"trials":   len(trials),
		"workers":  req.Workers,
		"seed":     req.Seed,
	})

	campaigns := make([]*campaign.Campaign, len(trials))
	failures := make([]error, len(trials))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Workers)
	for i := range trials {
		if gctx.Err() != nil {
			break
		}
		trial := trials[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			builder := campaign.NewBuilder(
				campaign.WithNoiseSource(campaign.NewSeededSource(trial.Seed)),
				campaign.WithLogger(logger),
			)
			c, err := builder.Construct(trial.Start, trial.Assignment, req.Noise)
			if err != nil {
				failures[trial.Index] = err
				s.metrics.RecordFailure(errors.GetCode(err))
				logger.Debug("trial failed", loglib.Fields{"trial": trial.Index, "error": err.Error()})
				return nil
			}
			campaigns[trial.Index] = c
			s.metrics.RecordCampaign(c.Type().String(), c.Type().Degenerate())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "simulation cancelled")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "simulation cancelled")
	}

	result := newSimulationResult(runID, req, trials, campaigns, failures)
	result.Duration = time.Since(startTime)
	s.metrics.ObserveSweep(req.Mode, result.Duration)

	logger.Info("simulation finished", loglib.Fields{
		"built":       len(result.Campaigns),
		"failed":      len(result.Failures),
		"room_mean":   result.RoomAverages.Mean,
		"cellar_mean": result.CellarAverages.Mean,
		"duration":    result.Duration.String(),
	})
	return result, nil
}
