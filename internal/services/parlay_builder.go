package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"parlay-api/internal/models"
	"parlay-api/internal/monitoring"
	"parlay-api/pkg/oddsmath"
)

const liveNote = "Built from live moneyline odds. Hit chance multiplies implied probabilities and assumes independent legs."

// ParlayBuilder turns live moneyline odds into a parlay for a requested style
type ParlayBuilder struct {
	odds      *OddsService
	validator *RequestValidator
	logger    *zerolog.Logger
}

func NewParlayBuilder(odds *OddsService, validator *RequestValidator, logger *zerolog.Logger) *ParlayBuilder {
	return &ParlayBuilder{
		odds:      odds,
		validator: validator,
		logger:    logger,
	}
}

// Build validates the request, fetches odds once, selects legs by style and
// computes the combined hit chance.
func (b *ParlayBuilder) Build(ctx context.Context, req models.ParlayRequest) (*models.ParlayResponse, error) {
	if err := b.validator.Validate(&req); err != nil {
		return nil, err
	}

	resp, err := b.build(ctx, req)
	monitoring.ParlaysBuilt.WithLabelValues(req.Sport, req.Style, resultLabel(err)).Inc()
	return resp, err
}

func (b *ParlayBuilder) build(ctx context.Context, req models.ParlayRequest) (*models.ParlayResponse, error) {
	candidates, err := b.odds.FetchCandidates(ctx, req.Sport)
	if err != nil {
		return nil, err
	}

	chosen, fallback, err := SelectLegs(candidates, req.Style, req.Legs)
	if err != nil {
		return nil, err
	}
	if fallback {
		monitoring.FallbackUsed.WithLabelValues(req.Style).Inc()
		b.logger.Warn().
			Str("sport", req.Sport).
			Str("style", req.Style).
			Int("legs", req.Legs).
			Int("candidates", len(candidates)).
			Msg("style filter undersupplied, using unfiltered pool")
	}

	legs := make([]models.ParlayLeg, len(chosen))
	probs := make([]float64, len(chosen))
	for i, c := range chosen {
		legs[i] = c.Leg()
		probs[i] = c.ImpliedProbability
	}

	hitChance := oddsmath.CombinedHitChance(probs)

	return &models.ParlayResponse{
		Sport:        strings.ToUpper(req.Sport),
		Style:        req.Style,
		Legs:         legs,
		EstHitChance: &hitChance,
		Note:         liveNote,
		GeneratedAt:  time.Now(),
	}, nil
}

// Echo validates and echoes client supplied picks without touching the odds provider
func (b *ParlayBuilder) Echo(req models.ParlayRequest) (*models.ParlayResponse, error) {
	if req.Legs == 0 {
		req.Legs = len(req.Picks)
	}
	if err := b.validator.Validate(&req); err != nil {
		return nil, err
	}

	monitoring.ParlaysBuilt.WithLabelValues(req.Sport, req.Style, "echo").Inc()
	return EchoParlay(req), nil
}

// Ready reports whether live parlays can be served
func (b *ParlayBuilder) Ready() bool {
	return b.odds.Configured()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrConfiguration):
		return "configuration_error"
	case errors.Is(err, models.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrNoCandidates):
		return "no_candidates"
	default:
		return "error"
	}
}
