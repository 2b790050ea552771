package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"parlay-api/internal/models"
	"parlay-api/internal/monitoring"
	"parlay-api/pkg/oddsapi"
	"parlay-api/pkg/oddsmath"
)

const marketH2H = "h2h"

// OddsProvider is the upstream odds source
type OddsProvider interface {
	GetMoneylineOdds(ctx context.Context, sport string) ([]oddsapi.Event, error)
	OddsFormat() models.OddsFormat
	Configured() bool
}

// OddsService fetches moneyline odds and flattens them into candidates
type OddsService struct {
	provider OddsProvider
	timeout  time.Duration
	logger   *zerolog.Logger
}

func NewOddsService(provider OddsProvider, timeout time.Duration, logger *zerolog.Logger) *OddsService {
	return &OddsService{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// Configured reports whether the provider has a credential to call with
func (s *OddsService) Configured() bool {
	return s.provider.Configured()
}

// FetchCandidates performs the single upstream call for a sport and normalizes
// its events. There are no retries.
func (s *OddsService) FetchCandidates(ctx context.Context, sport string) ([]models.Candidate, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	events, err := s.provider.GetMoneylineOdds(ctx, sport)
	monitoring.ObserveUpstream(sport, start, err)
	if err != nil {
		s.logger.Error().Err(err).Str("sport", sport).Dur("elapsed", time.Since(start)).Msg("odds fetch failed")
		return nil, err
	}

	candidates := NormalizeEvents(events, s.provider.OddsFormat())
	s.logger.Info().
		Str("sport", sport).
		Int("events", len(events)).
		Int("candidates", len(candidates)).
		Dur("elapsed", time.Since(start)).
		Msg("odds fetched")

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %d %s events had no priced moneyline outcomes", models.ErrNoCandidates, len(events), strings.ToUpper(sport))
	}

	return candidates, nil
}

// NormalizeEvents builds candidates from the first bookmaker's first h2h market
// of each event, in provider order. Outcomes without a name or a usable price
// are skipped.
func NormalizeEvents(events []oddsapi.Event, format models.OddsFormat) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(events)*2)

	for _, event := range events {
		market := firstMoneyline(event)
		if market == nil {
			continue
		}

		matchup := fmt.Sprintf("%s @ %s", event.AwayTeam, event.HomeTeam)
		for _, outcome := range market.Outcomes {
			if outcome.Name == "" || outcome.Price == nil {
				continue
			}

			candidate, ok := buildCandidate(outcome.Name, matchup, *outcome.Price, format)
			if !ok {
				continue
			}
			candidates = append(candidates, candidate)
		}
	}

	return candidates
}

func firstMoneyline(event oddsapi.Event) *oddsapi.Market {
	if len(event.Bookmakers) == 0 {
		return nil
	}

	markets := event.Bookmakers[0].Markets
	for i := range markets {
		if markets[i].Key == marketH2H {
			return &markets[i]
		}
	}
	return nil
}

func buildCandidate(team, matchup string, price float64, format models.OddsFormat) (models.Candidate, bool) {
	candidate := models.Candidate{
		Team:    team,
		Matchup: matchup,
		Format:  format,
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return candidate, false
	}

	switch format {
	case models.OddsFormatDecimal:
		prob, err := oddsmath.DecimalToImpliedProbability(price)
		if err != nil {
			return candidate, false
		}
		candidate.DecimalOdds = price
		candidate.ImpliedProbability = prob
	default:
		american := int(price)
		prob, err := oddsmath.AmericanToImpliedProbability(american)
		if err != nil {
			return candidate, false
		}
		candidate.AmericanOdds = american
		candidate.ImpliedProbability = prob
	}

	return candidate, true
}
