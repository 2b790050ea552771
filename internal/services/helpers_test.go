package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"parlay-api/internal/models"
	"parlay-api/pkg/oddsapi"
)

// fakeProvider implements OddsProvider for testing
type fakeProvider struct {
	events []oddsapi.Event
	err    error
	format models.OddsFormat
	calls  int
	noKey  bool
}

func (f *fakeProvider) GetMoneylineOdds(ctx context.Context, sport string) ([]oddsapi.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeProvider) OddsFormat() models.OddsFormat {
	if f.format == "" {
		return models.OddsFormatAmerican
	}
	return f.format
}

func (f *fakeProvider) Configured() bool {
	return !f.noKey
}

func price(p float64) *float64 {
	return &p
}

// event builds an event whose first bookmaker offers one h2h market
func event(away, home string, awayPrice, homePrice float64) oddsapi.Event {
	return oddsapi.Event{
		AwayTeam: away,
		HomeTeam: home,
		Bookmakers: []oddsapi.Bookmaker{
			{
				Key: "draftkings",
				Markets: []oddsapi.Market{
					{Key: "h2h", Outcomes: []oddsapi.Outcome{
						{Name: away, Price: price(awayPrice)},
						{Name: home, Price: price(homePrice)},
					}},
				},
			},
		},
	}
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func newTestBuilder(provider *fakeProvider) *ParlayBuilder {
	odds := NewOddsService(provider, 0, nopLogger())
	return NewParlayBuilder(odds, NewRequestValidator(10), nopLogger())
}

// candidate builds an American-odds candidate with its implied probability
func candidate(team string, american int) models.Candidate {
	c, ok := buildCandidate(team, fmt.Sprintf("%s @ Home", team), float64(american), models.OddsFormatAmerican)
	if !ok {
		panic("invalid test odds")
	}
	return c
}

func teams(cs []models.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Team
	}
	return out
}
