package models

import "time"

// Sport identifiers accepted by the API
const (
	SportNFL = "nfl"
	SportNBA = "nba"
	SportMLB = "mlb"
	SportNHL = "nhl"
	SportCFB = "cfb"
)

// Parlay styles
const (
	StyleSafe   = "safe"
	StyleNormal = "normal"
	StyleSpicy  = "spicy"
)

// PickMoneyline is the only market this service builds legs from
const PickMoneyline = "ML"

// OddsFormat selects how the provider quotes prices
type OddsFormat string

const (
	OddsFormatAmerican OddsFormat = "american"
	OddsFormatDecimal  OddsFormat = "decimal"
)

// ParlayRequest represents the incoming parlay request
type ParlayRequest struct {
	Sport string      `json:"sport" validate:"required,oneof=nfl nba mlb nhl cfb"`
	Style string      `json:"style" validate:"required,oneof=safe normal spicy"`
	Legs  int         `json:"legs" validate:"min=1"`
	Picks []ParlayLeg `json:"picks,omitempty" validate:"omitempty,dive"`
}

// ParlayLeg is one chosen bet in the response
type ParlayLeg struct {
	Team               string   `json:"team" validate:"required"`
	Pick               string   `json:"pick"`
	Matchup            string   `json:"matchup,omitempty"`
	Odds               *float64 `json:"odds,omitempty"`
	ImpliedProbability *float64 `json:"impliedProbability,omitempty"`
}

// ParlayResponse represents the parlay result. Live parlays carry EstHitChance,
// echoed test parlays carry Confidence.
type ParlayResponse struct {
	Sport        string      `json:"sport"`
	Style        string      `json:"style"`
	Legs         []ParlayLeg `json:"legs"`
	EstHitChance *float64    `json:"estHitChance,omitempty"`
	Confidence   string      `json:"confidence,omitempty"`
	Note         string      `json:"note"`
	GeneratedAt  time.Time   `json:"generatedAt"`
}

// Candidate is a single possible bet extracted from one market outcome
type Candidate struct {
	Team               string
	Matchup            string
	Format             OddsFormat
	AmericanOdds       int
	DecimalOdds        float64
	ImpliedProbability float64
}

// Odds returns the price in the format it was quoted in
func (c Candidate) Odds() float64 {
	if c.Format == OddsFormatDecimal {
		return c.DecimalOdds
	}
	return float64(c.AmericanOdds)
}

// IsFavorite reports whether the candidate is priced as a favorite
func (c Candidate) IsFavorite() bool {
	if c.Format == OddsFormatDecimal {
		return c.ImpliedProbability > 0.5
	}
	return c.AmericanOdds < 0
}

// IsUnderdog reports whether the candidate is priced as an underdog
func (c Candidate) IsUnderdog() bool {
	if c.Format == OddsFormatDecimal {
		return c.ImpliedProbability < 0.5
	}
	return c.AmericanOdds > 0
}

// Leg projects the candidate into the response shape
func (c Candidate) Leg() ParlayLeg {
	odds := c.Odds()
	prob := c.ImpliedProbability
	return ParlayLeg{
		Team:               c.Team,
		Pick:               PickMoneyline,
		Matchup:            c.Matchup,
		Odds:               &odds,
		ImpliedProbability: &prob,
	}
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
