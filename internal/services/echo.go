package services

import (
	"strings"
	"time"

	"parlay-api/internal/models"
)

const testOnlyNote = "Test-only parlay: legs are echoed back as sent, no live odds were used."

// confidenceByLegs is the canned confidence shown for echoed parlays
var confidenceByLegs = map[int]string{
	1: "92%",
	2: "88%",
	3: "82%",
	4: "76%",
	5: "70%",
}

// Confidence returns the canned confidence string for a leg count
func Confidence(legs int) string {
	if c, ok := confidenceByLegs[legs]; ok {
		return c
	}
	return "65%"
}

// EchoParlay builds the test-only response from client supplied picks
func EchoParlay(req models.ParlayRequest) *models.ParlayResponse {
	legs := make([]models.ParlayLeg, len(req.Picks))
	for i, p := range req.Picks {
		if p.Pick == "" {
			p.Pick = models.PickMoneyline
		}
		legs[i] = p
	}

	return &models.ParlayResponse{
		Sport:       strings.ToUpper(req.Sport),
		Style:       req.Style,
		Legs:        legs,
		Confidence:  Confidence(len(legs)),
		Note:        testOnlyNote,
		GeneratedAt: time.Now(),
	}
}

// ExampleRequest is the fixed sample slip served by GET /parlay/example
func ExampleRequest() models.ParlayRequest {
	return models.ParlayRequest{
		Sport: models.SportNFL,
		Style: models.StyleNormal,
		Legs:  3,
		Picks: []models.ParlayLeg{
			{Team: "Team A", Pick: models.PickMoneyline},
			{Team: "Team B", Pick: models.PickMoneyline},
			{Team: "Team C", Pick: models.PickMoneyline},
		},
	}
}
