package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"parlay-api/internal/models"
	"parlay-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ParlayHandler struct {
	builder     *services.ParlayBuilder
	defaultLegs int
	timeout     time.Duration
}

func NewParlayHandler(builder *services.ParlayBuilder, defaultLegs int, timeout time.Duration) *ParlayHandler {
	return &ParlayHandler{
		builder:     builder,
		defaultLegs: defaultLegs,
		timeout:     timeout,
	}
}

// parlayBody is the POST /parlay payload. Legs is a pointer so an omitted
// count can be told apart from an explicit 0.
type parlayBody struct {
	Sport string             `json:"sport"`
	Style string             `json:"style"`
	Legs  *int               `json:"legs"`
	Picks []models.ParlayLeg `json:"picks"`
}

// Root handles GET /
func (h *ParlayHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Snap Picks API is live",
	})
}

// GetParlay handles GET /parlay?sport=&style=&legs=
func (h *ParlayHandler) GetParlay(c *fiber.Ctx) error {
	req := models.ParlayRequest{
		Sport: c.Query("sport", models.SportNFL),
		Style: c.Query("style", models.StyleNormal),
		Legs:  h.defaultLegs,
	}

	if raw := c.Query("legs"); raw != "" {
		legs, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: legs must be an integer, got %q", models.ErrValidation, raw)
		}
		req.Legs = legs
	}

	return h.build(c, req)
}

// PostParlay handles POST /parlay. A non-empty picks list is echoed back as a
// test-only parlay; otherwise the parlay is built from live odds.
func (h *ParlayHandler) PostParlay(c *fiber.Ctx) error {
	var body parlayBody
	if err := c.BodyParser(&body); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", models.ErrValidation, err)
	}

	req := models.ParlayRequest{
		Sport: body.Sport,
		Style: body.Style,
		Picks: body.Picks,
	}
	if req.Sport == "" {
		req.Sport = models.SportNFL
	}
	if req.Style == "" {
		req.Style = models.StyleNormal
	}

	if len(body.Picks) > 0 {
		if body.Legs != nil {
			req.Legs = *body.Legs
		}
		resp, err := h.builder.Echo(req)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}

	req.Legs = h.defaultLegs
	if body.Legs != nil {
		req.Legs = *body.Legs
	}

	return h.build(c, req)
}

// Example handles GET /parlay/example
func (h *ParlayHandler) Example(c *fiber.Ctx) error {
	resp, err := h.builder.Echo(services.ExampleRequest())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ParlayHandler) build(c *fiber.Ctx, req models.ParlayRequest) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	resp, err := h.builder.Build(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
