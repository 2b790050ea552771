package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"parlay-api/internal/models"
)

// RequestValidator checks parlay requests before any upstream call is made
type RequestValidator struct {
	validate *validator.Validate
	maxLegs  int
}

func NewRequestValidator(maxLegs int) *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		maxLegs:  maxLegs,
	}
}

// MaxLegs is the largest leg count a request may ask for
func (v *RequestValidator) MaxLegs() int {
	return v.maxLegs
}

// Validate lowercases sport and style in place and checks every field
func (v *RequestValidator) Validate(req *models.ParlayRequest) error {
	req.Sport = strings.ToLower(strings.TrimSpace(req.Sport))
	req.Style = strings.ToLower(strings.TrimSpace(req.Style))

	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidation, describe(err))
	}

	if req.Legs > v.maxLegs {
		return fmt.Errorf("%w: legs must be between 1 and %d", models.ErrValidation, v.maxLegs)
	}
	if len(req.Picks) > v.maxLegs {
		return fmt.Errorf("%w: at most %d picks may be echoed", models.ErrValidation, v.maxLegs)
	}

	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
