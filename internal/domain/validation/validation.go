// Package validation checks admin submissions before anything is written
// to the record store.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/redstonehub/laurel/internal/domain/model"
)

// Reasons reported to the admin. Only the first failing rule is surfaced.
const (
	ReasonNameRequired      = "Winner name is required."
	ReasonDateRangeRequired = "Date range is required."
	ReasonHandleRequired    = "At least Discord or X handle is required."
	ReasonLinkScheme        = "Content link must start with http:// or https://"
	ReasonPlacementRange    = "Placement must be a whole number of 1 or more."
	reasonFallback          = "Submission is invalid."
)

var httpLink = regexp.MustCompile(`(?i)^https?://`)

// Field order matters: the validator reports failures in declaration order.
type hofSubmission struct {
	Name      string `validate:"required"`
	Discord   string `validate:"required_without=XHandle"`
	XHandle   string
	Link      string `validate:"omitempty,httplink"`
	Placement *int   `validate:"omitempty,min=1"`
}

type placementChange struct {
	Placement *int `validate:"omitempty,min=1"`
}

type wbcSubmission struct {
	Name      string `validate:"required"`
	DateRange string `validate:"required"`
	Discord   string `validate:"required_without=XHandle"`
	XHandle   string
	Link      string `validate:"omitempty,httplink"`
}

var reasons = map[string]string{
	"Name.required":            ReasonNameRequired,
	"DateRange.required":       ReasonDateRangeRequired,
	"Discord.required_without": ReasonHandleRequired,
	"Link.httplink":            ReasonLinkScheme,
	"Placement.min":            ReasonPlacementRange,
}

// Validator wraps go-playground/validator with the submission rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("httplink", func(fl validator.FieldLevel) bool {
		return httpLink.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Hof validates a trimmed Hall of Fame payload.
func (v *Validator) Hof(p model.HofPayload) error {
	p = p.Trimmed()
	return v.check(hofSubmission{Name: p.Name, Discord: p.Discord, XHandle: p.XHandle, Link: p.Link, Placement: p.Placement})
}

// Placement validates a placement change. Absent is allowed.
func (v *Validator) Placement(p *int) error {
	return v.check(placementChange{Placement: p})
}

// Wbc validates a trimmed Weekly Best Content payload.
func (v *Validator) Wbc(p model.WbcPayload) error {
	p = p.Trimmed()
	return v.check(wbcSubmission{Name: p.Name, DateRange: p.DateRange, Discord: p.Discord, XHandle: p.XHandle, Link: p.Link})
}

func (v *Validator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewError(reasonFallback)
	}
	first := fieldErrs[0]
	if reason, ok := reasons[first.Field()+"."+first.Tag()]; ok {
		return NewError(reason)
	}
	return NewError(reasonFallback)
}

// IsHTTPLink reports whether link starts with an http(s) scheme.
func IsHTTPLink(link string) bool { return httpLink.MatchString(link) }
