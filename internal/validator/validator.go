// Package validator collects field-level validation errors for request
// payloads before they reach the store.
package validator

import (
	"regexp"
	"strconv"
	"strings"
)

var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9./-]{1,12}$`)

var moods = map[string]bool{
	"excellent": true,
	"good":      true,
	"neutral":   true,
	"stressed":  true,
	"angry":     true,
}

type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func (v *Validator) Required(value, key string) {
	v.Check(strings.TrimSpace(value) != "", key, "field is required")
}

func (v *Validator) ValidateSymbol(symbol string) {
	v.Check(symbolRegex.MatchString(symbol), "symbol", "must be 1-12 ticker characters")
}

func (v *Validator) ValidateSide(side string) {
	v.Check(side == "long" || side == "short", "side", "must be long or short")
}

func (v *Validator) ValidateMood(mood string) {
	v.Check(moods[mood], "mood", "must be excellent, good, neutral, stressed or angry")
}

// ValidateNumeric checks that a wire-format monetary string parses as a
// number. Empty strings pass; pair with Required for mandatory fields.
func (v *Validator) ValidateNumeric(value, key string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
		v.AddError(key, "must be a number")
	}
}

// ValidateRating checks a 1-5 star rating; zero means unrated.
func (v *Validator) ValidateRating(rating int) {
	v.Check(rating >= 0 && rating <= 5, "rating", "must be between 1 and 5")
}
