package dto

import (
	"fmt"
	"time"

	"novelhub/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const MinPublishingYear = 1800

// RegisterValidators installs the domain binding rules on gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("novel_status", validateNovelStatus); err != nil {
		return fmt.Errorf("register novel_status: %w", err)
	}
	if err := v.RegisterValidation("publishing_year", validatePublishingYear); err != nil {
		return fmt.Errorf("register publishing_year: %w", err)
	}
	if err := v.RegisterValidation("user_role", validateUserRole); err != nil {
		return fmt.Errorf("register user_role: %w", err)
	}
	return nil
}

func validateNovelStatus(fl validator.FieldLevel) bool {
	return models.IsValidStatus(fl.Field().String())
}

// publishing years run from 1800 through next year
func validatePublishingYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= MinPublishingYear && year <= int64(time.Now().Year()+1)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.IsValidRole(fl.Field().String())
}

// ParseDate accepts RFC 3339 timestamps, "2006-01-02 15:04:05" and plain dates.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
