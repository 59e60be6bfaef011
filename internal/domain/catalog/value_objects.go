package catalog

import (
	"errors"
	"strings"
	"unicode/utf8"

	"slotbook/internal/pkg/errs"
)

const (
	MinNameLength        = 2
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MinCategoryLength    = 2
	MaxCategoryLength    = 50
	MinDuration          = 15
	MaxDuration          = 480
	MinPrice             = 0
	MaxPrice             = 10000

	DefaultCategory = "General"
)

var (
	ErrInvalidName        = errors.New("service name must be between 2 and 100 characters")
	ErrDescriptionTooLong = errors.New("description must be at most 500 characters")
	ErrInvalidCategory    = errors.New("category must be between 2 and 50 characters")
	ErrInvalidDuration    = errors.New("duration must be between 15 and 480 minutes")
	ErrInvalidPrice       = errors.New("price must be between 0 and 10000")
)

func (f Fields) normalized() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	return f
}

func (f Fields) validate() error {
	if n := utf8.RuneCountInString(f.Name); n < MinNameLength || n > MaxNameLength {
		return errs.Field("name", ErrInvalidName)
	}
	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		return errs.Field("description", ErrDescriptionTooLong)
	}
	if n := utf8.RuneCountInString(f.Category); n < MinCategoryLength || n > MaxCategoryLength {
		return errs.Field("category", ErrInvalidCategory)
	}
	if f.Duration < MinDuration || f.Duration > MaxDuration {
		return errs.Field("duration", ErrInvalidDuration)
	}
	if f.Price < MinPrice || f.Price > MaxPrice {
		return errs.Field("price", ErrInvalidPrice)
	}
	return nil
}
