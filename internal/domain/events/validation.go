package events

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// EventInput is the wire shape for event creation. Field names mirror the
// public JSON contract.
type EventInput struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required,max=10000"`
	ShortDescription string   `json:"shortDescription" validate:"max=500"`
	Date             string   `json:"date" validate:"required"`
	EndDate          string   `json:"endDate"`
	Time             string   `json:"time" validate:"required"`
	Venue            string   `json:"venue" validate:"required,max=300"`
	Type             string   `json:"type" validate:"omitempty,oneof=workshop seminar hackathon competition meetup other"`
	Status           string   `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	RegistrationLink string   `json:"registrationLink" validate:"omitempty,url"`
	MaxParticipants  *int     `json:"maxParticipants" validate:"omitempty,gte=0"`
	Tags             []string `json:"tags"`
	Domains          []string `json:"domains" validate:"dive,oneof=ML IoT Blockchain Cybersecurity General"`
	Organizers       []string `json:"organizers"`
	Images           []ImageInput `json:"images" validate:"dive"`
	Featured         bool     `json:"featured"`
}

type ImageInput struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption" validate:"max=300"`
}

// UpdateInput is the wire shape for partial updates; nil fields are left
// untouched. Engagement counters are not updatable through this path.
type UpdateInput struct {
	Title               *string  `json:"title" validate:"omitempty,max=200"`
	Description         *string  `json:"description" validate:"omitempty,max=10000"`
	ShortDescription    *string  `json:"shortDescription" validate:"omitempty,max=500"`
	Date                *string  `json:"date"`
	EndDate             *string  `json:"endDate"`
	Time                *string  `json:"time"`
	Venue               *string  `json:"venue" validate:"omitempty,max=300"`
	Type                *string  `json:"type" validate:"omitempty,oneof=workshop seminar hackathon competition meetup other"`
	Status              *string  `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	RegistrationLink    *string  `json:"registrationLink" validate:"omitempty,url"`
	MaxParticipants     *int     `json:"maxParticipants" validate:"omitempty,gte=0"`
	CurrentParticipants *int     `json:"currentParticipants" validate:"omitempty,gte=0"`
	Tags                []string `json:"tags"`
	Domains             []string `json:"domains" validate:"dive,oneof=ML IoT Blockchain Cybersecurity General"`
	Organizers          []string `json:"organizers"`
	Images              []ImageInput `json:"images" validate:"dive"`
	Featured            *bool    `json:"featured"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// collectFieldErrors flattens validator output into the domain error type,
// keeping every failing field.
func collectFieldErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fieldName(fe), Message: fieldMessage(fe)})
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	// Namespace looks like "EventInput.images[0].url"; drop the root struct.
	namespace := fe.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "url":
		return "must be a valid URL"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// parseInstant accepts an RFC 3339 instant or a bare ISO date.
func parseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("not an ISO-8601 instant")
	}
	return parsed, nil
}

func copyStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func imagesFromInput(values []ImageInput) []Image {
	if len(values) == 0 {
		return nil
	}
	out := make([]Image, 0, len(values))
	for _, img := range values {
		out = append(out, Image{URL: img.URL, Caption: img.Caption})
	}
	return out
}
