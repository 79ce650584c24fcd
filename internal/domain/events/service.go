package events

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mibcs/clubsite/internal/domain/ids"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Store owns the canonical event collection: it enforces structural
// invariants on create/update and answers filtered queries. Visibility
// (public vs admin shape) is the API layer's concern.
type Store struct {
	repo     Repository
	validate *validator.Validate
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, validate: newValidator()}
}

func (s *Store) List(ctx context.Context, filters Filters, pagination Pagination) (ListResult, error) {
	if pagination.Limit <= 0 {
		pagination.Limit = defaultLimit
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}
	return s.repo.List(ctx, filters, pagination)
}

func (s *Store) Get(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Store) Create(ctx context.Context, input EventInput) (*Event, error) {
	validationErrs := collectFieldErrors(s.validate.Struct(input))

	var startTime time.Time
	if strings.TrimSpace(input.Date) != "" {
		parsed, err := parseInstant(input.Date)
		if err != nil {
			validationErrs = append(validationErrs, FieldError{Field: "date", Message: "must be a valid ISO-8601 instant"})
		} else {
			startTime = parsed
		}
	}

	var endTime *time.Time
	if strings.TrimSpace(input.EndDate) != "" {
		parsed, err := parseInstant(input.EndDate)
		if err != nil {
			validationErrs = append(validationErrs, FieldError{Field: "endDate", Message: "must be a valid ISO-8601 instant"})
		} else if !startTime.IsZero() && parsed.Before(startTime) {
			validationErrs = append(validationErrs, FieldError{Field: "endDate", Message: "must be on or after date"})
		} else {
			endTime = &parsed
		}
	}

	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, err
	}

	eventType := TypeWorkshop
	if input.Type != "" {
		eventType = EventType(input.Type)
	}
	status := StatusUpcoming
	if input.Status != "" {
		status = Status(input.Status)
	}

	params := CreateParams{
		ID:               id,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		StartTime:        startTime,
		EndTime:          endTime,
		DisplayTime:      strings.TrimSpace(input.Time),
		Venue:            strings.TrimSpace(input.Venue),
		Type:             eventType,
		Status:           status,
		RegistrationLink: strings.TrimSpace(input.RegistrationLink),
		MaxParticipants:  input.MaxParticipants,
		// New events always start empty regardless of what the caller sent.
		CurrentParticipants: 0,
		Tags:                copyStrings(input.Tags),
		Domains:             copyStrings(input.Domains),
		Organizers:          copyStrings(input.Organizers),
		Images:              imagesFromInput(input.Images),
		Featured:            input.Featured,
	}

	return s.repo.Create(ctx, params)
}

func (s *Store) Update(ctx context.Context, id string, input UpdateInput) (*Event, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	validationErrs := collectFieldErrors(s.validate.Struct(input))
	params, timeErrs := buildUpdateParams(existing, input)
	validationErrs = append(validationErrs, timeErrs...)

	if fieldErr := validateCapacity(existing, params); fieldErr != nil {
		validationErrs = append(validationErrs, *fieldErr)
	}

	if len(validationErrs) > 0 {
		return nil, validationErrs
	}
	return s.repo.Update(ctx, id, params)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func buildUpdateParams(existing *Event, input UpdateInput) (UpdateParams, ValidationErrors) {
	var errs ValidationErrors
	params := UpdateParams{
		Title:               input.Title,
		Description:         input.Description,
		ShortDescription:    input.ShortDescription,
		DisplayTime:         input.Time,
		Venue:               input.Venue,
		RegistrationLink:    input.RegistrationLink,
		MaxParticipants:     input.MaxParticipants,
		CurrentParticipants: input.CurrentParticipants,
		Tags:                copyStrings(input.Tags),
		Domains:             copyStrings(input.Domains),
		Organizers:          copyStrings(input.Organizers),
		Images:              imagesFromInput(input.Images),
		Featured:            input.Featured,
	}

	if input.Type != nil {
		value := EventType(*input.Type)
		params.Type = &value
	}
	if input.Status != nil {
		value := Status(*input.Status)
		params.Status = &value
	}

	startTime := existing.StartTime
	if input.Date != nil {
		parsed, err := parseInstant(*input.Date)
		if err != nil {
			errs = append(errs, FieldError{Field: "date", Message: "must be a valid ISO-8601 instant"})
		} else {
			params.StartTime = &parsed
			startTime = parsed
		}
	}
	if input.EndDate != nil {
		parsed, err := parseInstant(*input.EndDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "endDate", Message: "must be a valid ISO-8601 instant"})
		} else if parsed.Before(startTime) {
			errs = append(errs, FieldError{Field: "endDate", Message: "must be on or after date"})
		} else {
			params.EndTime = &parsed
		}
	}

	return params, errs
}

// validateCapacity enforces currentParticipants <= maxParticipants on the
// merged record, so a capacity shrink cannot strand a higher participant count.
func validateCapacity(existing *Event, params UpdateParams) *FieldError {
	current := existing.CurrentParticipants
	if params.CurrentParticipants != nil {
		current = *params.CurrentParticipants
	}
	max := existing.MaxParticipants
	if params.MaxParticipants != nil {
		max = params.MaxParticipants
	}
	if max != nil && current > *max {
		return &FieldError{Field: "currentParticipants", Message: "must not exceed maxParticipants"}
	}
	return nil
}

// ParseFilters interprets the public list query string: status, domain,
// featured, limit, page.
func ParseFilters(values url.Values) (Filters, Pagination, error) {
	filters := Filters{}
	pagination := Pagination{Limit: defaultLimit, Page: 1}

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		normalized := strings.ToLower(raw)
		if !IsAllowedStatus(normalized) {
			return filters, pagination, FilterError{Field: "status", Message: "unsupported status"}
		}
		filters.Status = Status(normalized)
	}

	if raw := strings.TrimSpace(values.Get("domain")); raw != "" {
		domain, ok := normalizeDomain(raw)
		if !ok {
			return filters, pagination, FilterError{Field: "domain", Message: "unsupported domain tag"}
		}
		filters.Domain = domain
	}

	if raw := strings.TrimSpace(values.Get("featured")); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, pagination, FilterError{Field: "featured", Message: "must be true or false"}
		}
		filters.Featured = &featured
	}

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filters, pagination, FilterError{Field: "limit", Message: "must be a number"}
		}
		if limit < 1 || limit > maxLimit {
			return filters, pagination, FilterError{Field: "limit", Message: "must be between 1 and 100"}
		}
		pagination.Limit = limit
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filters, pagination, FilterError{Field: "page", Message: "must be a number"}
		}
		if page < 1 {
			return filters, pagination, FilterError{Field: "page", Message: "must be at least 1"}
		}
		pagination.Page = page
	}

	return filters, pagination, nil
}

func normalizeDomain(value string) (string, bool) {
	for _, domain := range AllowedDomains() {
		if strings.EqualFold(domain, value) {
			return domain, true
		}
	}
	return "", false
}
