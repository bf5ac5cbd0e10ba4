package normalizer

import (
	"errors"
	"fmt"

	"santdir/internal/models"
)

// Validation errors.
var (
	ErrMissingID            = errors.New("record missing identifier")
	ErrSaintMissingName     = errors.New("saint missing name")
	ErrEventMissingTitle    = errors.New("event missing title")
	ErrEventMissingHost     = errors.New("event missing host saint reference")
	ErrEventMissingSchedule = errors.New("event missing scheduled time")
	ErrProfileMissingName   = errors.New("profile missing name")
	ErrProfileMissingEmail  = errors.New("profile missing email")
)

// Validator checks assembled records before they reach a write path.
// The read path never validates: a sparse record renders with gaps, it is
// not an error.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSaint checks that a saint record is fit to store.
func (v *Validator) ValidateSaint(s models.Saint) error {
	if s.ID == "" {
		return ErrMissingID
	}

	if s.Name == "" {
		return fmt.Errorf("%w: saint %s", ErrSaintMissingName, s.ID)
	}

	return nil
}

// ValidateEvent checks that an event record is fit to store.
func (v *Validator) ValidateEvent(e models.Event) error {
	if e.ID == "" {
		return ErrMissingID
	}

	if e.Title == "" {
		return fmt.Errorf("%w: event %s", ErrEventMissingTitle, e.ID)
	}

	if e.SaintID == "" {
		return fmt.Errorf("%w: event %s", ErrEventMissingHost, e.ID)
	}

	if e.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: event %s", ErrEventMissingSchedule, e.ID)
	}

	return nil
}

// ValidateProfile checks that a sevak profile is fit to store.
func (v *Validator) ValidateProfile(p models.Profile) error {
	if p.ID == "" {
		return ErrMissingID
	}

	if p.Name == "" {
		return fmt.Errorf("%w: profile %s", ErrProfileMissingName, p.ID)
	}

	if p.Email == "" {
		return fmt.Errorf("%w: profile %s", ErrProfileMissingEmail, p.ID)
	}

	return nil
}
