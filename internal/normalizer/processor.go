package normalizer

import (
	"fmt"

	"santdir/internal/models"
)

// Processor assembles raw store documents and validates the result for
// write paths such as seeding and imports.
type Processor struct {
	validator *Validator
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator: NewValidator(),
	}
}

// ProcessSaint assembles a saint record and checks it is fit to store.
func (p *Processor) ProcessSaint(id string, raw RawDocument) (models.Saint, error) {
	saint := AssembleSaint(id, raw)
	if err := p.validator.ValidateSaint(saint); err != nil {
		return models.Saint{}, fmt.Errorf("validation failed: %w", err)
	}

	return saint, nil
}

// ProcessEvent assembles an event record and checks it is fit to store.
func (p *Processor) ProcessEvent(id string, raw RawDocument) (models.Event, error) {
	event := AssembleEvent(id, raw)
	if err := p.validator.ValidateEvent(event); err != nil {
		return models.Event{}, fmt.Errorf("validation failed: %w", err)
	}

	return event, nil
}

// ProcessProfile assembles a sevak profile and checks it is fit to store.
func (p *Processor) ProcessProfile(id string, raw RawDocument) (models.Profile, error) {
	profile := AssembleProfile(id, raw)
	if err := p.validator.ValidateProfile(profile); err != nil {
		return models.Profile{}, fmt.Errorf("validation failed: %w", err)
	}

	return profile, nil
}
