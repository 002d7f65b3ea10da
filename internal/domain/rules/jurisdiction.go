package rules

import (
	"fmt"
	"strings"
	"time"
)

// Jurisdiction is a governing body (city or region) owning one or more rule
// sets. Its code is immutable once a submission references it.
type Jurisdiction struct {
	id        uint
	code      string
	name      string
	createdAt time.Time
}

func NewJurisdiction(code, name string) (*Jurisdiction, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("jurisdiction code is required")
	}
	if len(code) > 10 {
		return nil, fmt.Errorf("jurisdiction code exceeds maximum length of 10 characters")
	}
	if name == "" {
		return nil, fmt.Errorf("jurisdiction name is required")
	}

	return &Jurisdiction{
		code:      code,
		name:      name,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructJurisdiction(id uint, code, name string, createdAt time.Time) (*Jurisdiction, error) {
	if id == 0 {
		return nil, fmt.Errorf("jurisdiction ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("jurisdiction code is required")
	}

	return &Jurisdiction{
		id:        id,
		code:      code,
		name:      name,
		createdAt: createdAt,
	}, nil
}

func (j *Jurisdiction) ID() uint {
	return j.id
}

func (j *Jurisdiction) Code() string {
	return j.code
}

func (j *Jurisdiction) Name() string {
	return j.name
}

func (j *Jurisdiction) CreatedAt() time.Time {
	return j.createdAt
}

func (j *Jurisdiction) SetID(id uint) error {
	if j.id != 0 {
		return fmt.Errorf("jurisdiction ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("jurisdiction ID cannot be zero")
	}
	j.id = id
	return nil
}
