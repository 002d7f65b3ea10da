package packet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"permitflow/internal/shared/id"
)

// ErrNotFound is returned when no packet exists for a submission.
var ErrNotFound = errors.New("packet not found")

// Packet is the generated summary artifact of a submission, one-to-one with
// it and created exactly once by the async worker.
type Packet struct {
	dbID          uint
	sid           string
	submissionID  uint
	fileLocation  string
	fileSizeBytes int64
	createdAt     time.Time
}

func NewPacket(submissionID uint, fileLocation string, fileSizeBytes int64) (*Packet, error) {
	if submissionID == 0 {
		return nil, fmt.Errorf("submission ID is required")
	}
	if fileLocation == "" {
		return nil, fmt.Errorf("file location is required")
	}
	if fileSizeBytes <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPacket, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate packet ID: %w", err)
	}

	return &Packet{
		sid:           sid,
		submissionID:  submissionID,
		fileLocation:  fileLocation,
		fileSizeBytes: fileSizeBytes,
		createdAt:     time.Now().UTC(),
	}, nil
}

func ReconstructPacket(dbID uint, sid string, submissionID uint, fileLocation string, fileSizeBytes int64, createdAt time.Time) (*Packet, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("packet ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("packet SID is required")
	}

	return &Packet{
		dbID:          dbID,
		sid:           sid,
		submissionID:  submissionID,
		fileLocation:  fileLocation,
		fileSizeBytes: fileSizeBytes,
		createdAt:     createdAt,
	}, nil
}

func (p *Packet) ID() uint {
	return p.dbID
}

func (p *Packet) SID() string {
	return p.sid
}

func (p *Packet) SubmissionID() uint {
	return p.submissionID
}

func (p *Packet) FileLocation() string {
	return p.fileLocation
}

func (p *Packet) FileSizeBytes() int64 {
	return p.fileSizeBytes
}

func (p *Packet) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Packet) SetID(dbID uint) error {
	if p.dbID != 0 {
		return fmt.Errorf("packet ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("packet ID cannot be zero")
	}
	p.dbID = dbID
	return nil
}

// Repository persists packets.
type Repository interface {
	Save(ctx context.Context, p *Packet) error
	FindBySubmissionID(ctx context.Context, submissionID uint) (*Packet, error)
}
