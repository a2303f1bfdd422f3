// Package deadletterrepo persists dead letters in PostgreSQL through GORM.
// A dead letter is stored as one row in dead_letters plus one row per saga
// journal step in dead_letter_steps.
package deadletterrepo

import (
	"time"

	"groundhandling/internal/core/ports"

	"github.com/lib/pq"
)

// DeadLetterDTO is the database structure of a dead letter.
type DeadLetterDTO struct {
	OrderID     string         `gorm:"type:varchar(255);primaryKey"`
	FlightID    string         `gorm:"type:varchar(255);not null;index"`
	Kind        string         `gorm:"type:varchar(32);not null"`
	VehicleKind string         `gorm:"type:varchar(32);not null"`
	Passengers  pq.StringArray `gorm:"type:text[]"`
	Attempts    int            `gorm:"type:int;not null"`
	Reason      string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	Steps       []StepDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "dead_letter_dtos".
func (DeadLetterDTO) TableName() string {
	return "dead_letters"
}

// StepDTO is one saga journal line of a dead letter.
type StepDTO struct {
	ID         uint   `gorm:"primaryKey"`
	OrderID    string `gorm:"type:varchar(255);not null;index"`
	Position   int    `gorm:"type:int;not null"`
	Step       string `gorm:"type:varchar(64);not null"`
	Status     string `gorm:"type:varchar(32);not null"`
	DurationMS int64  `gorm:"type:bigint;not null"`
	Detail     string `gorm:"type:text"`
}

// TableName overrides GORM's default "step_dtos".
func (StepDTO) TableName() string {
	return "dead_letter_steps"
}

func fromDomain(dl ports.DeadLetter) DeadLetterDTO {
	steps := make([]StepDTO, 0, len(dl.Journal))
	for i, e := range dl.Journal {
		steps = append(steps, StepDTO{
			OrderID:    dl.OrderID,
			Position:   i,
			Step:       e.Step,
			Status:     e.Status,
			DurationMS: e.Duration.Milliseconds(),
			Detail:     e.Detail,
		})
	}

	return DeadLetterDTO{
		OrderID:     dl.OrderID,
		FlightID:    dl.FlightID,
		Kind:        dl.Kind,
		VehicleKind: dl.VehicleKind,
		Passengers:  pq.StringArray(dl.Passengers),
		Attempts:    dl.Attempts,
		Reason:      dl.Reason,
		CreatedAt:   dl.CreatedAt.UTC(),
		Steps:       steps,
	}
}

func toDomain(dto DeadLetterDTO) ports.DeadLetter {
	journal := make([]ports.JournalEntry, 0, len(dto.Steps))
	for _, s := range dto.Steps {
		journal = append(journal, ports.JournalEntry{
			Step:     s.Step,
			Status:   s.Status,
			Duration: time.Duration(s.DurationMS) * time.Millisecond,
			Detail:   s.Detail,
		})
	}

	return ports.DeadLetter{
		OrderID:     dto.OrderID,
		FlightID:    dto.FlightID,
		Kind:        dto.Kind,
		VehicleKind: dto.VehicleKind,
		Passengers:  []string(dto.Passengers),
		Attempts:    dto.Attempts,
		Reason:      dto.Reason,
		Journal:     journal,
		CreatedAt:   dto.CreatedAt,
	}
}
