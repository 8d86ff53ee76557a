package dto

import "github.com/haroonchishty/sca-backend/internal/domain"

// CreateCaseRequest payload for new cases. Nested groups may be omitted;
// they default to fully shaped empty structures.
type CreateCaseRequest struct {
	Category       string              `json:"category"`
	Tier           int                 `json:"tier"`
	Title          string              `json:"title"`
	AnonymousTitle string              `json:"anonymousTitle"`
	Doctor         domain.DoctorNotes  `json:"doctor"`
	Patient        domain.PatientNotes `json:"patient"`
	Marking        domain.Marking      `json:"marking"`
	Management     domain.Management   `json:"management"`
	CreatedAt      string              `json:"createdAt"`
}
