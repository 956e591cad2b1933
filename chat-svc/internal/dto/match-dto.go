package dto

import (
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
)

type MatchResponse struct {
	ID            uint                    `json:"id"`
	Applicant     domain.ApplicantProfile `json:"applicant"`
	Member        domain.MemberProfile    `json:"bc_member"`
	MatchedAt     time.Time               `json:"matched_at"`
	Status        string                  `json:"status"`
	StatusDisplay string                  `json:"status_display"`
	ConfirmedAt   *time.Time              `json:"confirmed_at"`
	Messages      []MessageResponse       `json:"messages,omitempty"`

	// admin views only
	ConfirmedBy *uint  `json:"confirmed_by,omitempty"`
	AdminNotes  string `json:"admin_notes,omitempty"`
}

func NewMatchResponse(m domain.Match) MatchResponse {
	return MatchResponse{
		ID:            m.ID,
		Applicant:     m.Applicant,
		Member:        m.Member,
		MatchedAt:     m.MatchedAt,
		Status:        string(m.Status),
		StatusDisplay: m.Status.Display(),
		ConfirmedAt:   m.ConfirmedAt,
	}
}

func NewAdminMatchResponse(m domain.Match) MatchResponse {
	out := NewMatchResponse(m)
	out.ConfirmedBy = m.ConfirmedBy
	out.AdminNotes = m.AdminNotes
	return out
}

type MatchAction struct {
	Notes string `json:"notes" validate:"max=2000"`
}

type BulkMatchAction struct {
	IDs    []uint `json:"ids" validate:"required,min=1,max=200,dive,gt=0"`
	Action string `json:"action" validate:"required,oneof=confirm reject"`
	Notes  string `json:"notes" validate:"max=2000"`
}

const (
	BulkResultApplied = "applied"
	BulkResultSkipped = "skipped"
	BulkResultFailed  = "failed"
)

type BulkMatchResult struct {
	ID     uint   `json:"id"`
	Result string `json:"result"` // applied | skipped | failed
	Status string `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
}
