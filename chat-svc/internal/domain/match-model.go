package domain

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusConfirmed MatchStatus = "confirmed"
	MatchStatusRejected  MatchStatus = "rejected"
	MatchStatusCompleted MatchStatus = "completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusConfirmed, MatchStatusRejected, MatchStatusCompleted:
		return true
	}
	return false
}

func (s MatchStatus) Display() string {
	switch s {
	case MatchStatusPending:
		return "Pending Admin Approval"
	case MatchStatusConfirmed:
		return "Confirmed"
	case MatchStatusRejected:
		return "Rejected"
	case MatchStatusCompleted:
		return "Coffee Chat Completed"
	}
	return string(s)
}

type Match struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ApplicantID uint             `gorm:"not null;uniqueIndex:uidx_matches_applicant_member,priority:1" json:"applicant_id"`
	Applicant   ApplicantProfile `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"applicant"`
	MemberID    uint             `gorm:"not null;uniqueIndex:uidx_matches_applicant_member,priority:2;index" json:"bc_member_id"`
	Member      MemberProfile    `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"bc_member"`
	Status      MatchStatus      `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	MatchedAt   time.Time        `gorm:"autoCreateTime" json:"matched_at"`
	ConfirmedBy *uint            `json:"confirmed_by,omitempty"` // admin user_id
	ConfirmedAt *time.Time       `json:"confirmed_at,omitempty"`
	AdminNotes  string           `gorm:"type:text" json:"-"`
}

func (Match) TableName() string { return "bc_matches" }

// IsParticipant needs Applicant and Member preloaded.
func (m *Match) IsParticipant(userID uint) bool {
	return userID != 0 && (m.Applicant.UserID == userID || m.Member.UserID == userID)
}

// Counterpart returns the other side of the match for the given participant.
func (m *Match) Counterpart(userID uint) (User, bool) {
	switch userID {
	case m.Applicant.UserID:
		return m.Member.User, true
	case m.Member.UserID:
		return m.Applicant.User, true
	}
	return User{}, false
}
