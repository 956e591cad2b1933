package dto

type AdminStats struct {
	TotalMembers      int64 `json:"total_members"`
	PendingMembers    int64 `json:"pending_members"`
	TotalApplicants   int64 `json:"total_applicants"`
	MatchedApplicants int64 `json:"matched_applicants"`
	TotalMatches      int64 `json:"total_matches"`
	PendingMatches    int64 `json:"pending_matches"`
	ConfirmedMatches  int64 `json:"confirmed_matches"`
	RejectedMatches   int64 `json:"rejected_matches"`
	CompletedMatches  int64 `json:"completed_matches"`
}

type AdminCreateMember struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url,max=500"`
	MemberProfileFields
}

type RejectMember struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type WhitelistAdd struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=255"`
	Notes string `json:"notes"`
}

type InviteCodeCreate struct {
	MaxUses        int    `json:"max_uses" validate:"min=0,max=1000"`
	ExpiresInHours int    `json:"expires_in_hours" validate:"min=0,max=8760"`
	Note           string `json:"note" validate:"max=500"`
}
