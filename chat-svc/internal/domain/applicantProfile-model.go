package domain

import "time"

const (
	ApplicantRoleMBA1     = "MBA1"
	ApplicantRoleMBA2     = "MBA2"
	ApplicantRoleGraduate = "Graduate"
)

type ApplicantProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User               User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Role               string    `gorm:"type:varchar(50);not null" json:"role"`
	WhyBC              string    `gorm:"type:text" json:"why_bc"`
	RelevantExperience string    `gorm:"type:text" json:"relevant_experience"`
	Interests          []string  `gorm:"serializer:json;type:text" json:"interests"`
	HasBeenMatched     bool      `gorm:"not null;default:false;index" json:"has_been_matched"` // set on confirmation only
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ApplicantProfile) TableName() string { return "bc_applicant_profiles" }

func ValidApplicantRole(role string) bool {
	if ValidMemberYear(role) {
		return true
	}
	switch role {
	case ApplicantRoleMBA1, ApplicantRoleMBA2, ApplicantRoleGraduate:
		return true
	}
	return false
}
