package domain

import "time"

const (
	YearFreshman  = "Freshman"
	YearSophomore = "Sophomore"
	YearJunior    = "Junior"
	YearSenior    = "Senior"
)

// MemberProfile is only ever created by an admin, by a whitelisted user or through an
// invite code. It stays out of discovery until IsApproved is set.
type MemberProfile struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User              User       `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Year              string     `gorm:"type:varchar(20);not null" json:"year"`
	Major             string     `gorm:"type:varchar(100);not null" json:"major"`
	SemestersInBC     int        `gorm:"not null;default:1" json:"semesters_in_bc"`
	AreasOfExpertise  []string   `gorm:"serializer:json;type:text" json:"areas_of_expertise"`
	Availability      string     `gorm:"type:varchar(100)" json:"availability"`
	Bio               string     `gorm:"type:text" json:"bio"`
	ProjectExperience string     `gorm:"type:text" json:"project_experience"`
	IsApproved        bool       `gorm:"not null;default:false;index" json:"is_approved"`
	ApprovedBy        *uint      `json:"approved_by,omitempty"` // admin user_id
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MemberProfile) TableName() string { return "bc_member_profiles" }

func ValidMemberYear(year string) bool {
	switch year {
	case YearFreshman, YearSophomore, YearJunior, YearSenior:
		return true
	}
	return false
}
