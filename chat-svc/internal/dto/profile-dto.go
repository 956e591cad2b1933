package dto

import "time"

type UserResponse struct {
	ID                uint        `json:"id"`
	Email             string      `json:"email"`
	Name              string      `json:"name"`
	PhotoURL          string      `json:"photo_url"`
	UserType          *string     `json:"user_type"`
	HasCompletedSetup bool        `json:"has_completed_setup"`
	IsStaff           bool        `json:"is_staff,omitempty"`
	DateJoined        time.Time   `json:"date_joined"`
	Profile           interface{} `json:"profile,omitempty"`
}

type SelectRole struct {
	UserType string `json:"user_type" validate:"required,oneof=applicant bc_member"`
}

type UpdateUser struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url,max=500"`
}

type ApplicantProfileFields struct {
	Role               string   `json:"role" validate:"required"`
	WhyBC              string   `json:"why_bc" validate:"required"`
	RelevantExperience string   `json:"relevant_experience" validate:"required"`
	Interests          []string `json:"interests" validate:"max=20,dive,max=50"`
}

type CreateApplicantProfile struct {
	Name     string `json:"name" validate:"required,max=255"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url,max=500"`
	ApplicantProfileFields
}

type UpdateApplicantProfile struct {
	Name               *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	PhotoURL           *string   `json:"photo_url,omitempty" validate:"omitempty,url,max=500"`
	Role               *string   `json:"role,omitempty"`
	WhyBC              *string   `json:"why_bc,omitempty"`
	RelevantExperience *string   `json:"relevant_experience,omitempty"`
	Interests          *[]string `json:"interests,omitempty"`
}

type MemberProfileFields struct {
	Year              string   `json:"year" validate:"required,oneof=Freshman Sophomore Junior Senior"`
	Major             string   `json:"major" validate:"required,max=100"`
	SemestersInBC     int      `json:"semesters_in_bc" validate:"min=0,max=16"`
	AreasOfExpertise  []string `json:"areas_of_expertise" validate:"max=20,dive,max=50"`
	Availability      string   `json:"availability" validate:"max=100"`
	Bio               string   `json:"bio"`
	ProjectExperience string   `json:"project_experience"`
}

type CreateMemberProfile struct {
	Name     string `json:"name" validate:"required,max=255"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url,max=500"`
	MemberProfileFields
}

type UpdateMemberProfile struct {
	Name              *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	PhotoURL          *string   `json:"photo_url,omitempty" validate:"omitempty,url,max=500"`
	Year              *string   `json:"year,omitempty" validate:"omitempty,oneof=Freshman Sophomore Junior Senior"`
	Major             *string   `json:"major,omitempty" validate:"omitempty,max=100"`
	SemestersInBC     *int      `json:"semesters_in_bc,omitempty" validate:"omitempty,min=0,max=16"`
	AreasOfExpertise  *[]string `json:"areas_of_expertise,omitempty"`
	Availability      *string   `json:"availability,omitempty" validate:"omitempty,max=100"`
	Bio               *string   `json:"bio,omitempty"`
	ProjectExperience *string   `json:"project_experience,omitempty"`
}

type JoinWithInvite struct {
	InviteCode string `json:"invite_code" validate:"required"`
	MemberProfileFields
}

type WhitelistStatus struct {
	Email       string `json:"email"`
	Whitelisted bool   `json:"is_whitelisted"`
	HasProfile  bool   `json:"has_profile"`
	IsApproved  bool   `json:"is_approved"`
}

type InviteCodeStatus struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

type UploadResponse struct {
	PhotoURL string `json:"photo_url"`
}
