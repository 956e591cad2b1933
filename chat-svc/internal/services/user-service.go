package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/interfaces"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/pkg/utils"
	"gorm.io/gorm"
)

const (
	photoFolder  = "coffee-chat/profile-photos"
	photoSize    = 512
	photoQuality = 85
)

type UserService interface {
	// Account
	GetMe(userID uint) (*dto.UserResponse, error)
	SelectRole(userID uint, input dto.SelectRole) (*dto.UserResponse, error)
	UpdateMe(userID uint, input dto.UpdateUser) (*dto.UserResponse, error)
	UploadPhoto(ctx context.Context, userID uint, raw []byte) (*dto.UploadResponse, error)
	ResetProfile(userID uint) error
	IsAdmin(userID uint) (bool, error)

	// Applicant profile
	CreateApplicantProfile(userID uint, input dto.CreateApplicantProfile) (*domain.ApplicantProfile, error)
	GetApplicantProfile(userID uint) (*domain.ApplicantProfile, error)
	UpdateApplicantProfile(userID uint, input dto.UpdateApplicantProfile) (*domain.ApplicantProfile, error)

	// Member profile
	CreateMemberProfile(userID uint, input dto.CreateMemberProfile) (*domain.MemberProfile, error)
	GetMemberProfile(userID uint) (*domain.MemberProfile, error)
	UpdateMemberProfile(userID uint, input dto.UpdateMemberProfile) (*domain.MemberProfile, error)
	JoinWithInvite(userID uint, input dto.JoinWithInvite) (*domain.MemberProfile, error)
	CheckInviteCode(code string) (*dto.InviteCodeStatus, error)
	WhitelistStatus(userID uint) (*dto.WhitelistStatus, error)
}

type userService struct {
	tx         repository.Transactor
	users      repository.UserRepository
	applicants repository.ApplicantProfileRepository
	members    repository.MemberProfileRepository
	swipes     repository.SwipeRepository
	matches    repository.MatchRepository
	messages   repository.MessageRepository
	whitelist  repository.WhitelistRepository
	invites    repository.InviteCodeRepository
	uploader   interfaces.Uploader
}

func NewUserService(
	tx repository.Transactor,
	users repository.UserRepository,
	applicants repository.ApplicantProfileRepository,
	members repository.MemberProfileRepository,
	swipes repository.SwipeRepository,
	matches repository.MatchRepository,
	messages repository.MessageRepository,
	whitelist repository.WhitelistRepository,
	invites repository.InviteCodeRepository,
	uploader interfaces.Uploader,
) UserService {
	return &userService{
		tx:         tx,
		users:      users,
		applicants: applicants,
		members:    members,
		swipes:     swipes,
		matches:    matches,
		messages:   messages,
		whitelist:  whitelist,
		invites:    invites,
		uploader:   uploader,
	}
}

func (u *userService) user(userID uint) (*domain.User, error) {
	user, found, err := u.users.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func toUserResponse(user *domain.User) dto.UserResponse {
	out := dto.UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		PhotoURL:          user.PhotoURL,
		HasCompletedSetup: user.HasCompletedSetup,
		IsStaff:           user.IsStaff,
		DateJoined:        user.DateJoined,
	}
	if user.UserType != "" {
		t := user.UserType
		out.UserType = &t
	}
	return out
}

// ACCOUNT
func (u *userService) GetMe(userID uint) (*dto.UserResponse, error) {
	user, err := u.user(userID)
	if err != nil {
		return nil, err
	}
	out := toUserResponse(user)

	switch user.UserType {
	case domain.UserTypeApplicant:
		p, found, err := u.applicants.FindByUserID(userID)
		if err != nil {
			return nil, err
		}
		if found {
			out.Profile = p
		}
	case domain.UserTypeBCMember:
		p, found, err := u.members.FindByUserID(userID)
		if err != nil {
			return nil, err
		}
		if found {
			out.Profile = p
		}
	}
	return &out, nil
}

// SelectRole sets the role once. bc_member needs a whitelist entry; the member
// profile still has to be approved by an admin before it shows up anywhere.
func (u *userService) SelectRole(userID uint, input dto.SelectRole) (*dto.UserResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	user, err := u.user(userID)
	if err != nil {
		return nil, err
	}

	if user.UserType == input.UserType {
		out := toUserResponse(user)
		return &out, nil
	}
	if user.UserType != "" {
		return nil, ErrRoleAlreadySet
	}

	if input.UserType == domain.UserTypeBCMember {
		ok, err := u.isWhitelisted(user.Email)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotWhitelisted
		}
	}

	user.UserType = input.UserType
	if err := u.users.UpdateUser(userID, map[string]any{"user_type": input.UserType}); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

func (u *userService) UpdateMe(userID uint, input dto.UpdateUser) (*dto.UserResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	user, err := u.user(userID)
	if err != nil {
		return nil, err
	}

	fields := userFields(input.Name, input.PhotoURL)
	if err := u.users.UpdateUser(userID, fields); err != nil {
		return nil, err
	}
	applyUserFields(user, fields)

	out := toUserResponse(user)
	return &out, nil
}

func (u *userService) UploadPhoto(ctx context.Context, userID uint, raw []byte) (*dto.UploadResponse, error) {
	if u.uploader == nil {
		return nil, errors.New("photo upload is not configured")
	}
	if _, err := u.user(userID); err != nil {
		return nil, err
	}

	img, err := utils.NormalizeAvatar(raw, photoSize, photoQuality)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "unsupported image", Err: err}
	}

	name := fmt.Sprintf("user_%d_%d", userID, time.Now().Unix())
	url, err := u.uploader.UploadBytes(ctx, photoFolder, name, img)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	if err := u.users.UpdateUser(userID, map[string]any{"photo_url": url}); err != nil {
		return nil, err
	}
	return &dto.UploadResponse{PhotoURL: url}, nil
}

// ResetProfile drops both profiles, every swipe to or from the user and the user's
// matches with their messages, then clears the role.
func (u *userService) ResetProfile(userID uint) error {
	if _, err := u.user(userID); err != nil {
		return err
	}

	return u.tx.Transaction(func(tx *gorm.DB) error {
		applicants := u.applicants.WithTx(tx)
		members := u.members.WithTx(tx)
		matches := u.matches.WithTx(tx)

		var applicantID, memberID uint
		if p, found, err := applicants.FindByUserID(userID); err != nil {
			return err
		} else if found {
			applicantID = p.ID
		}
		if p, found, err := members.FindByUserID(userID); err != nil {
			return err
		} else if found {
			memberID = p.ID
		}

		ids, err := matches.IDsForProfiles(applicantID, memberID)
		if err != nil {
			return err
		}
		if err := u.messages.WithTx(tx).DeleteByMatchIDs(ids); err != nil {
			return err
		}
		if err := matches.DeleteByIDs(ids); err != nil {
			return err
		}
		if err := members.DeleteByUserID(userID); err != nil {
			return err
		}
		if err := applicants.DeleteByUserID(userID); err != nil {
			return err
		}
		if err := u.swipes.WithTx(tx).DeleteByUser(userID); err != nil {
			return err
		}

		return u.users.WithTx(tx).UpdateUser(userID, map[string]any{
			"user_type":           "",
			"has_completed_setup": false,
		})
	})
}

func (u *userService) IsAdmin(userID uint) (bool, error) {
	user, found, err := u.users.FindUserByID(userID)
	if err != nil {
		return false, err
	}
	return found && user.IsStaff, nil
}

// APPLICANT PROFILE
func (u *userService) CreateApplicantProfile(userID uint, input dto.CreateApplicantProfile) (*domain.ApplicantProfile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !domain.ValidApplicantRole(input.Role) {
		return nil, ValidationError("role is invalid")
	}

	user, err := u.user(userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != "" && user.UserType != domain.UserTypeApplicant {
		return nil, ErrWrongUserType
	}

	p := &domain.ApplicantProfile{
		UserID:             userID,
		Role:               input.Role,
		WhyBC:              strings.TrimSpace(input.WhyBC),
		RelevantExperience: strings.TrimSpace(input.RelevantExperience),
		Interests:          helper.CleanList(input.Interests),
	}

	err = u.tx.Transaction(func(tx *gorm.DB) error {
		applicants := u.applicants.WithTx(tx)
		if _, found, err := applicants.FindByUserID(userID); err != nil {
			return err
		} else if found {
			return ErrProfileExists
		}
		if err := applicants.Create(p); err != nil {
			if helper.IsDuplicateKey(err, "") {
				return ErrProfileExists
			}
			return err
		}

		fields := completeSetupFields(domain.UserTypeApplicant, input.Name, input.PhotoURL)
		return u.users.WithTx(tx).UpdateUser(userID, fields)
	})
	if err != nil {
		return nil, err
	}
	return u.GetApplicantProfile(userID)
}

func (u *userService) GetApplicantProfile(userID uint) (*domain.ApplicantProfile, error) {
	p, found, err := u.applicants.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (u *userService) UpdateApplicantProfile(userID uint, input dto.UpdateApplicantProfile) (*domain.ApplicantProfile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Role != nil && !domain.ValidApplicantRole(*input.Role) {
		return nil, ValidationError("role is invalid")
	}

	p, err := u.GetApplicantProfile(userID)
	if err != nil {
		return nil, err
	}
	if input.Role != nil {
		p.Role = *input.Role
	}
	if input.WhyBC != nil {
		p.WhyBC = strings.TrimSpace(*input.WhyBC)
	}
	if input.RelevantExperience != nil {
		p.RelevantExperience = strings.TrimSpace(*input.RelevantExperience)
	}
	if input.Interests != nil {
		p.Interests = helper.CleanList(*input.Interests)
	}

	err = u.tx.Transaction(func(tx *gorm.DB) error {
		if err := u.applicants.WithTx(tx).Save(p); err != nil {
			return err
		}
		return u.users.WithTx(tx).UpdateUser(userID, userFields(input.Name, input.PhotoURL))
	})
	if err != nil {
		return nil, err
	}
	return u.GetApplicantProfile(userID)
}

// MEMBER PROFILE
func (u *userService) CreateMemberProfile(userID uint, input dto.CreateMemberProfile) (*domain.MemberProfile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	user, err := u.user(userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != "" && user.UserType != domain.UserTypeBCMember {
		return nil, ErrWrongUserType
	}

	ok, err := u.isWhitelisted(user.Email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotWhitelisted
	}

	err = u.tx.Transaction(func(tx *gorm.DB) error {
		return createMemberProfile(u.users.WithTx(tx), u.members.WithTx(tx), userID, input.MemberProfileFields, input.Name, input.PhotoURL, nil)
	})
	if err != nil {
		return nil, err
	}
	return u.GetMemberProfile(userID)
}

// createMemberProfile inserts the profile and completes setup for the user. A nil
// approvedBy leaves the profile waiting for an admin. Pass transaction bound repositories.
func createMemberProfile(
	users repository.UserRepository,
	members repository.MemberProfileRepository,
	userID uint,
	in dto.MemberProfileFields,
	name, photoURL string,
	approvedBy *uint,
) error {
	if _, found, err := members.FindByUserID(userID); err != nil {
		return err
	} else if found {
		return ErrProfileExists
	}

	p := newMemberProfile(userID, in)
	if approvedBy != nil {
		now := time.Now()
		p.IsApproved = true
		p.ApprovedBy = approvedBy
		p.ApprovedAt = &now
	}
	if err := members.Create(p); err != nil {
		if helper.IsDuplicateKey(err, "") {
			return ErrProfileExists
		}
		return err
	}

	fields := completeSetupFields(domain.UserTypeBCMember, name, photoURL)
	return users.UpdateUser(userID, fields)
}

func newMemberProfile(userID uint, in dto.MemberProfileFields) *domain.MemberProfile {
	semesters := in.SemestersInBC
	if semesters <= 0 {
		semesters = 1
	}
	return &domain.MemberProfile{
		UserID:            userID,
		Year:              in.Year,
		Major:             strings.TrimSpace(in.Major),
		SemestersInBC:     semesters,
		AreasOfExpertise:  helper.CleanList(in.AreasOfExpertise),
		Availability:      strings.TrimSpace(in.Availability),
		Bio:               strings.TrimSpace(in.Bio),
		ProjectExperience: strings.TrimSpace(in.ProjectExperience),
	}
}

func (u *userService) GetMemberProfile(userID uint) (*domain.MemberProfile, error) {
	p, found, err := u.members.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// UpdateMemberProfile never touches the approval fields.
func (u *userService) UpdateMemberProfile(userID uint, input dto.UpdateMemberProfile) (*domain.MemberProfile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	p, err := u.GetMemberProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.Year != nil {
		p.Year = *input.Year
	}
	if input.Major != nil {
		p.Major = strings.TrimSpace(*input.Major)
	}
	if input.SemestersInBC != nil {
		p.SemestersInBC = *input.SemestersInBC
	}
	if input.AreasOfExpertise != nil {
		p.AreasOfExpertise = helper.CleanList(*input.AreasOfExpertise)
	}
	if input.Availability != nil {
		p.Availability = strings.TrimSpace(*input.Availability)
	}
	if input.Bio != nil {
		p.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.ProjectExperience != nil {
		p.ProjectExperience = strings.TrimSpace(*input.ProjectExperience)
	}

	err = u.tx.Transaction(func(tx *gorm.DB) error {
		if err := u.members.WithTx(tx).Save(p); err != nil {
			return err
		}
		return u.users.WithTx(tx).UpdateUser(userID, userFields(input.Name, input.PhotoURL))
	})
	if err != nil {
		return nil, err
	}
	return u.GetMemberProfile(userID)
}

// JoinWithInvite redeems one use of the code and creates an unapproved profile.
func (u *userService) JoinWithInvite(userID uint, input dto.JoinWithInvite) (*domain.MemberProfile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	user, err := u.user(userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != "" && user.UserType != domain.UserTypeBCMember {
		return nil, ErrWrongUserType
	}

	code, found, err := u.invites.FindByCode(strings.TrimSpace(input.InviteCode))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInviteCodeInvalid
	}

	err = u.tx.Transaction(func(tx *gorm.DB) error {
		if err := createMemberProfile(u.users.WithTx(tx), u.members.WithTx(tx), userID, input.MemberProfileFields, "", "", nil); err != nil {
			return err
		}
		ok, err := u.invites.WithTx(tx).Redeem(code.ID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInviteCodeInvalid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.GetMemberProfile(userID)
}

func (u *userService) CheckInviteCode(code string) (*dto.InviteCodeStatus, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ValidationError("invite code is required")
	}
	c, found, err := u.invites.FindByCode(code)
	if err != nil {
		return nil, err
	}
	return &dto.InviteCodeStatus{Code: code, Valid: found && c.Usable(time.Now())}, nil
}

func (u *userService) WhitelistStatus(userID uint) (*dto.WhitelistStatus, error) {
	user, err := u.user(userID)
	if err != nil {
		return nil, err
	}
	ok, err := u.isWhitelisted(user.Email)
	if err != nil {
		return nil, err
	}

	out := &dto.WhitelistStatus{Email: user.Email, Whitelisted: ok}
	p, found, err := u.members.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if found {
		out.HasProfile = true
		out.IsApproved = p.IsApproved
	}
	return out, nil
}

func (u *userService) isWhitelisted(email string) (bool, error) {
	_, found, err := u.whitelist.FindByEmail(email)
	return found, err
}

func userFields(name, photoURL *string) map[string]any {
	fields := map[string]any{}
	if name != nil && strings.TrimSpace(*name) != "" {
		fields["name"] = strings.TrimSpace(*name)
	}
	if photoURL != nil {
		fields["photo_url"] = strings.TrimSpace(*photoURL)
	}
	return fields
}

func applyUserFields(user *domain.User, fields map[string]any) {
	if v, ok := fields["name"].(string); ok {
		user.Name = v
	}
	if v, ok := fields["photo_url"].(string); ok {
		user.PhotoURL = v
	}
}

func completeSetupFields(userType, name, photoURL string) map[string]any {
	fields := map[string]any{
		"user_type":           userType,
		"has_completed_setup": true,
	}
	if name = strings.TrimSpace(name); name != "" {
		fields["name"] = name
	}
	if photoURL = strings.TrimSpace(photoURL); photoURL != "" {
		fields["photo_url"] = photoURL
	}
	return fields
}
