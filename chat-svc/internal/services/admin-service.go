package services

import (
	"strings"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper/utils"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminService interface {
	Stats() (*dto.AdminStats, error)

	// Members
	ListMembers(limit, offset int) ([]domain.MemberProfile, error)
	ListPendingMembers(limit, offset int) ([]domain.MemberProfile, error)
	CreateMember(adminID uint, input dto.AdminCreateMember) (*domain.MemberProfile, error)
	ApproveMember(adminID, profileID uint) (*domain.MemberProfile, error)
	RejectMember(adminID, profileID uint, input dto.RejectMember) error

	ListApplicants(limit, offset int) ([]domain.ApplicantProfile, error)

	// Whitelist
	ListWhitelist() ([]domain.WhitelistEntry, error)
	AddWhitelist(adminID uint, input dto.WhitelistAdd) (*domain.WhitelistEntry, error)
	RemoveWhitelist(adminID, id uint) error

	// Invite codes
	ListInviteCodes() ([]domain.InviteCode, error)
	CreateInviteCode(adminID uint, input dto.InviteCodeCreate) (*domain.InviteCode, error)
	DisableInviteCode(adminID, id uint) error

	AuditLog(limit, offset int) ([]domain.AuditLog, error)
}

type adminService struct {
	tx            repository.Transactor
	users         repository.UserRepository
	applicants    repository.ApplicantProfileRepository
	members       repository.MemberProfileRepository
	matches       repository.MatchRepository
	whitelist     repository.WhitelistRepository
	invites       repository.InviteCodeRepository
	audit         repository.AuditLogRepository
	allowedDomain string
}

func NewAdminService(
	tx repository.Transactor,
	users repository.UserRepository,
	applicants repository.ApplicantProfileRepository,
	members repository.MemberProfileRepository,
	matches repository.MatchRepository,
	whitelist repository.WhitelistRepository,
	invites repository.InviteCodeRepository,
	audit repository.AuditLogRepository,
	allowedDomain string,
) AdminService {
	return &adminService{
		tx:            tx,
		users:         users,
		applicants:    applicants,
		members:       members,
		matches:       matches,
		whitelist:     whitelist,
		invites:       invites,
		audit:         audit,
		allowedDomain: allowedDomain,
	}
}

func (a *adminService) Stats() (*dto.AdminStats, error) {
	var (
		out      dto.AdminStats
		err      error
		approved = true
		pending  = false
		matched  = true
	)

	if out.TotalMembers, err = a.members.Count(&approved); err != nil {
		return nil, err
	}
	if out.PendingMembers, err = a.members.Count(&pending); err != nil {
		return nil, err
	}
	if out.TotalApplicants, err = a.applicants.Count(nil); err != nil {
		return nil, err
	}
	if out.MatchedApplicants, err = a.applicants.Count(&matched); err != nil {
		return nil, err
	}
	if out.TotalMatches, err = a.matches.Count(nil); err != nil {
		return nil, err
	}

	counts := map[domain.MatchStatus]*int64{
		domain.MatchStatusPending:   &out.PendingMatches,
		domain.MatchStatusConfirmed: &out.ConfirmedMatches,
		domain.MatchStatusRejected:  &out.RejectedMatches,
		domain.MatchStatusCompleted: &out.CompletedMatches,
	}
	for status, dst := range counts {
		st := status
		if *dst, err = a.matches.Count(&st); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

// MEMBERS
func (a *adminService) ListMembers(limit, offset int) ([]domain.MemberProfile, error) {
	return a.members.List(nil, limit, offset)
}

func (a *adminService) ListPendingMembers(limit, offset int) ([]domain.MemberProfile, error) {
	pending := false
	return a.members.List(&pending, limit, offset)
}

// CreateMember creates (or reuses) the user by email and gives it an approved profile.
func (a *adminService) CreateMember(adminID uint, input dto.AdminCreateMember) (*domain.MemberProfile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(input.Email)
	if a.allowedDomain != "" && !utils.EmailInDomain(email, a.allowedDomain) {
		return nil, ErrDomainNotAllowed
	}

	var userID uint
	err := a.tx.Transaction(func(tx *gorm.DB) error {
		users := a.users.WithTx(tx)

		user, found, err := users.FindUserByEmail(email)
		if err != nil {
			return err
		}
		if !found {
			user, err = users.CreateUser(&domain.User{Email: email, Name: strings.TrimSpace(input.Name)})
			if err != nil {
				if helper.IsDuplicateKey(err, "") {
					return ErrEmailExists
				}
				return err
			}
		}
		if user.UserType == domain.UserTypeApplicant {
			return ErrWrongUserType
		}
		userID = user.ID

		members := a.members.WithTx(tx)
		if err := createMemberProfile(users, members, user.ID, input.MemberProfileFields, input.Name, input.PhotoURL, &adminID); err != nil {
			return err
		}

		p, found, err := members.FindByUserID(user.ID)
		if err != nil {
			return err
		}
		if !found {
			return ErrProfileNotFound
		}
		return a.audit.WithTx(tx).Create(&domain.AuditLog{
			ActorID:  adminID,
			Action:   domain.AuditActionMemberCreate,
			Entity:   domain.AuditEntityMember,
			EntityID: p.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	p, found, err := a.members.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (a *adminService) ApproveMember(adminID, profileID uint) (*domain.MemberProfile, error) {
	err := a.tx.Transaction(func(tx *gorm.DB) error {
		members := a.members.WithTx(tx)

		ok, err := members.Approve(profileID, adminID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			if _, found, err := members.FindByID(profileID); err != nil {
				return err
			} else if !found {
				return ErrProfileNotFound
			}
			return ErrMemberAlreadyHandled
		}

		return a.audit.WithTx(tx).Create(&domain.AuditLog{
			ActorID:  adminID,
			Action:   domain.AuditActionMemberApprove,
			Entity:   domain.AuditEntityMember,
			EntityID: profileID,
		})
	})
	if err != nil {
		return nil, err
	}

	p, found, err := a.members.FindByID(profileID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// RejectMember removes a pending profile and hands the user back an unset role.
func (a *adminService) RejectMember(adminID, profileID uint, input dto.RejectMember) error {
	if err := validateInput(input); err != nil {
		return err
	}

	return a.tx.Transaction(func(tx *gorm.DB) error {
		members := a.members.WithTx(tx)

		p, found, err := members.FindByID(profileID)
		if err != nil {
			return err
		}
		if !found {
			return ErrProfileNotFound
		}
		if p.IsApproved {
			return ErrMemberAlreadyHandled
		}

		if err := members.DeleteByUserID(p.UserID); err != nil {
			return err
		}
		if err := a.users.WithTx(tx).UpdateUser(p.UserID, map[string]any{
			"user_type":           "",
			"has_completed_setup": false,
		}); err != nil {
			return err
		}

		return a.audit.WithTx(tx).Create(&domain.AuditLog{
			ActorID:  adminID,
			Action:   domain.AuditActionMemberReject,
			Entity:   domain.AuditEntityMember,
			EntityID: profileID,
			Note:     notePtr(strings.TrimSpace(input.Reason)),
		})
	})
}

func (a *adminService) ListApplicants(limit, offset int) ([]domain.ApplicantProfile, error) {
	return a.applicants.List(nil, limit, offset)
}

// WHITELIST
func (a *adminService) ListWhitelist() ([]domain.WhitelistEntry, error) {
	return a.whitelist.List()
}

func (a *adminService) AddWhitelist(adminID uint, input dto.WhitelistAdd) (*domain.WhitelistEntry, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(input.Email)
	if a.allowedDomain != "" && !utils.EmailInDomain(email, a.allowedDomain) {
		return nil, ErrDomainNotAllowed
	}

	entry := &domain.WhitelistEntry{
		Email:   email,
		Name:    strings.TrimSpace(input.Name),
		Notes:   strings.TrimSpace(input.Notes),
		AddedBy: &adminID,
	}
	if err := a.whitelist.Add(entry); err != nil {
		if helper.IsDuplicateKey(err, "") {
			return nil, ErrWhitelistExists
		}
		return nil, err
	}
	a.writeAudit(adminID, domain.AuditActionWhitelistAdd, domain.AuditEntityWhitelist, entry.ID, email)
	return entry, nil
}

func (a *adminService) RemoveWhitelist(adminID, id uint) error {
	ok, err := a.whitelist.DeleteByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWhitelistNotFound
	}
	a.writeAudit(adminID, domain.AuditActionWhitelistRemove, domain.AuditEntityWhitelist, id, "")
	return nil
}

// INVITE CODES
func (a *adminService) ListInviteCodes() ([]domain.InviteCode, error) {
	return a.invites.List()
}

func (a *adminService) CreateInviteCode(adminID uint, input dto.InviteCodeCreate) (*domain.InviteCode, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	code := &domain.InviteCode{
		Code:      newInviteCode(),
		CreatedBy: adminID,
		MaxUses:   input.MaxUses,
		IsActive:  true,
		Note:      strings.TrimSpace(input.Note),
	}
	if input.ExpiresInHours > 0 {
		exp := time.Now().Add(time.Duration(input.ExpiresInHours) * time.Hour)
		code.ExpiresAt = &exp
	}

	if err := a.invites.Create(code); err != nil {
		return nil, err
	}
	a.writeAudit(adminID, domain.AuditActionInviteCreate, domain.AuditEntityInviteCode, code.ID, code.Note)
	return code, nil
}

func (a *adminService) DisableInviteCode(adminID, id uint) error {
	ok, err := a.invites.Deactivate(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInviteCodeNotFound
	}
	a.writeAudit(adminID, domain.AuditActionInviteDisable, domain.AuditEntityInviteCode, id, "")
	return nil
}

func (a *adminService) AuditLog(limit, offset int) ([]domain.AuditLog, error) {
	return a.audit.List(limit, offset)
}

// writeAudit is for single-statement actions that have no transaction to join.
func (a *adminService) writeAudit(adminID uint, action, entity string, entityID uint, note string) {
	_ = a.audit.Create(&domain.AuditLog{
		ActorID:  adminID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Note:     notePtr(note),
	})
}

// newInviteCode returns 12 upper-case hex characters.
func newInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:12])
}
