package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper/utils"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/interfaces"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"github.com/google/uuid"
)

type AuthService interface {
	GoogleLoginURL() (url string, state string, err error)
	GoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
	AdminLogin(input dto.AdminLogin) (*dto.LoginResponse, error)
	SeedAdmin(email, password string) error
}

type authService struct {
	users         repository.UserRepository
	whitelist     repository.WhitelistRepository
	google        interfaces.GoogleVerifier
	auth          helper.Auth
	allowedDomain string
}

func NewAuthService(
	users repository.UserRepository,
	whitelist repository.WhitelistRepository,
	google interfaces.GoogleVerifier,
	auth helper.Auth,
	allowedDomain string,
) AuthService {
	return &authService{
		users:         users,
		whitelist:     whitelist,
		google:        google,
		auth:          auth,
		allowedDomain: allowedDomain,
	}
}

func (s *authService) GoogleLoginURL() (string, string, error) {
	if s.google == nil {
		return "", "", errors.New("google login is not configured")
	}
	state := uuid.NewString()
	return s.google.AuthCodeURL(state), state, nil
}

// GoogleCallback signs in (or signs up) the Google account behind code. Only verified
// addresses in the allowed domain get through.
func (s *authService) GoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	if s.google == nil {
		return nil, errors.New("google login is not configured")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ValidationError("authorization code is required")
	}

	id, err := s.google.Exchange(ctx, code)
	if err != nil {
		log.Printf("google exchange error: %v", err)
		return nil, &Error{Kind: KindUnauthorized, Message: "google sign-in failed", Err: err}
	}
	if !id.EmailVerified {
		return nil, ForbiddenError("google email is not verified")
	}
	email := domain.NormalizeEmail(id.Email)
	if s.allowedDomain != "" && !utils.EmailInDomain(email, s.allowedDomain) {
		return nil, ErrDomainNotAllowed
	}

	user, err := s.findOrCreateGoogleUser(email, id)
	if err != nil {
		return nil, err
	}

	// whitelisted emails start as members; their profile still waits for approval
	if user.UserType == "" {
		if _, listed, err := s.whitelist.FindByEmail(email); err != nil {
			return nil, err
		} else if listed {
			user.UserType = domain.UserTypeBCMember
			if err := s.users.UpdateUser(user.ID, map[string]any{"user_type": user.UserType}); err != nil {
				return nil, err
			}
		}
	}

	return s.issue(user)
}

func (s *authService) findOrCreateGoogleUser(email string, id *dto.GoogleIdentity) (*domain.User, error) {
	if id.Subject != "" {
		user, found, err := s.users.FindUserByGoogleSub(id.Subject)
		if err != nil {
			return nil, err
		}
		if found {
			return user, nil
		}
	}

	user, found, err := s.users.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if found {
		// first Google sign-in for an account an admin created
		fields := map[string]any{}
		if id.Subject != "" && user.GoogleSub == nil {
			fields["google_sub"] = id.Subject
		}
		if user.Name == "" && id.Name != "" {
			fields["name"] = id.Name
			user.Name = id.Name
		}
		if user.PhotoURL == "" && id.Picture != "" {
			fields["photo_url"] = id.Picture
			user.PhotoURL = id.Picture
		}
		if err := s.users.UpdateUser(user.ID, fields); err != nil {
			return nil, err
		}
		return user, nil
	}

	newUser := &domain.User{
		Email:    email,
		Name:     strings.TrimSpace(id.Name),
		PhotoURL: id.Picture,
	}
	if id.Subject != "" {
		sub := id.Subject
		newUser.GoogleSub = &sub
	}
	created, err := s.users.CreateUser(newUser)
	if err != nil {
		if helper.IsDuplicateKey(err, "") {
			// concurrent first login; the other request created it
			if existing, found, ferr := s.users.FindUserByEmail(email); ferr == nil && found {
				return existing, nil
			}
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return created, nil
}

func (s *authService) AdminLogin(input dto.AdminLogin) (*dto.LoginResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, found, err := s.users.FindUserByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if !found || !user.IsStaff {
		return nil, ErrInvalidCredentials
	}
	if err := s.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// SeedAdmin makes sure a staff account with this email and password exists.
func (s *authService) SeedAdmin(email, password string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, found, err := s.users.FindUserByEmail(email)
	if err != nil {
		return err
	}
	if found {
		if user.IsStaff && s.auth.VerifyPassword(password, user.PasswordHash) == nil {
			return nil
		}
		return s.users.UpdateUser(user.ID, map[string]any{
			"is_staff":      true,
			"password_hash": hash,
		})
	}

	_, err = s.users.CreateUser(&domain.User{
		Email:        email,
		Name:         "Admin",
		PasswordHash: hash,
		IsStaff:      true,
	})
	return err
}

func (s *authService) issue(user *domain.User) (*dto.LoginResponse, error) {
	token, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}
