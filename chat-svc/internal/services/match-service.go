package services

import (
	"errors"
	"log"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/interfaces"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"gorm.io/gorm"
)

type MatchService interface {
	// participant views
	ListForUser(userID uint) ([]dto.MatchResponse, error)
	GetForUser(userID, matchID uint) (*dto.MatchResponse, error)

	// admin workflow
	Confirm(adminID, matchID uint, input dto.MatchAction) (*dto.MatchResponse, error)
	Reject(adminID, matchID uint, input dto.MatchAction) (*dto.MatchResponse, error)
	Complete(adminID, matchID uint, input dto.MatchAction) (*dto.MatchResponse, error)
	Bulk(adminID uint, input dto.BulkMatchAction) ([]dto.BulkMatchResult, error)
	List(status string, limit, offset int) ([]dto.MatchResponse, error)
}

type matchService struct {
	tx         repository.Transactor
	users      repository.UserRepository
	applicants repository.ApplicantProfileRepository
	members    repository.MemberProfileRepository
	matches    repository.MatchRepository
	messages   repository.MessageRepository
	audit      repository.AuditLogRepository
	notifier   interfaces.Notifier
}

func NewMatchService(
	tx repository.Transactor,
	users repository.UserRepository,
	applicants repository.ApplicantProfileRepository,
	members repository.MemberProfileRepository,
	matches repository.MatchRepository,
	messages repository.MessageRepository,
	audit repository.AuditLogRepository,
	notifier interfaces.Notifier,
) MatchService {
	return &matchService{
		tx:         tx,
		users:      users,
		applicants: applicants,
		members:    members,
		matches:    matches,
		messages:   messages,
		audit:      audit,
		notifier:   notifier,
	}
}

func (s *matchService) ListForUser(userID uint) ([]dto.MatchResponse, error) {
	user, found, err := s.users.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}

	var matches []domain.Match
	switch user.UserType {
	case domain.UserTypeApplicant:
		p, found, err := s.applicants.FindByUserID(userID)
		if err != nil {
			return nil, err
		}
		if found {
			if matches, err = s.matches.ListForApplicant(p.ID); err != nil {
				return nil, err
			}
		}
	case domain.UserTypeBCMember:
		p, found, err := s.members.FindByUserID(userID)
		if err != nil {
			return nil, err
		}
		if found {
			if matches, err = s.matches.ListForMember(p.ID); err != nil {
				return nil, err
			}
		}
	}

	out := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.NewMatchResponse(m))
	}
	return out, nil
}

func (s *matchService) GetForUser(userID, matchID uint) (*dto.MatchResponse, error) {
	m, found, err := s.matches.FindByID(matchID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMatchNotFound
	}
	if !m.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}

	out := dto.NewMatchResponse(*m)
	if m.Status == domain.MatchStatusConfirmed || m.Status == domain.MatchStatusCompleted {
		msgs, err := s.messages.ListByMatch(m.ID)
		if err != nil {
			return nil, err
		}
		out.Messages = make([]dto.MessageResponse, 0, len(msgs))
		for _, msg := range msgs {
			out.Messages = append(out.Messages, dto.NewMessageResponse(msg))
		}
	}
	return &out, nil
}

func (s *matchService) Confirm(adminID, matchID uint, input dto.MatchAction) (*dto.MatchResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	m, err := s.confirm(adminID, matchID, input.Notes)
	if err != nil {
		return nil, err
	}
	out := dto.NewAdminMatchResponse(*m)
	return &out, nil
}

func (s *matchService) Reject(adminID, matchID uint, input dto.MatchAction) (*dto.MatchResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	m, err := s.reject(adminID, matchID, input.Notes)
	if err != nil {
		return nil, err
	}
	out := dto.NewAdminMatchResponse(*m)
	return &out, nil
}

func (s *matchService) Complete(adminID, matchID uint, input dto.MatchAction) (*dto.MatchResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	fields := map[string]any{"status": domain.MatchStatusCompleted}
	if input.Notes != "" {
		fields["admin_notes"] = input.Notes
	}

	m, err := s.transition(adminID, matchID, domain.MatchStatusConfirmed, fields, domain.AuditActionMatchComplete, input.Notes, nil)
	if err != nil {
		return nil, err
	}
	out := dto.NewAdminMatchResponse(*m)
	return &out, nil
}

// confirm moves pending -> confirmed and flags the applicant in the same transaction.
// An applicant that is already flagged means another match was confirmed first, so
// this one is refused and nothing changes.
func (s *matchService) confirm(adminID, matchID uint, notes string) (*domain.Match, error) {
	now := time.Now()
	fields := map[string]any{
		"status":       domain.MatchStatusConfirmed,
		"confirmed_by": adminID,
		"confirmed_at": now,
	}
	if notes != "" {
		fields["admin_notes"] = notes
	}

	m, err := s.transition(adminID, matchID, domain.MatchStatusPending, fields, domain.AuditActionMatchConfirm, notes,
		func(tx *gorm.DB, m *domain.Match) error {
			marked, err := s.applicants.WithTx(tx).MarkMatched(m.ApplicantID)
			if err != nil {
				return err
			}
			if !marked {
				return ErrApplicantMatched
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyMatchConfirmed(*m)
	}
	return m, nil
}

func (s *matchService) reject(adminID, matchID uint, notes string) (*domain.Match, error) {
	fields := map[string]any{
		"status":       domain.MatchStatusRejected,
		"confirmed_by": adminID,
		"confirmed_at": time.Now(),
	}
	if notes != "" {
		fields["admin_notes"] = notes
	}
	return s.transition(adminID, matchID, domain.MatchStatusPending, fields, domain.AuditActionMatchReject, notes, nil)
}

// transition applies fields only while the match is still in status from, runs
// after inside the same transaction and writes the audit entry. It returns the match
// as committed.
func (s *matchService) transition(
	adminID, matchID uint,
	from domain.MatchStatus,
	fields map[string]any,
	action, note string,
	after func(tx *gorm.DB, m *domain.Match) error,
) (*domain.Match, error) {
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		matches := s.matches.WithTx(tx)

		m, found, err := matches.FindByID(matchID)
		if err != nil {
			return err
		}
		if !found {
			return ErrMatchNotFound
		}
		if m.Status != from {
			return ErrInvalidTransition
		}

		ok, err := matches.Transition(matchID, from, fields)
		if err != nil {
			return err
		}
		if !ok {
			// lost the race to another admin
			return ErrInvalidTransition
		}

		if after != nil {
			if err := after(tx, m); err != nil {
				return err
			}
		}

		return s.audit.WithTx(tx).Create(&domain.AuditLog{
			ActorID:  adminID,
			Action:   action,
			Entity:   domain.AuditEntityMatch,
			EntityID: matchID,
			Note:     notePtr(note),
		})
	})
	if err != nil {
		return nil, err
	}

	m, found, err := s.matches.FindByID(matchID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// Bulk applies the single transition to each id independently. A match that is
// missing or not pending is reported as skipped instead of failing the batch; the
// single endpoints return InvalidTransition for the same case.
func (s *matchService) Bulk(adminID uint, input dto.BulkMatchAction) ([]dto.BulkMatchResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	results := make([]dto.BulkMatchResult, 0, len(input.IDs))
	seen := make(map[uint]bool, len(input.IDs))
	for _, id := range input.IDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		var (
			m   *domain.Match
			err error
		)
		if input.Action == "confirm" {
			m, err = s.confirm(adminID, id, input.Notes)
		} else {
			m, err = s.reject(adminID, id, input.Notes)
		}

		res := dto.BulkMatchResult{ID: id}
		switch {
		case err == nil:
			res.Result = dto.BulkResultApplied
			res.Status = string(m.Status)
		case isKind(err, KindInvalidTransition), isKind(err, KindNotFound):
			res.Result = dto.BulkResultSkipped
			res.Reason = err.Error()
		default:
			log.Printf("bulk %s match %d error: %v", input.Action, id, err)
			res.Result = dto.BulkResultFailed
			res.Reason = "internal error"
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *matchService) List(status string, limit, offset int) ([]dto.MatchResponse, error) {
	var filter *domain.MatchStatus
	if status != "" {
		st := domain.MatchStatus(status)
		if !st.Valid() {
			return nil, ValidationError("unknown match status")
		}
		filter = &st
	}

	matches, err := s.matches.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.NewAdminMatchResponse(m))
	}
	return out, nil
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func notePtr(note string) *string {
	if note == "" {
		return nil
	}
	return &note
}
