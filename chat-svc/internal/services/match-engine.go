package services

import (
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"gorm.io/gorm"
)

// MatchEngine turns an established mutual like into a pending match.
type MatchEngine struct {
	applicants repository.ApplicantProfileRepository
	matches    repository.MatchRepository
}

func NewMatchEngine(applicants repository.ApplicantProfileRepository, matches repository.MatchRepository) *MatchEngine {
	return &MatchEngine{applicants: applicants, matches: matches}
}

// TryCreateMatch creates a pending match for the pair unless the applicant already
// has a confirmed match or the pair already has a match. created=false is not an
// error. has_been_matched is left alone; only confirmation sets it. tx may be nil.
// Notifying is up to the caller once tx commits.
func (e *MatchEngine) TryCreateMatch(tx *gorm.DB, applicantID, memberID uint) (*domain.Match, bool, error) {
	applicants, matches := e.applicants, e.matches
	if tx != nil {
		applicants = applicants.WithTx(tx)
		matches = matches.WithTx(tx)
	}

	applicant, found, err := applicants.FindByID(applicantID)
	if err != nil {
		return nil, false, err
	}
	if !found || applicant.HasBeenMatched {
		return nil, false, nil
	}

	exists, err := matches.ExistsForPair(applicantID, memberID)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	m := &domain.Match{
		ApplicantID: applicantID,
		MemberID:    memberID,
		Status:      domain.MatchStatusPending,
	}
	created, err := matches.CreateIfAbsent(m)
	if err != nil || !created {
		return nil, false, err
	}
	return m, true, nil
}
