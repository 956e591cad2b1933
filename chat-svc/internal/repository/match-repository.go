package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository interface {
	WithTx(tx *gorm.DB) MatchRepository

	// CreateIfAbsent inserts the match unless the (applicant, member) pair already
	// has one. created is false on conflict; that is not an error.
	CreateIfAbsent(m *domain.Match) (bool, error)
	ExistsForPair(applicantID, memberID uint) (bool, error)
	FindByID(id uint) (*domain.Match, bool, error)

	// Transition updates the match only while it is still in status from.
	Transition(id uint, from domain.MatchStatus, fields map[string]any) (bool, error)

	ListForApplicant(applicantID uint) ([]domain.Match, error)
	ListForMember(memberID uint) ([]domain.Match, error)
	List(status *domain.MatchStatus, limit, offset int) ([]domain.Match, error)
	Count(status *domain.MatchStatus) (int64, error)

	IDsForProfiles(applicantID, memberID uint) ([]uint, error)
	DeleteByIDs(ids []uint) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) WithTx(tx *gorm.DB) MatchRepository {
	return &matchRepository{db: tx}
}

func (r *matchRepository) withParties() *gorm.DB {
	return r.db.Preload("Applicant.User").Preload("Member.User")
}

func (r *matchRepository) CreateIfAbsent(m *domain.Match) (bool, error) {
	if m == nil {
		return false, errors.New("nil match")
	}
	if m.Status == "" {
		m.Status = domain.MatchStatusPending
	}

	res := r.db.Omit("Applicant", "Member").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "applicant_id"}, {Name: "member_id"}},
			DoNothing: true,
		}).
		Create(m)
	if res.Error != nil {
		log.Printf("create match error: %v", res.Error)
		return false, fmt.Errorf("failed to create match: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *matchRepository) ExistsForPair(applicantID, memberID uint) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Match{}).
		Where("applicant_id = ? AND member_id = ?", applicantID, memberID).
		Count(&n).Error
	if err != nil {
		log.Printf("match exists error: %v", err)
		return false, fmt.Errorf("failed to check match: %w", err)
	}
	return n > 0, nil
}

func (r *matchRepository) FindByID(id uint) (*domain.Match, bool, error) {
	m := &domain.Match{}
	found, err := findOne(r.withParties().Where("id = ?", id), m, "match")
	if err != nil || !found {
		return nil, false, err
	}
	return m, true, nil
}

func (r *matchRepository) Transition(id uint, from domain.MatchStatus, fields map[string]any) (bool, error) {
	res := r.db.Model(&domain.Match{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if res.Error != nil {
		log.Printf("match transition error: %v", res.Error)
		return false, fmt.Errorf("failed to update match: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *matchRepository) ListForApplicant(applicantID uint) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.withParties().Where("applicant_id = ?", applicantID).Order("matched_at DESC").Order("id DESC").Find(&matches).Error
	if err != nil {
		log.Printf("list applicant matches error: %v", err)
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (r *matchRepository) ListForMember(memberID uint) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.withParties().Where("member_id = ?", memberID).Order("matched_at DESC").Order("id DESC").Find(&matches).Error
	if err != nil {
		log.Printf("list member matches error: %v", err)
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (r *matchRepository) List(status *domain.MatchStatus, limit, offset int) ([]domain.Match, error) {
	var matches []domain.Match

	q := r.withParties().Order("matched_at DESC").Order("id DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := paginate(q, limit, offset).Find(&matches).Error; err != nil {
		log.Printf("list matches error: %v", err)
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (r *matchRepository) Count(status *domain.MatchStatus) (int64, error) {
	var n int64
	q := r.db.Model(&domain.Match{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Count(&n).Error; err != nil {
		log.Printf("count matches error: %v", err)
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return n, nil
}

// IDsForProfiles returns the matches touching either profile. Zero ids are ignored.
func (r *matchRepository) IDsForProfiles(applicantID, memberID uint) ([]uint, error) {
	var ids []uint

	q := r.db.Model(&domain.Match{})
	switch {
	case applicantID != 0 && memberID != 0:
		q = q.Where("applicant_id = ? OR member_id = ?", applicantID, memberID)
	case applicantID != 0:
		q = q.Where("applicant_id = ?", applicantID)
	case memberID != 0:
		q = q.Where("member_id = ?", memberID)
	default:
		return ids, nil
	}

	if err := q.Pluck("id", &ids).Error; err != nil {
		log.Printf("match ids error: %v", err)
		return nil, fmt.Errorf("failed to list match ids: %w", err)
	}
	return ids, nil
}

func (r *matchRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("id IN ?", ids).Delete(&domain.Match{}).Error; err != nil {
		log.Printf("delete matches error: %v", err)
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}
