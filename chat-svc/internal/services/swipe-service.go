package services

import (
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/interfaces"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"gorm.io/gorm"
)

type SwipeService interface {
	Swipe(userID uint, input dto.SwipeRequest) (*dto.SwipeResponse, error)
	Discover(userID uint) (*dto.DiscoverResponse, error)
}

type swipeService struct {
	tx         repository.Transactor
	users      repository.UserRepository
	applicants repository.ApplicantProfileRepository
	members    repository.MemberProfileRepository
	swipes     repository.SwipeRepository
	matches    repository.MatchRepository
	engine     *MatchEngine
	notifier   interfaces.Notifier
}

func NewSwipeService(
	tx repository.Transactor,
	users repository.UserRepository,
	applicants repository.ApplicantProfileRepository,
	members repository.MemberProfileRepository,
	swipes repository.SwipeRepository,
	matches repository.MatchRepository,
	notifier interfaces.Notifier,
) SwipeService {
	return &swipeService{
		tx:         tx,
		users:      users,
		applicants: applicants,
		members:    members,
		swipes:     swipes,
		matches:    matches,
		engine:     NewMatchEngine(applicants, matches),
		notifier:   notifier,
	}
}

// swipePair is the (applicant, member) pair a swipe is about, whichever side swiped.
type swipePair struct {
	applicantID uint
	memberID    uint
}

func (s *swipeService) Swipe(userID uint, input dto.SwipeRequest) (*dto.SwipeResponse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	direction := domain.SwipeDirection(input.Direction)
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}
	if input.TargetID == userID {
		return nil, ErrSelfSwipe
	}

	pair, err := s.resolvePair(userID, input.TargetID)
	if err != nil {
		return nil, err
	}

	swipe := &domain.Swipe{
		SwiperID:  userID,
		TargetID:  input.TargetID,
		Direction: direction,
	}
	var match *domain.Match

	err = s.tx.Transaction(func(tx *gorm.DB) error {
		swipes := s.swipes.WithTx(tx)

		if err := swipes.Create(swipe); err != nil {
			if helper.IsDuplicateKey(err, "uidx_swipes_swiper_target") {
				return ErrAlreadySwiped
			}
			return err
		}

		if direction != domain.SwipeLike {
			return nil
		}

		if err := swipes.LockPair(userID, input.TargetID); err != nil {
			return err
		}
		mutual, err := swipes.HasReciprocalLike(userID, input.TargetID)
		if err != nil || !mutual {
			return err
		}

		created, ok, err := s.engine.TryCreateMatch(tx, pair.applicantID, pair.memberID)
		if err != nil {
			return err
		}
		if ok {
			match = created
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SwipeResponse{
		Swipe: dto.SwipeItem{
			ID:        swipe.ID,
			Target:    swipe.TargetID,
			Direction: string(swipe.Direction),
			CreatedAt: swipe.CreatedAt,
		},
	}
	if match == nil {
		return resp, nil
	}

	resp.MatchCreated = true
	full, found, err := s.matches.FindByID(match.ID)
	if err != nil || !found {
		// the match is committed; only the payload is missing
		log.Printf("reload match %d error: %v", match.ID, err)
		mr := dto.NewMatchResponse(*match)
		resp.Match = &mr
		return resp, nil
	}

	mr := dto.NewMatchResponse(*full)
	resp.Match = &mr
	if s.notifier != nil {
		s.notifier.NotifyMatchCreated(*full)
	}
	return resp, nil
}

// resolvePair checks that swiper and target sit on opposite sides and both have the
// profile the swipe needs.
func (s *swipeService) resolvePair(swiperID, targetID uint) (swipePair, error) {
	user, found, err := s.users.FindUserByID(swiperID)
	if err != nil {
		return swipePair{}, err
	}
	if !found {
		return swipePair{}, ErrUserNotFound
	}

	switch user.UserType {
	case domain.UserTypeApplicant:
		own, found, err := s.applicants.FindByUserID(swiperID)
		if err != nil {
			return swipePair{}, err
		}
		if !found {
			return swipePair{}, ErrProfileNotFound
		}
		target, found, err := s.members.FindByUserID(targetID)
		if err != nil {
			return swipePair{}, err
		}
		if !found || !target.IsApproved {
			return swipePair{}, ErrTargetNotFound
		}
		return swipePair{applicantID: own.ID, memberID: target.ID}, nil

	case domain.UserTypeBCMember:
		own, err := s.approvedMember(swiperID)
		if err != nil {
			return swipePair{}, err
		}
		target, found, err := s.applicants.FindByUserID(targetID)
		if err != nil {
			return swipePair{}, err
		}
		if !found {
			return swipePair{}, ErrTargetNotFound
		}
		return swipePair{applicantID: target.ID, memberID: own.ID}, nil
	}

	return swipePair{}, ErrUserTypeNotSet
}

func (s *swipeService) approvedMember(userID uint) (*domain.MemberProfile, error) {
	own, found, err := s.members.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProfileNotFound
	}
	if !own.IsApproved {
		return nil, ErrMemberNotApproved
	}
	return own, nil
}

func (s *swipeService) Discover(userID uint) (*dto.DiscoverResponse, error) {
	user, found, err := s.users.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUserNotFound
	}

	switch user.UserType {
	case domain.UserTypeApplicant:
		own, found, err := s.applicants.FindByUserID(userID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrProfileNotFound
		}
		if own.HasBeenMatched {
			return &dto.DiscoverResponse{Profiles: []domain.MemberProfile{}, Message: "Already matched"}, nil
		}
		profiles, err := s.members.Discoverable(userID)
		if err != nil {
			return nil, err
		}
		return &dto.DiscoverResponse{Profiles: profiles}, nil

	case domain.UserTypeBCMember:
		if _, err := s.approvedMember(userID); err != nil {
			return nil, err
		}
		profiles, err := s.applicants.Discoverable(userID)
		if err != nil {
			return nil, err
		}
		return &dto.DiscoverResponse{Profiles: profiles}, nil
	}

	return nil, ErrUserTypeNotSet
}
