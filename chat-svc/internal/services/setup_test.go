package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/helper"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeNotifier struct {
	mu        sync.Mutex
	created   []domain.Match
	confirmed []domain.Match
	messages  []domain.Message
}

func (f *fakeNotifier) NotifyMatchCreated(m domain.Match) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, m)
}

func (f *fakeNotifier) NotifyMatchConfirmed(m domain.Match) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, m)
}

func (f *fakeNotifier) NotifyNewMessage(_ domain.Match, msg domain.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
}

type testEnv struct {
	db *gorm.DB
	tx repository.Transactor

	users      repository.UserRepository
	applicants repository.ApplicantProfileRepository
	members    repository.MemberProfileRepository
	swipes     repository.SwipeRepository
	matches    repository.MatchRepository
	messages   repository.MessageRepository
	whitelist  repository.WhitelistRepository
	invites    repository.InviteCodeRepository
	audit      repository.AuditLogRepository

	notifier *fakeNotifier
	auth     helper.Auth

	swipeSvc   SwipeService
	matchSvc   MatchService
	messageSvc MessageService
	userSvc    UserService
	adminSvc   AdminService
}

const testDomain = "berkeley.edu"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := openTestDB(t)

	e := &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		applicants: repository.NewApplicantProfileRepository(db),
		members:    repository.NewMemberProfileRepository(db),
		swipes:     repository.NewSwipeRepository(db),
		matches:    repository.NewMatchRepository(db),
		messages:   repository.NewMessageRepository(db),
		whitelist:  repository.NewWhitelistRepository(db),
		invites:    repository.NewInviteCodeRepository(db),
		audit:      repository.NewAuditLogRepository(db),
		notifier:   &fakeNotifier{},
		auth:       helper.SetupAuth("test-secret"),
	}
	e.tx = repository.NewTransactor(db)
	tx := e.tx

	e.swipeSvc = NewSwipeService(tx, e.users, e.applicants, e.members, e.swipes, e.matches, e.notifier)
	e.matchSvc = NewMatchService(tx, e.users, e.applicants, e.members, e.matches, e.messages, e.audit, e.notifier)
	e.messageSvc = NewMessageService(e.matches, e.messages, e.notifier)
	e.userSvc = NewUserService(tx, e.users, e.applicants, e.members, e.swipes, e.matches, e.messages, e.whitelist, e.invites, &fakeUploader{})
	e.adminSvc = NewAdminService(tx, e.users, e.applicants, e.members, e.matches, e.whitelist, e.invites, e.audit, testDomain)
	return e
}

func (e *testEnv) newUser(t *testing.T, name, userType string) *domain.User {
	t.Helper()
	u, err := e.users.CreateUser(&domain.User{
		Email:             fmt.Sprintf("%s@%s", name, testDomain),
		Name:              name,
		UserType:          userType,
		HasCompletedSetup: userType != "",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) newApplicant(t *testing.T, name string) (*domain.User, *domain.ApplicantProfile) {
	t.Helper()
	u := e.newUser(t, name, domain.UserTypeApplicant)
	p := &domain.ApplicantProfile{
		UserID:    u.ID,
		Role:      domain.YearSophomore,
		WhyBC:     "consulting",
		Interests: []string{"strategy"},
	}
	require.NoError(t, e.applicants.Create(p))
	return u, p
}

func (e *testEnv) newMember(t *testing.T, name string, approved bool) (*domain.User, *domain.MemberProfile) {
	t.Helper()
	u := e.newUser(t, name, domain.UserTypeBCMember)
	p := &domain.MemberProfile{
		UserID:        u.ID,
		Year:          domain.YearJunior,
		Major:         "EECS",
		SemestersInBC: 3,
		IsApproved:    approved,
	}
	require.NoError(t, e.members.Create(p))
	return u, p
}

func (e *testEnv) newAdmin(t *testing.T) *domain.User {
	t.Helper()
	u, err := e.users.CreateUser(&domain.User{
		Email:   fmt.Sprintf("admin-%s@%s", uuid.NewString()[:8], testDomain),
		Name:    "Admin",
		IsStaff: true,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) like(t *testing.T, from, to *domain.User) *dto.SwipeResponse {
	t.Helper()
	resp, err := e.swipeSvc.Swipe(from.ID, dto.SwipeRequest{TargetID: to.ID, Direction: "like"})
	require.NoError(t, err)
	return resp
}

// pendingMatch runs a full mutual like and returns the resulting match.
func (e *testEnv) pendingMatch(t *testing.T, applicant, member *domain.User) *dto.MatchResponse {
	t.Helper()
	e.like(t, applicant, member)
	resp := e.like(t, member, applicant)
	require.True(t, resp.MatchCreated)
	require.NotNil(t, resp.Match)
	return resp.Match
}

func (e *testEnv) reloadApplicant(t *testing.T, id uint) *domain.ApplicantProfile {
	t.Helper()
	p, found, err := e.applicants.FindByID(id)
	require.NoError(t, err)
	require.True(t, found)
	return p
}

func (e *testEnv) reloadMatch(t *testing.T, id uint) *domain.Match {
	t.Helper()
	m, found, err := e.matches.FindByID(id)
	require.NoError(t, err)
	require.True(t, found)
	return m
}
