package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/ptr"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/account"
	mAccount "github.com/bidhaus/goapi/domain/account/mocks"
	"github.com/bidhaus/goapi/domain/keys"
	"github.com/bidhaus/goapi/service/cache"
	"github.com/bidhaus/goapi/service/cache/provider/primitive"
)

type testSuite struct {
	suite.Suite

	repo *mAccount.Repo

	im account.Usecase
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.repo = &mAccount.Repo{}
	s.im = NewAccountUseCase(s.repo, cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   keys.PfxAccount,
		Cache: primitive.NewPrimitive("account", 1),
	}))
}

func (s *testSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *testSuite) TestSignup() {
	s.repo.On("Insert", mock.Anything, mock.AnythingOfType("*account.Account")).
		Run(func(args mock.Arguments) {
			a := args.Get(1).(*account.Account)
			s.Equal(domain.UserId("alice@example.com"), a.Email)
			s.Equal("alice", a.Alias)
			s.Nil(bcrypt.CompareHashAndPassword(a.PasswordHash, []byte("correct horse")))
		}).
		Return(nil).Once()

	info, err := s.im.Signup(ctx.Background(), "Alice@Example.com", "alice", "correct horse")
	s.Nil(err)
	s.Equal(domain.UserId("alice@example.com"), info.Email)
	s.Equal("alice", info.Alias)
}

func (s *testSuite) TestSignupShortPassword() {
	_, err := s.im.Signup(ctx.Background(), "alice@example.com", "alice", "short")
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestSignupDuplicateEmail() {
	s.repo.On("Insert", mock.Anything, mock.AnythingOfType("*account.Account")).
		Return(domain.ErrConflict).Once()

	_, err := s.im.Signup(ctx.Background(), "alice@example.com", "alice", "correct horse")
	s.Equal(domain.ErrConflict, err)
}

func (s *testSuite) TestLogin() {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	s.Require().Nil(err)
	a := &account.Account{Email: "alice@example.com", Alias: "alice", PasswordHash: hash}
	s.repo.On("Get", mock.Anything, domain.UserId("alice@example.com")).Return(a, nil).Once()

	info, err := s.im.Login(ctx.Background(), "alice@example.com", "correct horse")
	s.Nil(err)
	s.Equal(domain.UserId("alice@example.com"), info.Email)
}

func (s *testSuite) TestLoginWrongPassword() {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	s.Require().Nil(err)
	a := &account.Account{Email: "alice@example.com", PasswordHash: hash}
	s.repo.On("Get", mock.Anything, domain.UserId("alice@example.com")).Return(a, nil).Once()

	_, err = s.im.Login(ctx.Background(), "alice@example.com", "wrong horse")
	s.Equal(domain.ErrInvalidCredentials, err)
}

// an unknown email reads the same as a wrong password
func (s *testSuite) TestLoginUnknownEmail() {
	s.repo.On("Get", mock.Anything, domain.UserId("nobody@example.com")).Return(nil, domain.ErrNotFound).Once()

	_, err := s.im.Login(ctx.Background(), "nobody@example.com", "correct horse")
	s.Equal(domain.ErrInvalidCredentials, err)
}

func (s *testSuite) TestGetCachesProfile() {
	a := &account.Account{Email: "alice@example.com", Alias: "alice"}
	s.repo.On("Get", mock.Anything, domain.UserId("alice@example.com")).Return(a, nil).Once()

	c := ctx.Background()
	info, err := s.im.Get(c, "alice@example.com")
	s.Nil(err)
	s.Equal("alice", info.Alias)

	// second read is served from cache, the repo is only hit once
	info, err = s.im.Get(c, "alice@example.com")
	s.Nil(err)
	s.Equal("alice", info.Alias)
}

func (s *testSuite) TestUpdateInvalidatesCache() {
	c := ctx.Background()
	a := &account.Account{Email: "alice@example.com", Alias: "alice"}
	s.repo.On("Get", mock.Anything, domain.UserId("alice@example.com")).Return(a, nil).Once()

	_, err := s.im.Get(c, "alice@example.com")
	s.Nil(err)

	updated := &account.Account{Email: "alice@example.com", Alias: "allie", UpdatedAt: time.Now()}
	s.repo.On("Update", mock.Anything, domain.UserId("alice@example.com"), mock.AnythingOfType("*account.Updater")).
		Run(func(args mock.Arguments) {
			u := args.Get(2).(*account.Updater)
			s.Equal("allie", *u.Alias)
			s.False(u.UpdatedAt.IsZero())
		}).
		Return(nil).Once()
	s.repo.On("Get", mock.Anything, domain.UserId("alice@example.com")).Return(updated, nil).Once()

	info, err := s.im.Update(c, "alice@example.com", &account.Updater{Alias: ptr.String("allie")})
	s.Nil(err)
	s.Equal("allie", info.Alias)

	// the stale cached profile is gone
	s.repo.On("Get", mock.Anything, domain.UserId("alice@example.com")).Return(updated, nil).Once()
	info, err = s.im.Get(c, "alice@example.com")
	s.Nil(err)
	s.Equal("allie", info.Alias)
}
