package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/account"
	"github.com/bidhaus/goapi/service/cache"
)

type accountUseCaseImpl struct {
	repo  account.Repo
	cache cache.Service
}

func NewAccountUseCase(repo account.Repo, cacheService cache.Service) account.Usecase {
	return &accountUseCaseImpl{
		repo:  repo,
		cache: cacheService,
	}
}

func (im *accountUseCaseImpl) Signup(c ctx.Ctx, email domain.UserId, alias, password string) (*account.Info, error) {
	if email.IsEmpty() || len(password) < 8 {
		return nil, domain.ErrBadParamInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.WithField("err", err).Error("bcrypt.GenerateFromPassword failed")
		return nil, err
	}

	now := time.Now()
	a := &account.Account{
		Email:        email.ToLower(),
		Alias:        alias,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// a unique index on email turns the duplicate signup into ErrConflict
	if err := im.repo.Insert(c, a); err != nil {
		if err != domain.ErrConflict {
			c.WithFields(log.Fields{
				"err":   err,
				"email": email,
			}).Error("repo.Insert failed")
		}
		return nil, err
	}

	return a.ToInfo(), nil
}

func (im *accountUseCaseImpl) Login(c ctx.Ctx, email domain.UserId, password string) (*account.Info, error) {
	a, err := im.repo.Get(c, email)
	if err == domain.ErrNotFound {
		return nil, domain.ErrInvalidCredentials
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"email": email,
		}).Error("repo.Get failed")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return a.ToInfo(), nil
}

func (im *accountUseCaseImpl) Get(c ctx.Ctx, email domain.UserId) (*account.Info, error) {
	info := &account.Info{}
	err := im.cache.GetByFunc(c, email.ToLowerStr(), info, func() (interface{}, error) {
		a, err := im.repo.Get(c, email)
		if err != nil {
			return nil, err
		}
		return a.ToInfo(), nil
	})
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":   err,
				"email": email,
			}).Error("cache.GetByFunc failed")
		}
		return nil, err
	}
	return info, nil
}

func (im *accountUseCaseImpl) Update(c ctx.Ctx, email domain.UserId, updater *account.Updater) (*account.Info, error) {
	updater.UpdatedAt = time.Now()
	if err := im.repo.Update(c, email, updater); err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":   err,
				"email": email,
			}).Error("repo.Update failed")
		}
		return nil, err
	}

	if err := im.cache.Del(c, email.ToLowerStr()); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"email": email,
		}).Warn("cache.Del failed")
	}

	a, err := im.repo.Get(c, email)
	if err != nil {
		return nil, err
	}
	return a.ToInfo(), nil
}
