package account

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
)

// Account is user's account stored in database
type Account struct {
	Email        domain.UserId `bson:"email"`
	Alias        string        `bson:"alias"`
	PasswordHash []byte        `bson:"passwordHash"`
	CreatedAt    time.Time     `bson:"createdAt,omitempty"`
	UpdatedAt    time.Time     `bson:"updatedAt,omitempty"`
}

func unixMilli(t time.Time) int64 {
	return t.Unix()*1e3 + int64(t.Nanosecond())/1e6
}

func (a *Account) ToInfo() *Info {
	return &Info{
		Email:       a.Email,
		Alias:       a.Alias,
		CreatedAtMs: unixMilli(a.CreatedAt),
		UpdatedAtMs: unixMilli(a.UpdatedAt),
	}
}

// Info is account struct returns to client which never carries the
// password hash
type Info struct {
	Email       domain.UserId `json:"email"`
	Alias       string        `json:"alias"`
	CreatedAtMs int64         `json:"createdAtMs,omitempty"`
	UpdatedAtMs int64         `json:"updatedAtMs,omitempty"`
}

// Updater to update account info
type Updater struct {
	Alias        *string   `json:"alias" bson:"alias"`
	PasswordHash []byte    `json:"-" bson:"passwordHash"`
	UpdatedAt    time.Time `json:"-" bson:"updatedAt,omitempty"`
}

type Repo interface {
	Get(c ctx.Ctx, email domain.UserId) (*Account, error)
	Insert(c ctx.Ctx, account *Account) error
	Update(c ctx.Ctx, email domain.UserId, updater *Updater) error
}

type Usecase interface {
	// Signup creates the account with a hashed password. Returns
	// domain.ErrConflict when the email is taken.
	Signup(c ctx.Ctx, email domain.UserId, alias, password string) (*Info, error)
	// Login verifies the password and returns the account info, or
	// domain.ErrInvalidCredentials
	Login(c ctx.Ctx, email domain.UserId, password string) (*Info, error)
	Get(c ctx.Ctx, email domain.UserId) (*Info, error)
	Update(c ctx.Ctx, email domain.UserId, updater *Updater) (*Info, error)
}
