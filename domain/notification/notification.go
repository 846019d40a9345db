package notification

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
)

type Kind string

const (
	// KindWon is sent to the winning bidder when an auction closes
	KindWon Kind = "won"
	// KindSold is sent to the seller when an auction closes with a winner
	KindSold Kind = "sold"
	// KindExpired is sent to the seller when an auction closes without bids
	KindExpired Kind = "expired"
)

type Notification struct {
	Id        string        `json:"id" bson:"id"`
	Recipient domain.UserId `json:"recipient" bson:"recipient"`
	Kind      Kind          `json:"kind" bson:"kind"`
	ItemId    string        `json:"itemId" bson:"itemId"`
	Message   string        `json:"message" bson:"message"`
	Read      bool          `json:"read" bson:"read"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	SortBy    *string
	SortDir   *domain.SortDir
	Offset    *int32
	Limit     *int32
	Recipient *domain.UserId
	Read      *bool
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithSort(sortBy string, sortDir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortBy
		options.SortDir = &sortDir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithRecipient(recipient domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Recipient = &recipient
		return nil
	}
}

func WithRead(read bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Read = &read
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Notification, error)
	Create(c ctx.Ctx, notification *Notification) error
	MarkRead(c ctx.Ctx, recipient domain.UserId, id string) error
}

type Usecase interface {
	FindAll(c ctx.Ctx, recipient domain.UserId, opts ...FindAllOptionsFunc) ([]*Notification, error)
	// Notify records a notification for the recipient
	Notify(c ctx.Ctx, recipient domain.UserId, kind Kind, itemId string, message string) error
	MarkRead(c ctx.Ctx, recipient domain.UserId, id string) error
}
