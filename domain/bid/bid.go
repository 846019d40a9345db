package bid

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
)

// Bid is a single offer on an item. Bids are append only, amendments are
// expressed by placing a higher bid.
type Bid struct {
	Id        string        `json:"id" bson:"id"`
	ItemId    string        `json:"itemId" bson:"itemId"`
	Bidder    domain.UserId `json:"bidder" bson:"bidder"`
	Amount    int64         `json:"amount" bson:"amount"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	SortBy          *string
	SortDir         *domain.SortDir
	Offset          *int32
	Limit           *int32
	ItemId          *string
	Bidder          *domain.UserId
	CreatedAtBefore *time.Time
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

func WithItemId(itemId string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ItemId = &itemId
		return nil
	}
}

func WithBidder(bidder domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Bidder = &bidder
		return nil
	}
}

func WithCreatedAtBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CreatedAtBefore = &t
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	FindOne(c ctx.Ctx, id string) (*Bid, error)
	// FindLeading returns the highest bid placed on the item strictly
	// before the cutoff, breaking ties by earliest placement. Returns
	// domain.ErrNotFound when the item has no qualifying bid.
	FindLeading(c ctx.Ctx, itemId string, cutoff time.Time) (*Bid, error)
	Create(c ctx.Ctx, bid *Bid) error
}

type Usecase interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	// PlaceBid validates and persists a bid. Rejections are checked in
	// order, closed items first, then the price floor.
	PlaceBid(c ctx.Ctx, itemId string, bidder domain.UserId, amount int64) (*Bid, error)
}
