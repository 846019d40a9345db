package item

import (
	"time"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/bid"
)

// Item is an auction listing stored in database. Bids are kept in their
// own collection, an item only records the outcome once it closes.
type Item struct {
	Id          string        `json:"id" bson:"id"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	StartingBid int64         `json:"startingBid" bson:"startingBid"`
	Seller      domain.UserId `json:"seller" bson:"seller"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	ClosesAt    time.Time     `json:"closesAt" bson:"closesAt"`
	Closed      bool          `json:"closed" bson:"closed"`
	WinningBid  *string       `json:"winningBid,omitempty" bson:"winningBid,omitempty"`
	Viewed      int64         `json:"viewed" bson:"viewed"`
}

// IsOnSale reports whether the item still accepts bids at time now
func (i *Item) IsOnSale(now time.Time) bool {
	return !i.Closed && now.Before(i.ClosesAt)
}

// Info is item struct returns to client, enriched with pricing data
type Info struct {
	Item
	CurrentPrice        int64    `json:"currentPrice"`
	CurrentPriceDisplay string   `json:"currentPriceDisplay"`
	MinimumBid          int64    `json:"minimumBid"`
	LeadingBid          *bid.Bid `json:"leadingBid,omitempty"`
	BidCount            int      `json:"bidCount"`
}

// Patchable carries the mutable fields of an item. The deadline is not
// here on purpose, closesAt is fixed at creation.
type Patchable struct {
	Title       *string `json:"title" bson:"title"`
	Description *string `json:"description" bson:"description"`
	Closed      *bool   `json:"-" bson:"closed"`
	WinningBid  *string `json:"-" bson:"winningBid"`
}

type FindAllOptions struct {
	SortBy         *string
	SortDir        *domain.SortDir
	Offset         *int32
	Limit          *int32
	Seller         *domain.UserId
	Closed         *bool
	ClosesAtBefore *time.Time
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

func WithSeller(seller domain.UserId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Seller = &seller
		return nil
	}
}

func WithClosed(closed bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Closed = &closed
		return nil
	}
}

func WithClosesAtBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ClosesAtBefore = &t
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Item, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	FindOne(c ctx.Ctx, id string) (*Item, error)
	Create(c ctx.Ctx, item *Item) error
	Update(c ctx.Ctx, id string, patchable *Patchable) error
	Delete(c ctx.Ctx, id string) error
	// MarkClosed sets closed and the winning bid only when the item is
	// not closed yet. Returns domain.ErrItemAlreadyClosed when another
	// worker won the race.
	MarkClosed(c ctx.Ctx, id string, winningBid *string) error
	IncreaseViewed(c ctx.Ctx, id string) error
}

type Usecase interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Info, error)
	Get(c ctx.Ctx, id string) (*Info, error)
	Create(c ctx.Ctx, seller domain.UserId, title, description string, startingBid int64, closesAt time.Time) (*Item, error)
	Update(c ctx.Ctx, operator domain.UserId, id string, patchable *Patchable) error
	Delete(c ctx.Ctx, operator domain.UserId, id string) error
	// CurrentPrice returns the leading bid amount, or the starting bid
	// when no bid has been placed yet
	CurrentPrice(c ctx.Ctx, id string) (int64, error)
	// LeadingBid returns the bid currently winning the auction, nil when
	// there is none
	LeadingBid(c ctx.Ctx, id string) (*bid.Bid, error)
}
