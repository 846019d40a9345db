package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/bid"
	"github.com/bidhaus/goapi/domain/item"
)

type BidUseCaseCfg struct {
	BidRepo      bid.Repo
	ItemRepo     item.Repo
	MinIncrement int64
}

type bidUseCaseImpl struct {
	bidRepo      bid.Repo
	itemRepo     item.Repo
	minIncrement int64
}

func NewBidUseCase(cfg *BidUseCaseCfg) bid.Usecase {
	minIncrement := cfg.MinIncrement
	if minIncrement <= 0 {
		minIncrement = 1
	}
	return &bidUseCaseImpl{
		bidRepo:      cfg.BidRepo,
		itemRepo:     cfg.ItemRepo,
		minIncrement: minIncrement,
	}
}

func (im *bidUseCaseImpl) FindAll(c ctx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	return im.bidRepo.FindAll(c, opts...)
}

// PlaceBid checks rejections in a fixed order so a late and low bid is
// always reported as late, not low.
func (im *bidUseCaseImpl) PlaceBid(c ctx.Ctx, itemId string, bidder domain.UserId, amount int64) (*bid.Bid, error) {
	it, err := im.itemRepo.FindOne(c, itemId)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":    err,
				"itemId": itemId,
			}).Error("itemRepo.FindOne failed")
		}
		return nil, err
	}

	now := time.Now()
	if !it.IsOnSale(now) {
		return nil, domain.ErrItemNotOnSale
	}

	price := it.StartingBid
	leading, err := im.bidRepo.FindLeading(c, itemId, it.ClosesAt)
	if err == nil {
		price = leading.Amount
	} else if err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("bidRepo.FindLeading failed")
		return nil, err
	}

	if minimum := price + im.minIncrement; amount < minimum {
		return nil, &domain.BidTooLowError{Minimum: minimum}
	}

	b := &bid.Bid{
		Id:        uuid.New().String(),
		ItemId:    itemId,
		Bidder:    bidder.ToLower(),
		Amount:    amount,
		CreatedAt: now,
	}
	if err := im.bidRepo.Create(c, b); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
			"bidder": bidder,
		}).Error("bidRepo.Create failed")
		return nil, err
	}

	return b, nil
}
