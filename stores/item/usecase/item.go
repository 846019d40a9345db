package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/base/priceformat"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/bid"
	"github.com/bidhaus/goapi/domain/item"
	"github.com/bidhaus/goapi/service/cache"
)

type ItemUseCaseCfg struct {
	ItemRepo  item.Repo
	BidRepo   bid.Repo
	Formatter priceformat.Formatter
	Auction   auction.Usecase
	// InfoCache optionally caches the pricing enriched item info for a
	// short ttl to absorb read heavy listings
	InfoCache    cache.Service
	MinIncrement int64
}

type itemUseCaseImpl struct {
	itemRepo     item.Repo
	bidRepo      bid.Repo
	formatter    priceformat.Formatter
	auction      auction.Usecase
	infoCache    cache.Service
	minIncrement int64
}

func NewItemUseCase(cfg *ItemUseCaseCfg) item.Usecase {
	minIncrement := cfg.MinIncrement
	if minIncrement <= 0 {
		minIncrement = 1
	}
	return &itemUseCaseImpl{
		itemRepo:     cfg.ItemRepo,
		bidRepo:      cfg.BidRepo,
		formatter:    cfg.Formatter,
		auction:      cfg.Auction,
		infoCache:    cfg.InfoCache,
		minIncrement: minIncrement,
	}
}

func (im *itemUseCaseImpl) FindAll(c ctx.Ctx, opts ...item.FindAllOptionsFunc) ([]*item.Info, error) {
	items, err := im.itemRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("itemRepo.FindAll failed")
		return nil, err
	}

	infos := make([]*item.Info, 0, len(items))
	for _, it := range items {
		info, err := im.toInfo(c, it)
		if err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  it.Id,
			}).Error("toInfo failed")
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (im *itemUseCaseImpl) Get(c ctx.Ctx, id string) (*item.Info, error) {
	it, err := im.itemRepo.FindOne(c, id)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("itemRepo.FindOne failed")
		}
		return nil, err
	}

	if err := im.itemRepo.IncreaseViewed(c, id); err != nil {
		// the view counter is best effort, a failed bump must not hide
		// the item
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Warn("itemRepo.IncreaseViewed failed")
	}

	return im.toInfo(c, it)
}

func (im *itemUseCaseImpl) Create(c ctx.Ctx, seller domain.UserId, title, description string, startingBid int64, closesAt time.Time) (*item.Item, error) {
	if title == "" || startingBid < 0 || !closesAt.After(time.Now()) {
		return nil, domain.ErrBadParamInput
	}

	it := &item.Item{
		Id:          uuid.New().String(),
		Title:       title,
		Description: description,
		StartingBid: startingBid,
		Seller:      seller.ToLower(),
		CreatedAt:   time.Now(),
		ClosesAt:    closesAt,
	}

	if err := im.itemRepo.Create(c, it); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"title": title,
		}).Error("itemRepo.Create failed")
		return nil, err
	}

	if err := im.auction.ScheduleClosing(c, it.Id, it.ClosesAt); err != nil {
		// the periodic sweep closes the item if scheduling failed
		c.WithFields(log.Fields{
			"err": err,
			"id":  it.Id,
		}).Warn("auction.ScheduleClosing failed")
	}

	return it, nil
}

func (im *itemUseCaseImpl) Update(c ctx.Ctx, operator domain.UserId, id string, patchable *item.Patchable) error {
	it, err := im.itemRepo.FindOne(c, id)
	if err != nil {
		return err
	}

	if !it.Seller.Equals(operator) {
		return domain.ErrBadParamInput
	}
	if it.Closed {
		return domain.ErrItemNotOnSale
	}

	if err := im.itemRepo.Update(c, id, patchable); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("itemRepo.Update failed")
		return err
	}

	im.dropCachedInfo(c, id)

	return nil
}

func (im *itemUseCaseImpl) Delete(c ctx.Ctx, operator domain.UserId, id string) error {
	it, err := im.itemRepo.FindOne(c, id)
	if err != nil {
		return err
	}

	if !it.Seller.Equals(operator) {
		return domain.ErrBadParamInput
	}
	if it.Closed {
		return domain.ErrItemNotOnSale
	}

	cnt, err := im.bidRepo.Count(c, bid.WithItemId(id))
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("bidRepo.Count failed")
		return err
	}
	if cnt > 0 {
		return domain.ErrItemHasBids
	}

	if err := im.itemRepo.Delete(c, id); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("itemRepo.Delete failed")
		return err
	}

	if err := im.auction.CancelClosing(c, id); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Warn("auction.CancelClosing failed")
	}

	im.dropCachedInfo(c, id)

	return nil
}

func (im *itemUseCaseImpl) dropCachedInfo(c ctx.Ctx, id string) {
	if im.infoCache == nil {
		return
	}
	if err := im.infoCache.Del(c, id); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Warn("infoCache.Del failed")
	}
}

func (im *itemUseCaseImpl) CurrentPrice(c ctx.Ctx, id string) (int64, error) {
	it, err := im.itemRepo.FindOne(c, id)
	if err != nil {
		return 0, err
	}
	return im.currentPrice(c, it)
}

func (im *itemUseCaseImpl) LeadingBid(c ctx.Ctx, id string) (*bid.Bid, error) {
	it, err := im.itemRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	return im.leadingBid(c, it)
}

// leadingBid only considers bids placed strictly before the deadline, a
// bid racing past the close never leads
func (im *itemUseCaseImpl) leadingBid(c ctx.Ctx, it *item.Item) (*bid.Bid, error) {
	leading, err := im.bidRepo.FindLeading(c, it.Id, it.ClosesAt)
	if err == domain.ErrNotFound {
		return nil, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  it.Id,
		}).Error("bidRepo.FindLeading failed")
		return nil, err
	}
	return leading, nil
}

func (im *itemUseCaseImpl) currentPrice(c ctx.Ctx, it *item.Item) (int64, error) {
	leading, err := im.leadingBid(c, it)
	if err != nil {
		return 0, err
	}
	if leading == nil {
		return it.StartingBid, nil
	}
	return leading.Amount, nil
}

func (im *itemUseCaseImpl) toInfo(c ctx.Ctx, it *item.Item) (*item.Info, error) {
	if im.infoCache == nil {
		return im.buildInfo(c, it)
	}

	info := &item.Info{}
	err := im.infoCache.GetByFunc(c, it.Id, info, func() (interface{}, error) {
		return im.buildInfo(c, it)
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (im *itemUseCaseImpl) buildInfo(c ctx.Ctx, it *item.Item) (*item.Info, error) {
	leading, err := im.leadingBid(c, it)
	if err != nil {
		return nil, err
	}

	price := it.StartingBid
	if leading != nil {
		price = leading.Amount
	}

	cnt, err := im.bidRepo.Count(c, bid.WithItemId(it.Id))
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  it.Id,
		}).Error("bidRepo.Count failed")
		return nil, err
	}

	return &item.Info{
		Item:                *it,
		CurrentPrice:        price,
		CurrentPriceDisplay: im.formatter.Format(price),
		MinimumBid:          price + im.minIncrement,
		LeadingBid:          leading,
		BidCount:            cnt,
	}, nil
}
