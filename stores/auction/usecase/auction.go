package usecase

import (
	"fmt"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/sync/singleflight"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/base/metrics"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/bid"
	"github.com/bidhaus/goapi/domain/item"
	"github.com/bidhaus/goapi/domain/notification"
	"github.com/bidhaus/goapi/service/scheduler"
)

type AuctionUseCaseCfg struct {
	ItemRepo     item.Repo
	BidRepo      bid.Repo
	Notification notification.Usecase
	Scheduler    scheduler.Service
	Metrics      metrics.Service
	// Grace delays the one shot close past the deadline so a bid placed
	// at the boundary is settled before the winner is computed
	Grace time.Duration
	// SweepWorkers bounds the close fan out of one sweep pass
	SweepWorkers int
}

type auctionUseCaseImpl struct {
	itemRepo     item.Repo
	bidRepo      bid.Repo
	notification notification.Usecase
	scheduler    scheduler.Service
	met          metrics.Service
	grace        time.Duration
	sweepWorkers int
	closeGroup   singleflight.Group
}

func NewAuctionUseCase(cfg *AuctionUseCaseCfg) auction.Usecase {
	grace := cfg.Grace
	if grace <= 0 {
		grace = time.Second
	}
	sweepWorkers := cfg.SweepWorkers
	if sweepWorkers <= 0 {
		sweepWorkers = 8
	}
	return &auctionUseCaseImpl{
		itemRepo:     cfg.ItemRepo,
		bidRepo:      cfg.BidRepo,
		notification: cfg.Notification,
		scheduler:    cfg.Scheduler,
		met:          cfg.Metrics,
		grace:        grace,
		sweepWorkers: sweepWorkers,
	}
}

func closeJobId(itemId string) string {
	return fmt.Sprintf("close-item-%s", itemId)
}

// CloseItem funnels concurrent closers of the same item through one
// execution so an auction is resolved and notified at most once per
// process. The conditional update inside backstops racing processes.
func (im *auctionUseCaseImpl) CloseItem(c ctx.Ctx, itemId string) (*auction.CloseResult, error) {
	v, err, _ := im.closeGroup.Do(itemId, func() (interface{}, error) {
		return im.closeItem(c, itemId)
	})
	if err != nil {
		return nil, err
	}
	return v.(*auction.CloseResult), nil
}

func (im *auctionUseCaseImpl) closeItem(c ctx.Ctx, itemId string) (*auction.CloseResult, error) {
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

	if it.Closed {
		return im.closedResult(c, it)
	}

	winner, err := im.bidRepo.FindLeading(c, itemId, it.ClosesAt)
	if err == domain.ErrNotFound {
		winner = nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("bidRepo.FindLeading failed")
		return nil, err
	}

	// notifications are best effort, an undelivered message never keeps
	// an expired auction open
	im.notifyClosed(c, it, winner)

	var winningBidId *string
	if winner != nil {
		winningBidId = &winner.Id
	}

	if err := im.itemRepo.MarkClosed(c, itemId, winningBidId); err == domain.ErrItemAlreadyClosed {
		im.met.BumpSum("auction.close.lost_race", 1)
		// another process committed first, surface its outcome
		it, err := im.itemRepo.FindOne(c, itemId)
		if err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"itemId": itemId,
			}).Error("itemRepo.FindOne failed")
			return nil, err
		}
		return im.closedResult(c, it)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"itemId": itemId,
		}).Error("itemRepo.MarkClosed failed")
		return nil, err
	}

	im.met.BumpSum("auction.closed", 1)
	c.WithFields(log.Fields{
		"itemId":    itemId,
		"hasWinner": winner != nil,
	}).Info("auction closed")

	return &auction.CloseResult{
		ItemId:     itemId,
		Outcome:    auction.OutcomeClosed,
		WinningBid: winner,
	}, nil
}

// closedResult rebuilds the outcome of an item some earlier close already
// committed, so a repeated close reports the same winning bid.
func (im *auctionUseCaseImpl) closedResult(c ctx.Ctx, it *item.Item) (*auction.CloseResult, error) {
	res := &auction.CloseResult{
		ItemId:  it.Id,
		Outcome: auction.OutcomeAlreadyClosed,
	}
	if it.WinningBid == nil {
		return res, nil
	}

	winner, err := im.bidRepo.FindOne(c, *it.WinningBid)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"itemId": it.Id,
			"bidId":  *it.WinningBid,
		}).Error("bidRepo.FindOne failed")
		return nil, err
	}
	res.WinningBid = winner
	return res, nil
}

func (im *auctionUseCaseImpl) notifyClosed(c ctx.Ctx, it *item.Item, winner *bid.Bid) {
	if winner == nil {
		msg := fmt.Sprintf("Your auction %q closed without bids", it.Title)
		if err := im.notification.Notify(c, it.Seller, notification.KindExpired, it.Id, msg); err != nil {
			c.WithFields(log.Fields{
				"err":    err,
				"itemId": it.Id,
			}).Warn("notify seller failed")
		}
		return
	}

	wonMsg := fmt.Sprintf("You won %q with a bid of %d", it.Title, winner.Amount)
	if err := im.notification.Notify(c, winner.Bidder, notification.KindWon, it.Id, wonMsg); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"itemId": it.Id,
		}).Warn("notify winner failed")
	}

	soldMsg := fmt.Sprintf("Your auction %q sold for %d", it.Title, winner.Amount)
	if err := im.notification.Notify(c, it.Seller, notification.KindSold, it.Id, soldMsg); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"itemId": it.Id,
		}).Warn("notify seller failed")
	}
}

func (im *auctionUseCaseImpl) RunSweep(c ctx.Ctx, lookahead time.Duration) (*auction.SweepResult, error) {
	due, err := im.itemRepo.FindAll(c,
		item.WithClosed(false),
		item.WithClosesAtBefore(time.Now().Add(lookahead)),
	)
	if err != nil {
		c.WithField("err", err).Error("itemRepo.FindAll failed")
		return nil, err
	}

	res := &auction.SweepResult{Scanned: len(due)}
	if len(due) == 0 {
		return res, nil
	}

	b := goroutines.NewBatch(im.sweepWorkers, goroutines.WithBatchSize(len(due)))
	defer b.Close()
	for i := 0; i < len(due); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			closeRes, err := im.CloseItem(c, due[idx].Id)
			if err != nil {
				// isolate the failure, the rest of the sweep goes on
				c.WithFields(log.Fields{
					"err":    err,
					"itemId": due[idx].Id,
				}).Error("CloseItem failed")
				return due[idx].Id, err
			}
			return closeRes, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			res.Failed = append(res.Failed, ret.Value().(string))
			continue
		}
		if closeRes := ret.Value().(*auction.CloseResult); closeRes.Outcome == auction.OutcomeClosed {
			res.Closed++
		}
	}

	im.met.BumpSum("auction.sweep.scanned", float64(res.Scanned))
	im.met.BumpSum("auction.sweep.closed", float64(res.Closed))
	if len(res.Failed) > 0 {
		im.met.BumpSum("auction.sweep.failed", float64(len(res.Failed)))
	}

	return res, nil
}

func (im *auctionUseCaseImpl) ScheduleClosing(c ctx.Ctx, itemId string, closesAt time.Time) error {
	im.scheduler.ScheduleOneShot(c, closeJobId(itemId), closesAt.Add(im.grace), func(taskCtx ctx.Ctx) {
		if _, err := im.CloseItem(taskCtx, itemId); err != nil {
			taskCtx.WithFields(log.Fields{
				"err":    err,
				"itemId": itemId,
			}).Error("scheduled CloseItem failed")
		}
	})
	return nil
}

func (im *auctionUseCaseImpl) CancelClosing(c ctx.Ctx, itemId string) error {
	im.scheduler.Cancel(c, closeJobId(itemId))
	return nil
}
