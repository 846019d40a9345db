package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidhaus/goapi/base/ctx"
	mMetrics "github.com/bidhaus/goapi/base/metrics/mocks"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/domain/bid"
	mBid "github.com/bidhaus/goapi/domain/bid/mocks"
	"github.com/bidhaus/goapi/domain/item"
	mItem "github.com/bidhaus/goapi/domain/item/mocks"
	"github.com/bidhaus/goapi/domain/notification"
	mNotification "github.com/bidhaus/goapi/domain/notification/mocks"
	mScheduler "github.com/bidhaus/goapi/service/scheduler/mocks"
)

type testSuite struct {
	suite.Suite

	itemRepo     *mItem.Repo
	bidRepo      *mBid.Repo
	notification *mNotification.Usecase
	scheduler    *mScheduler.Service
	met          *mMetrics.Service

	im auction.Usecase
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.itemRepo = &mItem.Repo{}
	s.bidRepo = &mBid.Repo{}
	s.notification = &mNotification.Usecase{}
	s.scheduler = &mScheduler.Service{}
	s.met = &mMetrics.Service{}
	s.im = NewAuctionUseCase(&AuctionUseCaseCfg{
		ItemRepo:     s.itemRepo,
		BidRepo:      s.bidRepo,
		Notification: s.notification,
		Scheduler:    s.scheduler,
		Metrics:      s.met,
		Grace:        time.Second,
		SweepWorkers: 2,
	})
}

func (s *testSuite) TearDownTest() {
	s.itemRepo.AssertExpectations(s.T())
	s.bidRepo.AssertExpectations(s.T())
	s.notification.AssertExpectations(s.T())
	s.scheduler.AssertExpectations(s.T())
	s.met.AssertExpectations(s.T())
}

func (s *testSuite) dueItem(id string) *item.Item {
	return &item.Item{
		Id:       id,
		Title:    "vintage camera",
		Seller:   "seller@example.com",
		ClosesAt: time.Now().Add(-time.Minute),
	}
}

func (s *testSuite) TestCloseItemWithWinner() {
	it := s.dueItem("item-1")
	winner := &bid.Bid{Id: "bid-9", ItemId: it.Id, Bidder: "bidder@example.com", Amount: 20000}

	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(winner, nil).Once()
	s.notification.On("Notify", mock.Anything, winner.Bidder, notification.KindWon, it.Id,
		`You won "vintage camera" with a bid of 20000`).Return(nil).Once()
	s.notification.On("Notify", mock.Anything, it.Seller, notification.KindSold, it.Id,
		`Your auction "vintage camera" sold for 20000`).Return(nil).Once()
	s.itemRepo.On("MarkClosed", mock.Anything, it.Id, &winner.Id).Return(nil).Once()
	s.met.On("BumpSum", "auction.closed", float64(1)).Return().Once()

	res, err := s.im.CloseItem(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(auction.OutcomeClosed, res.Outcome)
	s.Equal(winner, res.WinningBid)
}

func (s *testSuite) TestCloseItemWithoutBids() {
	it := s.dueItem("item-1")

	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()
	s.notification.On("Notify", mock.Anything, it.Seller, notification.KindExpired, it.Id,
		`Your auction "vintage camera" closed without bids`).Return(nil).Once()
	s.itemRepo.On("MarkClosed", mock.Anything, it.Id, (*string)(nil)).Return(nil).Once()
	s.met.On("BumpSum", "auction.closed", float64(1)).Return().Once()

	res, err := s.im.CloseItem(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(auction.OutcomeClosed, res.Outcome)
	s.Nil(res.WinningBid)
}

// closing is idempotent, the second close neither notifies nor touches
// the item again, and it reports the committed winning bid
func (s *testSuite) TestCloseItemAlreadyClosed() {
	it := s.dueItem("item-1")
	winner := &bid.Bid{Id: "bid-9", ItemId: it.Id, Bidder: "bidder@example.com", Amount: 20000}
	it.Closed = true
	it.WinningBid = &winner.Id

	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindOne", mock.Anything, winner.Id).Return(winner, nil).Once()

	res, err := s.im.CloseItem(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(auction.OutcomeAlreadyClosed, res.Outcome)
	s.Equal(winner, res.WinningBid)
}

func (s *testSuite) TestCloseItemAlreadyClosedWithoutWinner() {
	it := s.dueItem("item-1")
	it.Closed = true

	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	res, err := s.im.CloseItem(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(auction.OutcomeAlreadyClosed, res.Outcome)
	s.Nil(res.WinningBid)
}

// two processes can race on the same deadline, the loser observes the
// CAS failure, re-reads the item and reports the committed outcome
func (s *testSuite) TestCloseItemLostRace() {
	it := s.dueItem("item-1")
	winner := &bid.Bid{Id: "bid-9", ItemId: it.Id, Bidder: "bidder@example.com", Amount: 20000}
	closed := *it
	closed.Closed = true
	closed.WinningBid = &winner.Id

	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()
	s.notification.On("Notify", mock.Anything, it.Seller, notification.KindExpired, it.Id, mock.AnythingOfType("string")).Return(nil).Once()
	s.itemRepo.On("MarkClosed", mock.Anything, it.Id, (*string)(nil)).Return(domain.ErrItemAlreadyClosed).Once()
	s.met.On("BumpSum", "auction.close.lost_race", float64(1)).Return().Once()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(&closed, nil).Once()
	s.bidRepo.On("FindOne", mock.Anything, winner.Id).Return(winner, nil).Once()

	res, err := s.im.CloseItem(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(auction.OutcomeAlreadyClosed, res.Outcome)
	s.Equal(winner, res.WinningBid)
}

// two concurrent closers of the same unbid item produce exactly one
// not-sold notification, the second caller shares the first execution
func (s *testSuite) TestCloseItemConcurrentClosersNotifyOnce() {
	it := s.dueItem("item-1")

	entered := make(chan struct{})
	release := make(chan struct{})
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()
	s.notification.On("Notify", mock.Anything, it.Seller, notification.KindExpired, it.Id, mock.AnythingOfType("string")).Return(nil).Once()
	s.itemRepo.On("MarkClosed", mock.Anything, it.Id, (*string)(nil)).Return(nil).Once()
	s.met.On("BumpSum", "auction.closed", float64(1)).Return().Once()

	type outcome struct {
		res *auction.CloseResult
		err error
	}
	results := make(chan outcome, 2)
	go func() {
		res, err := s.im.CloseItem(ctx.Background(), it.Id)
		results <- outcome{res, err}
	}()
	<-entered
	go func() {
		res, err := s.im.CloseItem(ctx.Background(), it.Id)
		results <- outcome{res, err}
	}()
	// give the second caller time to join the in flight close before the
	// first one proceeds
	time.Sleep(20 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		o := <-results
		s.Nil(o.err)
		s.Equal(auction.OutcomeClosed, o.res.Outcome)
		s.Nil(o.res.WinningBid)
	}
	s.notification.AssertNumberOfCalls(s.T(), "Notify", 1)
}

func (s *testSuite) TestCloseItemNotificationFailureStillCloses() {
	it := s.dueItem("item-1")
	winner := &bid.Bid{Id: "bid-9", ItemId: it.Id, Bidder: "bidder@example.com", Amount: 20000}

	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(winner, nil).Once()
	s.notification.On("Notify", mock.Anything, winner.Bidder, notification.KindWon, it.Id, mock.AnythingOfType("string")).
		Return(domain.ErrInternalServerError).Once()
	s.notification.On("Notify", mock.Anything, it.Seller, notification.KindSold, it.Id, mock.AnythingOfType("string")).
		Return(domain.ErrInternalServerError).Once()
	s.itemRepo.On("MarkClosed", mock.Anything, it.Id, &winner.Id).Return(nil).Once()
	s.met.On("BumpSum", "auction.closed", float64(1)).Return().Once()

	res, err := s.im.CloseItem(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(auction.OutcomeClosed, res.Outcome)
}

// one broken item cannot stall the sweep, the other due items still get
// closed and the failure is reported
func (s *testSuite) TestRunSweepIsolatesFailures() {
	good1 := s.dueItem("item-1")
	bad := s.dueItem("item-2")
	good2 := s.dueItem("item-3")

	s.itemRepo.On("FindAll", mock.Anything,
		mock.AnythingOfType("item.FindAllOptionsFunc"),
		mock.AnythingOfType("item.FindAllOptionsFunc")).
		Return([]*item.Item{good1, bad, good2}, nil).Once()

	for _, it := range []*item.Item{good1, good2} {
		s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
		s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()
		s.notification.On("Notify", mock.Anything, it.Seller, notification.KindExpired, it.Id, mock.AnythingOfType("string")).Return(nil).Once()
		s.itemRepo.On("MarkClosed", mock.Anything, it.Id, (*string)(nil)).Return(nil).Once()
	}
	s.itemRepo.On("FindOne", mock.Anything, bad.Id).Return(nil, domain.ErrInternalServerError).Once()

	s.met.On("BumpSum", "auction.closed", float64(1)).Return().Times(2)
	s.met.On("BumpSum", "auction.sweep.scanned", float64(3)).Return().Once()
	s.met.On("BumpSum", "auction.sweep.closed", float64(2)).Return().Once()
	s.met.On("BumpSum", "auction.sweep.failed", float64(1)).Return().Once()

	res, err := s.im.RunSweep(ctx.Background(), 2*time.Second)
	s.Nil(err)
	s.Equal(3, res.Scanned)
	s.Equal(2, res.Closed)
	s.Equal([]string{bad.Id}, res.Failed)
}

func (s *testSuite) TestRunSweepNothingDue() {
	s.itemRepo.On("FindAll", mock.Anything,
		mock.AnythingOfType("item.FindAllOptionsFunc"),
		mock.AnythingOfType("item.FindAllOptionsFunc")).
		Return([]*item.Item{}, nil).Once()

	res, err := s.im.RunSweep(ctx.Background(), 2*time.Second)
	s.Nil(err)
	s.Equal(0, res.Scanned)
	s.Equal(0, res.Closed)
	s.Empty(res.Failed)
}

func (s *testSuite) TestScheduleClosing() {
	closesAt := time.Now().Add(time.Hour)
	s.scheduler.On("ScheduleOneShot", mock.Anything, "close-item-item-1", closesAt.Add(time.Second),
		mock.AnythingOfType("scheduler.Task")).Return().Once()

	err := s.im.ScheduleClosing(ctx.Background(), "item-1", closesAt)
	s.Nil(err)
}

func (s *testSuite) TestCancelClosing() {
	s.scheduler.On("Cancel", mock.Anything, "close-item-item-1").Return().Once()

	err := s.im.CancelClosing(ctx.Background(), "item-1")
	s.Nil(err)
}
