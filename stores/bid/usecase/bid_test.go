package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/bid"
	mBid "github.com/bidhaus/goapi/domain/bid/mocks"
	"github.com/bidhaus/goapi/domain/item"
	mItem "github.com/bidhaus/goapi/domain/item/mocks"
)

type testSuite struct {
	suite.Suite

	bidRepo  *mBid.Repo
	itemRepo *mItem.Repo

	im bid.Usecase
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.bidRepo = &mBid.Repo{}
	s.itemRepo = &mItem.Repo{}
	s.im = NewBidUseCase(&BidUseCaseCfg{
		BidRepo:      s.bidRepo,
		ItemRepo:     s.itemRepo,
		MinIncrement: 1,
	})
}

func (s *testSuite) TearDownTest() {
	s.bidRepo.AssertExpectations(s.T())
	s.itemRepo.AssertExpectations(s.T())
}

func (s *testSuite) openItem() *item.Item {
	return &item.Item{
		Id:          "item-1",
		Title:       "vintage camera",
		StartingBid: 100,
		Seller:      "seller@example.com",
		ClosesAt:    time.Now().Add(time.Hour),
	}
}

func (s *testSuite) TestPlaceBidItemNotFound() {
	s.itemRepo.On("FindOne", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()

	_, err := s.im.PlaceBid(ctx.Background(), "missing", "bidder@example.com", 500)
	s.Equal(domain.ErrNotFound, err)
}

func (s *testSuite) TestPlaceBidClosedItem() {
	it := s.openItem()
	it.Closed = true
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	_, err := s.im.PlaceBid(ctx.Background(), it.Id, "bidder@example.com", 500)
	s.Equal(domain.ErrItemNotOnSale, err)
}

func (s *testSuite) TestPlaceBidPastDeadline() {
	it := s.openItem()
	it.ClosesAt = time.Now().Add(-time.Minute)
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	_, err := s.im.PlaceBid(ctx.Background(), it.Id, "bidder@example.com", 500)
	s.Equal(domain.ErrItemNotOnSale, err)
}

// a bid that is both late and low is reported as late, the price floor
// is never consulted on a closed item
func (s *testSuite) TestPlaceBidLateAndLow() {
	it := s.openItem()
	it.Closed = true
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	_, err := s.im.PlaceBid(ctx.Background(), it.Id, "bidder@example.com", 1)
	s.Equal(domain.ErrItemNotOnSale, err)
	s.bidRepo.AssertNotCalled(s.T(), "FindLeading", mock.Anything, mock.Anything, mock.Anything)
}

func (s *testSuite) TestPlaceBidTooLowAgainstStartingBid() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()

	// matching the starting bid is not enough, the next bid needs at
	// least one increment on top
	_, err := s.im.PlaceBid(ctx.Background(), it.Id, "bidder@example.com", 100)
	s.Equal(&domain.BidTooLowError{Minimum: 101}, err)
	s.EqualError(err, "bid must be at least 101")
}

func (s *testSuite) TestPlaceBidTooLowAgainstLeadingBid() {
	it := s.openItem()
	leading := &bid.Bid{Id: "bid-1", ItemId: it.Id, Bidder: "other@example.com", Amount: 150}
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(leading, nil).Once()

	_, err := s.im.PlaceBid(ctx.Background(), it.Id, "bidder@example.com", 150)
	s.Equal(&domain.BidTooLowError{Minimum: 151}, err)
	s.EqualError(err, "bid must be at least 151")
}

func (s *testSuite) TestPlaceBid() {
	it := s.openItem()
	leading := &bid.Bid{Id: "bid-1", ItemId: it.Id, Bidder: "other@example.com", Amount: 150}
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(leading, nil).Once()
	s.bidRepo.On("Create", mock.Anything, mock.AnythingOfType("*bid.Bid")).Return(nil).Once()

	before := time.Now()
	b, err := s.im.PlaceBid(ctx.Background(), it.Id, "Bidder@Example.com", 151)
	s.Nil(err)
	s.NotEmpty(b.Id)
	s.Equal(it.Id, b.ItemId)
	s.Equal(domain.UserId("bidder@example.com"), b.Bidder)
	s.Equal(int64(151), b.Amount)
	s.False(b.CreatedAt.Before(before))
	s.True(b.CreatedAt.Before(it.ClosesAt))
}

func (s *testSuite) TestPlaceBidFirstBidAtStartingBidPlusIncrement() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()
	s.bidRepo.On("Create", mock.Anything, mock.AnythingOfType("*bid.Bid")).Return(nil).Once()

	b, err := s.im.PlaceBid(ctx.Background(), it.Id, "bidder@example.com", 101)
	s.Nil(err)
	s.Equal(int64(101), b.Amount)
}
