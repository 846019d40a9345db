package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/priceformat"
	"github.com/bidhaus/goapi/base/ptr"
	"github.com/bidhaus/goapi/domain"
	mAuction "github.com/bidhaus/goapi/domain/auction/mocks"
	"github.com/bidhaus/goapi/domain/bid"
	mBid "github.com/bidhaus/goapi/domain/bid/mocks"
	"github.com/bidhaus/goapi/domain/item"
	mItem "github.com/bidhaus/goapi/domain/item/mocks"
)

type testSuite struct {
	suite.Suite

	itemRepo *mItem.Repo
	bidRepo  *mBid.Repo
	auction  *mAuction.Usecase

	im item.Usecase
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.itemRepo = &mItem.Repo{}
	s.bidRepo = &mBid.Repo{}
	s.auction = &mAuction.Usecase{}
	s.im = NewItemUseCase(&ItemUseCaseCfg{
		ItemRepo:     s.itemRepo,
		BidRepo:      s.bidRepo,
		Formatter:    priceformat.NewFormatter(&priceformat.FormatterCfg{Symbol: "€", Exponent: 2}),
		Auction:      s.auction,
		MinIncrement: 1,
	})
}

func (s *testSuite) TearDownTest() {
	s.itemRepo.AssertExpectations(s.T())
	s.bidRepo.AssertExpectations(s.T())
	s.auction.AssertExpectations(s.T())
}

func (s *testSuite) openItem() *item.Item {
	return &item.Item{
		Id:          "item-1",
		Title:       "vintage camera",
		StartingBid: 10000,
		Seller:      "seller@example.com",
		ClosesAt:    time.Now().Add(time.Hour),
	}
}

func (s *testSuite) TestGetNoBids() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.itemRepo.On("IncreaseViewed", mock.Anything, it.Id).Return(nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()
	s.bidRepo.On("Count", mock.Anything, mock.AnythingOfType("bid.FindAllOptionsFunc")).Return(0, nil).Once()

	info, err := s.im.Get(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(int64(10000), info.CurrentPrice)
	s.Equal("€100.00", info.CurrentPriceDisplay)
	s.Equal(int64(10001), info.MinimumBid)
	s.Nil(info.LeadingBid)
	s.Equal(0, info.BidCount)
}

func (s *testSuite) TestGetWithLeadingBid() {
	it := s.openItem()
	leading := &bid.Bid{Id: "bid-1", ItemId: it.Id, Bidder: "bidder@example.com", Amount: 20000}
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.itemRepo.On("IncreaseViewed", mock.Anything, it.Id).Return(nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(leading, nil).Once()
	s.bidRepo.On("Count", mock.Anything, mock.AnythingOfType("bid.FindAllOptionsFunc")).Return(4, nil).Once()

	info, err := s.im.Get(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(int64(20000), info.CurrentPrice)
	s.Equal("€200.00", info.CurrentPriceDisplay)
	s.Equal(int64(20001), info.MinimumBid)
	s.Equal(leading, info.LeadingBid)
	s.Equal(4, info.BidCount)
}

// a failed view counter bump never hides the item
func (s *testSuite) TestGetViewCounterBestEffort() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.itemRepo.On("IncreaseViewed", mock.Anything, it.Id).Return(domain.ErrInternalServerError).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()
	s.bidRepo.On("Count", mock.Anything, mock.AnythingOfType("bid.FindAllOptionsFunc")).Return(0, nil).Once()

	_, err := s.im.Get(ctx.Background(), it.Id)
	s.Nil(err)
}

func (s *testSuite) TestCurrentPriceFallsBackToStartingBid() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()

	price, err := s.im.CurrentPrice(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(int64(10000), price)
}

func (s *testSuite) TestCurrentPriceFollowsLeadingBid() {
	it := s.openItem()
	leading := &bid.Bid{Id: "bid-1", ItemId: it.Id, Amount: 20000}
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(leading, nil).Once()

	price, err := s.im.CurrentPrice(ctx.Background(), it.Id)
	s.Nil(err)
	s.Equal(int64(20000), price)
}

// the winner query is cut off at the deadline, so the leading bid can
// only come from bids placed while the item was on sale
func (s *testSuite) TestLeadingBidUsesDeadlineCutoff() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("FindLeading", mock.Anything, it.Id, it.ClosesAt).Return(nil, domain.ErrNotFound).Once()

	b, err := s.im.LeadingBid(ctx.Background(), it.Id)
	s.Nil(err)
	s.Nil(b)
}

func (s *testSuite) TestCreate() {
	closesAt := time.Now().Add(time.Hour)
	s.itemRepo.On("Create", mock.Anything, mock.AnythingOfType("*item.Item")).Return(nil).Once()
	s.auction.On("ScheduleClosing", mock.Anything, mock.AnythingOfType("string"), closesAt).Return(nil).Once()

	it, err := s.im.Create(ctx.Background(), "Seller@Example.com", "vintage camera", "works fine", 10000, closesAt)
	s.Nil(err)
	s.NotEmpty(it.Id)
	s.Equal(domain.UserId("seller@example.com"), it.Seller)
	s.Equal(int64(10000), it.StartingBid)
	s.False(it.Closed)
}

func (s *testSuite) TestCreateBadParams() {
	c := ctx.Background()

	_, err := s.im.Create(c, "seller@example.com", "", "", 100, time.Now().Add(time.Hour))
	s.Equal(domain.ErrBadParamInput, err)

	_, err = s.im.Create(c, "seller@example.com", "camera", "", -1, time.Now().Add(time.Hour))
	s.Equal(domain.ErrBadParamInput, err)

	_, err = s.im.Create(c, "seller@example.com", "camera", "", 100, time.Now().Add(-time.Minute))
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestUpdateOnlySeller() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	err := s.im.Update(ctx.Background(), "stranger@example.com", it.Id, &item.Patchable{Title: ptr.String("new title")})
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestUpdateClosedItem() {
	it := s.openItem()
	it.Closed = true
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	err := s.im.Update(ctx.Background(), it.Seller, it.Id, &item.Patchable{Title: ptr.String("new title")})
	s.Equal(domain.ErrItemNotOnSale, err)
}

// the deadline is fixed at creation, an update touches title and
// description only and never reschedules the close
func (s *testSuite) TestUpdateLeavesDeadlineAlone() {
	it := s.openItem()
	patchable := &item.Patchable{
		Title:       ptr.String("new title"),
		Description: ptr.String("new description"),
	}
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.itemRepo.On("Update", mock.Anything, it.Id, patchable).Return(nil).Once()

	err := s.im.Update(ctx.Background(), it.Seller, it.Id, patchable)
	s.Nil(err)
	s.auction.AssertNotCalled(s.T(), "ScheduleClosing", mock.Anything, mock.Anything, mock.Anything)
}

func (s *testSuite) TestDelete() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("Count", mock.Anything, mock.AnythingOfType("bid.FindAllOptionsFunc")).Return(0, nil).Once()
	s.itemRepo.On("Delete", mock.Anything, it.Id).Return(nil).Once()
	s.auction.On("CancelClosing", mock.Anything, it.Id).Return(nil).Once()

	err := s.im.Delete(ctx.Background(), it.Seller, it.Id)
	s.Nil(err)
}

func (s *testSuite) TestDeleteOnlySeller() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	err := s.im.Delete(ctx.Background(), "stranger@example.com", it.Id)
	s.Equal(domain.ErrBadParamInput, err)
}

func (s *testSuite) TestDeleteClosedItem() {
	it := s.openItem()
	it.Closed = true
	it.WinningBid = ptr.String("bid-1")
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()

	err := s.im.Delete(ctx.Background(), it.Seller, it.Id)
	s.Equal(domain.ErrItemNotOnSale, err)
	s.itemRepo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *testSuite) TestDeleteWithBids() {
	it := s.openItem()
	s.itemRepo.On("FindOne", mock.Anything, it.Id).Return(it, nil).Once()
	s.bidRepo.On("Count", mock.Anything, mock.AnythingOfType("bid.FindAllOptionsFunc")).Return(2, nil).Once()

	err := s.im.Delete(ctx.Background(), it.Seller, it.Id)
	s.Equal(domain.ErrItemHasBids, err)
	s.itemRepo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}
