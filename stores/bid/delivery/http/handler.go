package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/bid"
	authMiddleware "github.com/bidhaus/goapi/stores/auth/delivery/http/middleware"
)

type bidHandler struct {
	bid bid.Usecase
}

// New will initialize the bid endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, bidUC bid.Usecase) {
	handler := &bidHandler{
		bid: bidUC,
	}
	g := e.Group("/items/:id/bids")
	g.GET("", handler.list)
	g.POST("", handler.place, authMiddleware.Auth())
}

func (h *bidHandler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	itemId := c.Param("id")

	type params struct {
		Offset int32 `query:"offset"`
		Limit  int32 `query:"limit" validate:"max=100"`
	}

	p := &params{Limit: 20}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	opts := []bid.FindAllOptionsFunc{
		bid.WithItemId(itemId),
		bid.WithPagination(p.Offset, p.Limit),
		bid.WithSort("amount", domain.SortDirDesc),
	}

	if bids, err := h.bid.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, bids)
	}
}

func (h *bidHandler) place(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	bidder := c.Get("userId").(domain.UserId)
	itemId := c.Param("id")

	type params struct {
		Amount int64 `json:"amount" validate:"required,gt=0"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	b, err := h.bid.PlaceBid(ctx, itemId, bidder, p.Amount)
	var tooLow *domain.BidTooLowError
	if err == domain.ErrItemNotOnSale {
		return delivery.MakeJsonResp(c, http.StatusConflict, err.Error())
	} else if errors.As(err, &tooLow) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, b)
}
