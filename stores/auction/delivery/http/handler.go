package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain/auction"
	authMiddleware "github.com/bidhaus/goapi/stores/auth/delivery/http/middleware"
)

type auctionHandler struct {
	auction auction.Usecase
}

// New registers the admin auction endpoints. Closing normally happens
// through the scheduler, these exist for operational intervention.
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, auctionUC auction.Usecase) {
	handler := &auctionHandler{
		auction: auctionUC,
	}
	g := e.Group("/admin")
	g.POST("/items/:id/close", handler.close, authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.POST("/sweep", handler.sweep, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *auctionHandler) close(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("id")

	if res, err := h.auction.CloseItem(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *auctionHandler) sweep(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		LookaheadMs int64 `json:"lookaheadMs"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	lookahead := time.Duration(p.LookaheadMs) * time.Millisecond

	if res, err := h.auction.RunSweep(ctx, lookahead); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
