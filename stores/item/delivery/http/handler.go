package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/item"
	authMiddleware "github.com/bidhaus/goapi/stores/auth/delivery/http/middleware"
)

type itemHandler struct {
	item item.Usecase
}

// New will initialize the item endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, itemUC item.Usecase) {
	handler := &itemHandler{
		item: itemUC,
	}
	g := e.Group("/items")
	g.GET("", handler.list)
	g.POST("", handler.create, authMiddleware.Auth())
	g.GET("/:id", handler.get)
	g.PATCH("/:id", handler.update, authMiddleware.Auth())
	g.DELETE("/:id", handler.delete, authMiddleware.Auth())
	g.GET("/:id/price", handler.price)
}

func (h *itemHandler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Seller string `query:"seller"`
		Closed *bool  `query:"closed"`
		Offset int32  `query:"offset"`
		Limit  int32  `query:"limit" validate:"max=100"`
	}

	p := &params{Limit: 20}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	opts := []item.FindAllOptionsFunc{
		item.WithPagination(p.Offset, p.Limit),
		item.WithSort("closesAt", domain.SortDirAsc),
	}
	if p.Seller != "" {
		opts = append(opts, item.WithSeller(domain.UserId(p.Seller)))
	}
	if p.Closed != nil {
		opts = append(opts, item.WithClosed(*p.Closed))
	}

	if infos, err := h.item.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, infos)
	}
}

func (h *itemHandler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("id")

	if info, err := h.item.Get(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, info)
	}
}

func (h *itemHandler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("userId").(domain.UserId)

	type params struct {
		Title       string    `json:"title" validate:"required"`
		Description string    `json:"description"`
		StartingBid int64     `json:"startingBid" validate:"gte=0"`
		ClosesAt    time.Time `json:"closesAt" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	it, err := h.item.Create(ctx, seller, p.Title, p.Description, p.StartingBid, p.ClosesAt)
	if err == domain.ErrBadParamInput {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, it)
}

func (h *itemHandler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	operator := c.Get("userId").(domain.UserId)
	id := c.Param("id")

	p := &item.Patchable{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	err := h.item.Update(ctx, operator, id, p)
	if err == domain.ErrBadParamInput {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	} else if err == domain.ErrItemNotOnSale {
		return delivery.MakeJsonResp(c, http.StatusConflict, err.Error())
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *itemHandler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	operator := c.Get("userId").(domain.UserId)
	id := c.Param("id")

	err := h.item.Delete(ctx, operator, id)
	if err == domain.ErrBadParamInput {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	} else if err == domain.ErrItemNotOnSale || err == domain.ErrItemHasBids {
		return delivery.MakeJsonResp(c, http.StatusConflict, err.Error())
	} else if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *itemHandler) price(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := c.Param("id")

	info, err := h.item.Get(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		CurrentPrice        int64  `json:"currentPrice"`
		CurrentPriceDisplay string `json:"currentPriceDisplay"`
		MinimumBid          int64  `json:"minimumBid"`
	}{info.CurrentPrice, info.CurrentPriceDisplay, info.MinimumBid}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
