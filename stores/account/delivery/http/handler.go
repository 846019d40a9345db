package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/account"
	authMiddleware "github.com/bidhaus/goapi/stores/auth/delivery/http/middleware"
)

type accountHandler struct {
	account account.Usecase
}

// New will initialize the account endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, accountUC account.Usecase) {
	handler := &accountHandler{
		account: accountUC,
	}
	g := e.Group("/account")
	g.GET("", handler.get, authMiddleware.Auth())
	g.PATCH("", handler.update, authMiddleware.Auth())
}

func (h *accountHandler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)

	if info, err := h.account.Get(ctx, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, info)
	}
}

func (h *accountHandler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)

	p := &account.Updater{}
	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if info, err := h.account.Update(ctx, userId, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, info)
	}
}
