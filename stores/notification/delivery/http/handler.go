package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/notification"
	authMiddleware "github.com/bidhaus/goapi/stores/auth/delivery/http/middleware"
)

type notificationHandler struct {
	notification notification.Usecase
}

// New will initialize the notification endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, notificationUC notification.Usecase) {
	handler := &notificationHandler{
		notification: notificationUC,
	}
	g := e.Group("/notifications")
	g.GET("", handler.list, authMiddleware.Auth())
	g.POST("/:id/read", handler.markRead, authMiddleware.Auth())
}

func (h *notificationHandler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)

	type params struct {
		Unread bool  `query:"unread"`
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

	opts := []notification.FindAllOptionsFunc{
		notification.WithPagination(p.Offset, p.Limit),
	}
	if p.Unread {
		opts = append(opts, notification.WithRead(false))
	}

	if res, err := h.notification.FindAll(ctx, userId, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *notificationHandler) markRead(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)
	id := c.Param("id")

	if err := h.notification.MarkRead(ctx, userId, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
