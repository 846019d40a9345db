package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/delivery"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/account"
)

type authHandler struct {
	auth    domain.AuthUsecase
	account account.Usecase
}

func New(e *echo.Echo, auth domain.AuthUsecase, accountUC account.Usecase) {
	handler := &authHandler{
		auth:    auth,
		account: accountUC,
	}
	g := e.Group("/auth")
	g.POST("/signup", handler.signup)
	g.POST("/login", handler.login)
}

func (h *authHandler) signup(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Email    string `json:"email" validate:"required,email"`
		Alias    string `json:"alias"`
		Password string `json:"password" validate:"required,min=8"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	info, err := h.account.Signup(ctx, domain.UserId(p.Email), p.Alias, p.Password)
	if err == domain.ErrConflict {
		return delivery.MakeJsonResp(c, http.StatusConflict, err.Error())
	} else if err == domain.ErrBadParamInput {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	} else if err != nil {
		ctx.WithField("err", err).Error("account.Signup failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	tkn, err := h.auth.SignToken(ctx, info.Email)
	if err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Account *account.Info `json:"account"`
		Token   string        `json:"token"`
	}{info, tkn}

	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *authHandler) login(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	info, err := h.account.Login(ctx, domain.UserId(p.Email), p.Password)
	if err == domain.ErrInvalidCredentials {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err.Error())
	} else if err != nil {
		ctx.WithField("err", err).Error("account.Login failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	tkn, err := h.auth.SignToken(ctx, info.Email)
	if err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Account *account.Info `json:"account"`
		Token   string        `json:"token"`
	}{info, tkn}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
