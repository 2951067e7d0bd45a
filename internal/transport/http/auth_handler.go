package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minhquan-ng/auth-capstone-api/internal/service"
	"github.com/minhquan-ng/auth-capstone-api/internal/token"
	"github.com/minhquan-ng/auth-capstone-api/internal/util"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	auth       *service.AuthService
	refreshTTL time.Duration
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, refreshTTL time.Duration) {
	handler := &AuthHandler{auth: auth, refreshTTL: refreshTTL}

	e.POST("/register", handler.register)
	e.POST("/login", handler.login)
	e.POST("/forgot-password", handler.forgotPassword)
	e.POST("/reset-password", handler.resetPassword)
	e.POST("/extend-token", handler.extendToken)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Message("email and pass_word are required"))
	}

	user, err := h.auth.Register(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyUsed):
			return c.JSON(http.StatusBadRequest, util.Message("Email already exists"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("unable to register user"))
		}
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			return c.JSON(http.StatusBadRequest, util.Message("Email does not exist"))
		case errors.Is(err, service.ErrInvalidPassword):
			return c.JSON(http.StatusBadRequest, util.Message("Invalid password"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("unable to log in"))
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    result.RefreshToken,
		MaxAge:   int(h.refreshTTL / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	return c.JSON(http.StatusOK, TokenResponse{
		Message:     "Login successfully",
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("invalid request body"))
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			return c.JSON(http.StatusBadRequest, util.Message("Email does not exist"))
		case errors.Is(err, service.ErrEmailDelivery):
			return c.JSON(http.StatusInternalServerError, util.Message("Email sent error!"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("unable to process request"))
		}
	}

	return c.JSON(http.StatusOK, util.Message("Email sent successfully"))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("invalid request body"))
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			return c.JSON(http.StatusBadRequest, util.Message("Email does not exist"))
		case errors.Is(err, service.ErrResetCodeInvalid):
			return c.JSON(http.StatusBadRequest, util.Message("Code is invalid"))
		case errors.Is(err, service.ErrResetCodeExpired):
			return c.JSON(http.StatusBadRequest, util.Message("Code is expired"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("unable to reset password"))
		}
	}

	return c.JSON(http.StatusOK, util.Message("Reset password successfully"))
}

func (h *AuthHandler) extendToken(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return c.JSON(http.StatusBadRequest, util.Message("Refresh token not found"))
	}

	accessToken, err := h.auth.ExtendToken(c.Request().Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrMalformed), errors.Is(err, token.ErrSignature), errors.Is(err, token.ErrExpired):
			return c.JSON(http.StatusForbidden, util.Message("Invalid refresh token"))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusUnauthorized, util.Message("Unauthorized"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Extend failed"))
		}
	}

	return c.JSON(http.StatusOK, TokenResponse{
		Message:     "Extend successfully",
		AccessToken: accessToken,
	})
}
