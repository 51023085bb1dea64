package controller

import (
	"errors"
	"net/http"

	"github.com/Evgen-Mutagen/online-banking/internal/core"
	"github.com/Evgen-Mutagen/online-banking/internal/middlewareinternal"
	"github.com/Evgen-Mutagen/online-banking/internal/service"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type AuthController struct {
	authService core.AuthService
	logger      *zap.Logger
}

func NewAuthController(authService core.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	var request loginRequest
	if err := render.Decode(r, &request); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	st, err := c.authService.Login(r.Context(), sid, request.Email, request.Password)
	if err != nil {
		// The form shows the error from the session state.
		if fromForm(r) && errors.Is(err, service.ErrInvalidCredentials) {
			backToDashboard(w, r)
			return
		}
		writeError(w, r, c.logger, err)
		return
	}

	respondSession(w, r, st)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	st, _, err := c.authService.Logout(sid)
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}

	respondSession(w, r, st)
}
