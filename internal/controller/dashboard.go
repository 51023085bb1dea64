package controller

import (
	"net/http"

	"github.com/Evgen-Mutagen/online-banking/internal/core"
	"github.com/Evgen-Mutagen/online-banking/internal/middlewareinternal"
	"github.com/Evgen-Mutagen/online-banking/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboard core.DashboardService
	sessions  core.SessionStore
	logger    *zap.Logger
}

func NewDashboardController(dashboard core.DashboardService, sessions core.SessionStore, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboard: dashboard,
		sessions:  sessions,
		logger:    logger,
	}
}

// Session reports the session state and hands out its pending notice.
// Polling it does not count as activity.
func (c *DashboardController) Session(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	st, err := c.sessions.TakeNotice(sid)
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, newSessionResponse(st))
}

// Activity is the ping sent by the page on pointer, key and touch events.
// The activity middleware has already restarted the countdown.
func (c *DashboardController) Activity(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (c *DashboardController) Navigate(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	st, err := c.dashboard.Navigate(sid, chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	respondSession(w, r, st)
}

func (c *DashboardController) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	st, err := c.dashboard.ToggleSidebar(sid)
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	respondSession(w, r, st)
}

func (c *DashboardController) Overview(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	overview, err := c.dashboard.Overview(r.Context(), sid)
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, overview)
}

func (c *DashboardController) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := c.dashboard.Accounts(r.Context())
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, accounts)
}

// AddAccount is a placeholder: accounts are fixed.
func (c *DashboardController) AddAccount(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	if _, err := c.dashboard.QuickAction(sid, service.ActionAdd); err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	if fromForm(r) {
		backToDashboard(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type selectAccountRequest struct {
	AccountID string `json:"account_id" form:"account_id"`
}

func (c *DashboardController) SelectAccount(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	var request selectAccountRequest
	if err := render.Decode(r, &request); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	st, err := c.dashboard.SelectAccount(r.Context(), sid, request.AccountID)
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	respondSession(w, r, st)
}

func (c *DashboardController) QuickAction(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	st, err := c.dashboard.QuickAction(sid, chi.URLParam(r, "action"))
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}
	respondSession(w, r, st)
}
