package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/service"
	"github.com/Evgen-Mutagen/online-banking/internal/session"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type sessionResponse struct {
	Authenticated     bool        `json:"authenticated"`
	User              *model.User `json:"user"`
	View              model.View  `json:"view"`
	SidebarOpen       bool        `json:"sidebar_open"`
	SelectedAccountID string      `json:"selected_account_id,omitempty"`
	AuthError         string      `json:"auth_error,omitempty"`
	Notice            string      `json:"notice,omitempty"`
	ExpiresAt         *time.Time  `json:"expires_at,omitempty"`
}

func newSessionResponse(st model.Session) sessionResponse {
	resp := sessionResponse{
		Authenticated:     st.Authenticated(),
		User:              st.User,
		View:              st.View,
		SidebarOpen:       st.SidebarOpen,
		SelectedAccountID: st.SelectedAccountID,
		AuthError:         st.AuthError,
		Notice:            st.Notice,
	}
	if !st.ExpiresAt.IsZero() {
		t := st.ExpiresAt
		resp.ExpiresAt = &t
	}
	return resp
}

// fromForm reports whether the request came from an HTML form, in which
// case handlers answer with a redirect back to the dashboard.
func fromForm(r *http.Request) bool {
	return render.GetRequestContentType(r) == render.ContentTypeForm
}

func backToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// respondSession answers a state-changing request.
func respondSession(w http.ResponseWriter, r *http.Request, st model.Session) {
	if fromForm(r) {
		backToDashboard(w, r)
		return
	}
	render.JSON(w, r, newSessionResponse(st))
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrUnknownView),
		errors.Is(err, service.ErrUnknownAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, session.ErrSessionNotFound):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, service.ErrAccountNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is listening for the body.
		w.WriteHeader(http.StatusRequestTimeout)
	default:
		logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
