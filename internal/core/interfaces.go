package core

import (
	"context"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
)

type (
	AuthService interface {
		Login(ctx context.Context, sessionID, email, password string) (model.Session, error)
		Logout(sessionID string) (model.Session, bool, error)
		IssueToken(sessionID string) (string, error)
		ValidateToken(tokenString string) (string, error)
	}

	DashboardService interface {
		Navigate(sessionID, key string) (model.Session, error)
		ToggleSidebar(sessionID string) (model.Session, error)
		SelectAccount(ctx context.Context, sessionID, accountID string) (model.Session, error)
		QuickAction(sessionID, action string) (model.Session, error)
		Overview(ctx context.Context, sessionID string) (*model.Overview, error)
		Accounts(ctx context.Context) ([]model.AccountRow, error)
	}

	// SessionStore is the part of the session manager the HTTP layer needs.
	SessionStore interface {
		Create() model.Session
		Get(id string) (model.Session, error)
		Touch(id string) (bool, error)
		TakeNotice(id string) (model.Session, error)
	}
)
