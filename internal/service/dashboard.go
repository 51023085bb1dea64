package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/repository"
	"github.com/Evgen-Mutagen/online-banking/internal/session"
	"go.uber.org/zap"
)

const (
	ActionPay      = "pay"
	ActionTransfer = "transfer"
	ActionAdd      = "add"
)

var (
	ErrUnknownView      = errors.New("unknown view")
	ErrUnknownAction    = errors.New("unknown action")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAccountNotFound  = repository.ErrAccountNotFound
)

type DashboardService struct {
	sessions *session.Manager
	ledger   *LedgerService
	logger   *zap.Logger
}

func NewDashboardService(sessions *session.Manager, ledger *LedgerService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{sessions: sessions, ledger: ledger, logger: logger}
}

// Navigate switches the active view and closes the sidebar overlay.
func (s *DashboardService) Navigate(sessionID, key string) (model.Session, error) {
	view, ok := model.ParseView(key)
	if !ok {
		return model.Session{}, fmt.Errorf("%w: %q", ErrUnknownView, key)
	}
	return s.sessions.Update(sessionID, func(st *model.Session) error {
		st.View = view
		st.SidebarOpen = false
		return nil
	})
}

func (s *DashboardService) ToggleSidebar(sessionID string) (model.Session, error) {
	return s.sessions.Update(sessionID, func(st *model.Session) error {
		st.SidebarOpen = !st.SidebarOpen
		return nil
	})
}

// SelectAccount picks the account whose balance seeds the running balance.
func (s *DashboardService) SelectAccount(ctx context.Context, sessionID, accountID string) (model.Session, error) {
	if _, err := s.authenticated(sessionID); err != nil {
		return model.Session{}, err
	}
	if _, err := s.ledger.Account(ctx, accountID); err != nil {
		return model.Session{}, err
	}
	return s.sessions.Update(sessionID, func(st *model.Session) error {
		st.SelectedAccountID = accountID
		return nil
	})
}

// QuickAction runs one of the overview shortcuts. Pay and transfer open
// the payments view; add is a no-op for now.
func (s *DashboardService) QuickAction(sessionID, action string) (model.Session, error) {
	st, err := s.authenticated(sessionID)
	if err != nil {
		return model.Session{}, err
	}

	switch action {
	case ActionPay, ActionTransfer:
		return s.sessions.Update(sessionID, func(st *model.Session) error {
			st.View = model.ViewPayments
			return nil
		})
	case ActionAdd:
		s.logger.Info("Add account requested", zap.String("session_id", sessionID))
		return st, nil
	default:
		return model.Session{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

func (s *DashboardService) Overview(ctx context.Context, sessionID string) (*model.Overview, error) {
	st, err := s.authenticated(sessionID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	selected := st.SelectedAccountID
	if selected == "" && len(accounts) > 0 {
		selected = accounts[0].ID
	}

	rows, err := s.ledger.Ledger(ctx, selected)
	if err != nil {
		return nil, err
	}

	return &model.Overview{
		User:            st.User,
		View:            st.View,
		Accounts:        accounts,
		SelectedAccount: selected,
		Transactions:    rows,
	}, nil
}

func (s *DashboardService) Accounts(ctx context.Context) ([]model.AccountRow, error) {
	accounts, err := s.ledger.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]model.AccountRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, model.AccountRow{Account: *a, MaskedNumber: a.Masked()})
	}
	return rows, nil
}

func (s *DashboardService) authenticated(sessionID string) (model.Session, error) {
	st, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.Session{}, err
	}
	if !st.Authenticated() {
		return model.Session{}, ErrNotAuthenticated
	}
	return st, nil
}
