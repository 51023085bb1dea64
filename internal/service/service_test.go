package service

import (
	"testing"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/repository"
	"github.com/Evgen-Mutagen/online-banking/internal/session"
	"github.com/Evgen-Mutagen/online-banking/internal/session/sessiontest"
)

var epoch = time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clock     *sessiontest.Clock
	sessions  *session.Manager
	auth      *AuthService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := sessiontest.NewClock(epoch)
	sessions := session.NewManager(session.Options{Timeout: 5 * time.Minute, Clock: clock})

	auth, err := NewAuthService(sessions, "test-secret", 0, nil)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	store := repository.NewSeededStore()
	ledger := NewLedgerService(store, store)

	return &fixture{
		clock:     clock,
		sessions:  sessions,
		auth:      auth,
		dashboard: NewDashboardService(sessions, ledger, nil),
	}
}
