package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
)

func TestNavigateSetsViewAndClosesSidebar(t *testing.T) {
	for _, item := range model.NavItems {
		t.Run(string(item.Key), func(t *testing.T) {
			f := newFixture(t)
			sid := f.sessions.Create().ID

			if st, _ := f.dashboard.ToggleSidebar(sid); !st.SidebarOpen {
				t.Fatal("sidebar not opened")
			}

			st, err := f.dashboard.Navigate(sid, string(item.Key))
			if err != nil {
				t.Fatal(err)
			}
			if st.View != item.Key {
				t.Fatalf("view = %q, want %q", st.View, item.Key)
			}
			if st.SidebarOpen {
				t.Fatal("sidebar still open after navigation")
			}
		})
	}
}

func TestNavigateUnknownView(t *testing.T) {
	f := newFixture(t)
	sid := f.sessions.Create().ID

	if _, err := f.dashboard.Navigate(sid, "loans"); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("err = %v", err)
	}
	if st, _ := f.sessions.Get(sid); st.View != model.ViewOverview {
		t.Fatalf("view changed to %q", st.View)
	}
}

func login(t *testing.T, f *fixture) string {
	t.Helper()
	sid := f.sessions.Create().ID
	if _, err := f.auth.Login(context.Background(), sid, DemoEmail, DemoPassword); err != nil {
		t.Fatal(err)
	}
	return sid
}

func TestQuickActions(t *testing.T) {
	f := newFixture(t)
	sid := login(t, f)

	if _, err := f.dashboard.ToggleSidebar(sid); err != nil {
		t.Fatal(err)
	}

	st, err := f.dashboard.QuickAction(sid, ActionTransfer)
	if err != nil {
		t.Fatal(err)
	}
	if st.View != model.ViewPayments {
		t.Fatalf("view = %q", st.View)
	}
	if !st.SidebarOpen {
		t.Fatal("quick action should leave the sidebar alone")
	}

	if _, err := f.dashboard.Navigate(sid, "overview"); err != nil {
		t.Fatal(err)
	}
	st, err = f.dashboard.QuickAction(sid, ActionAdd)
	if err != nil {
		t.Fatal(err)
	}
	if st.View != model.ViewOverview {
		t.Fatalf("add changed the view to %q", st.View)
	}

	if _, err := f.dashboard.QuickAction(sid, "withdraw"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v", err)
	}
}

func TestGuardedOperationsRequireLogin(t *testing.T) {
	f := newFixture(t)
	sid := f.sessions.Create().ID
	ctx := context.Background()

	if _, err := f.dashboard.Overview(ctx, sid); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Overview err = %v", err)
	}
	if _, err := f.dashboard.QuickAction(sid, ActionPay); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("QuickAction err = %v", err)
	}
	if _, err := f.dashboard.SelectAccount(ctx, sid, "sav"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("SelectAccount err = %v", err)
	}
}

func TestOverviewFollowsSelectedAccount(t *testing.T) {
	f := newFixture(t)
	sid := login(t, f)
	ctx := context.Background()

	ov, err := f.dashboard.Overview(ctx, sid)
	if err != nil {
		t.Fatal(err)
	}
	if ov.SelectedAccount != "chk" {
		t.Fatalf("default account = %q", ov.SelectedAccount)
	}
	if len(ov.Accounts) != 2 || ov.Accounts[1].MaskedNumber != "••• 9876" {
		t.Fatalf("accounts = %+v", ov.Accounts)
	}
	if !ov.Transactions[0].Running.Equal(d("3233.19")) {
		t.Fatalf("running = %s", ov.Transactions[0].Running)
	}

	if _, err := f.dashboard.SelectAccount(ctx, sid, "sav"); err != nil {
		t.Fatal(err)
	}
	ov, err = f.dashboard.Overview(ctx, sid)
	if err != nil {
		t.Fatal(err)
	}
	if ov.SelectedAccount != "sav" || !ov.Transactions[2].Running.Equal(d("14201.78")) {
		t.Fatalf("selected = %s running = %s", ov.SelectedAccount, ov.Transactions[2].Running)
	}

	if _, err := f.dashboard.SelectAccount(ctx, sid, "nope"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v", err)
	}
}
