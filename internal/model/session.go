package model

import "time"

// Session is the per-browser dashboard state. User is nil while
// unauthenticated.
type Session struct {
	ID                string    `json:"-"`
	User              *User     `json:"user"`
	View              View      `json:"view"`
	SidebarOpen       bool      `json:"sidebar_open"`
	SelectedAccountID string    `json:"selected_account_id"`
	AuthError         string    `json:"auth_error,omitempty"`
	Notice            string    `json:"notice,omitempty"`
	CreatedAt         time.Time `json:"-"`
	LastSeen          time.Time `json:"-"`
	ExpiresAt         time.Time `json:"-"`
}

func (s *Session) Authenticated() bool {
	return s.User != nil
}

// Overview is everything the overview panel renders.
type Overview struct {
	User            *User        `json:"user"`
	View            View         `json:"view"`
	Accounts        []AccountRow `json:"accounts"`
	SelectedAccount string       `json:"selected_account_id"`
	Transactions    []LedgerRow  `json:"transactions"`
}

type AccountRow struct {
	Account
	MaskedNumber string `json:"number"`
}
