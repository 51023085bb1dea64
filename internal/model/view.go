package model

import "strings"

type View string

const (
	ViewOverview View = "overview"
	ViewAccounts View = "accounts"
	ViewPayments View = "payments"
	ViewCards    View = "cards"
	ViewSettings View = "settings"
)

type NavItem struct {
	Key   View   `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var NavItems = []NavItem{
	{Key: ViewOverview, Label: "Overview", Icon: "🏠"},
	{Key: ViewAccounts, Label: "Accounts", Icon: "💳"},
	{Key: ViewPayments, Label: "Payments", Icon: "💸"},
	{Key: ViewCards, Label: "Cards", Icon: "🪪"},
	{Key: ViewSettings, Label: "Settings", Icon: "⚙️"},
}

func ParseView(key string) (View, bool) {
	for _, item := range NavItems {
		if string(item.Key) == key {
			return item.Key, true
		}
	}
	return "", false
}

// Title capitalizes the key for the placeholder panels.
func (v View) Title() string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(string(v[:1])) + string(v[1:])
}
