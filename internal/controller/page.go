package controller

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/core"
	"github.com/Evgen-Mutagen/online-banking/internal/middlewareinternal"
	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("").Funcs(template.FuncMap{
		"grouped": grouped,
		"fixed":   fixed,
		"signed":  signed,
	}).ParseFS(templateFS, "templates/*.html"),
)

// PageOptions parameterize the one dashboard layout.
type PageOptions struct {
	Title string
	// Hint is shown under the login form; empty hides it.
	Hint string
	// Timeout is the session inactivity timeout; the page polls and
	// throttles activity pings relative to it.
	Timeout time.Duration
}

type PageController struct {
	dashboard core.DashboardService
	sessions  core.SessionStore
	opts      PageOptions
	logger    *zap.Logger
}

func NewPageController(dashboard core.DashboardService, sessions core.SessionStore, opts PageOptions, logger *zap.Logger) *PageController {
	return &PageController{
		dashboard: dashboard,
		sessions:  sessions,
		opts:      opts,
		logger:    logger,
	}
}

type pageData struct {
	Title              string
	Hint               string
	Session            model.Session
	NavItems           []model.NavItem
	Notice             string
	Overview           *model.Overview
	PingThrottleMillis int64
	PollMillis         int64
}

func (c *PageController) Index(w http.ResponseWriter, r *http.Request) {
	sid, _ := middlewareinternal.GetSessionIDFromContext(r.Context())

	st, err := c.sessions.TakeNotice(sid)
	if err != nil {
		writeError(w, r, c.logger, err)
		return
	}

	data := pageData{
		Title:              c.opts.Title,
		Hint:               c.opts.Hint,
		Session:            st,
		NavItems:           model.NavItems,
		Notice:             st.Notice,
		PingThrottleMillis: c.pingThrottle().Milliseconds(),
		PollMillis:         c.pollInterval().Milliseconds(),
	}

	if st.Authenticated() && st.View == model.ViewOverview {
		data.Overview, err = c.dashboard.Overview(r.Context(), sid)
		if err != nil && !errors.Is(err, service.ErrNotAuthenticated) {
			writeError(w, r, c.logger, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.ExecuteTemplate(w, "dashboard", data); err != nil {
		c.logger.Error("Failed to render dashboard", zap.Error(err))
	}
}

// Pings are throttled to a tenth of the timeout so the countdown is
// restarted well before it runs out.
func (c *PageController) pingThrottle() time.Duration {
	d := c.opts.Timeout / 10
	if d < time.Second {
		d = time.Second
	}
	return d
}

func (c *PageController) pollInterval() time.Duration {
	d := c.opts.Timeout / 10
	if d < time.Second {
		d = time.Second
	}
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}

// grouped formats an amount with two decimals and thousands separators.
func grouped(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// signed renders a transaction amount as -$54.23 or +$2300.00.
func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}
