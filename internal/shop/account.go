package shop

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/commerce"
)

// Notice texts for the menu actions.
const (
	NoticeLoginToTip  = "Please log in to tip"
	NoticeTipFailed   = "Tipping is unavailable right now"
	NoticeLoginFailed = "Login is unavailable right now"
)

// TipResult carries a finished tip URL request.
type TipResult struct {
	URL string
	Err error
}

// SessionResult carries the startup session check.
type SessionResult struct {
	Initialized bool
	Info        commerce.SessionInfo
	Err         error
}

// TipJob asks for the tip page, returning to redirect afterwards.
func TipJob(client commerce.Client, redirect string, timeout time.Duration) func() TipResult {
	return func() TipResult {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		url, err := client.TipURL(ctx, redirect)
		return TipResult{URL: url, Err: err}
	}
}

// TipNotice returns the notice for a failed tip request.
func TipNotice(err error) string {
	if errors.Is(err, commerce.ErrNoTipURL) {
		return NoticeLoginToTip
	}
	return NoticeTipFailed
}

// SessionJob initializes the client and checks the player's session.
func SessionJob(client commerce.Client, timeout time.Duration) func() SessionResult {
	return func() SessionResult {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ok, err := client.Initialize(ctx)
		if err != nil {
			return SessionResult{Err: err}
		}
		info, err := client.SessionInfo(ctx)
		return SessionResult{Initialized: ok, Info: info, Err: err}
	}
}

// SessionLabel describes a session check for the menu footer.
func SessionLabel(res SessionResult) string {
	switch {
	case errors.Is(res.Err, commerce.ErrNotConfigured):
		return "offline"
	case res.Err != nil:
		return "store unreachable"
	case res.Info.IsValid && res.Info.HasUserID:
		return "logged in"
	default:
		return "guest"
	}
}

// Notice is a message that disappears after a while.
type Notice struct {
	text  string
	until time.Time
}

// Show displays text until now+d.
func (n *Notice) Show(text string, now time.Time, d time.Duration) {
	n.text = text
	n.until = now.Add(d)
}

// Text returns the message if it is still showing.
func (n *Notice) Text(now time.Time) string {
	if n.text == "" || !now.Before(n.until) {
		return ""
	}
	return n.text
}
