// Package commerce talks to the game-commerce service that backs the in-game
// store: catalog listing, hosted purchase and tip pages, the player's session
// and purchase history, and optional score reporting.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Redirect paths appended to the configured redirect origin.
const (
	PathPurchaseDone = "/success"
	PathTipDone      = "/post-tip.html"
	PathLoginDone    = "/post-login"
)

var (
	// ErrNotConfigured is returned when the base URL, API key or game ID is missing.
	ErrNotConfigured = errors.New("commerce: client is not configured")
	// ErrNoTipURL is returned when the service has no tip page for the
	// current session, usually because the player is not logged in.
	ErrNoTipURL = errors.New("commerce: no tip url available")
)

// StatusError is returned for non-2xx replies.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("commerce: %s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("commerce: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Item is a purchasable store entry. Price is in minor currency units.
type Item struct {
	ID       string
	Name     string
	Price    int
	ImageURL string
}

// Purchase is one entry of the player's purchase history.
type Purchase struct {
	ID        string
	ItemID    string
	Name      string
	Price     int
	CreatedAt time.Time
}

// SessionInfo describes the player's session with the service.
type SessionInfo struct {
	IsValid   bool
	HasUserID bool
}

// PurchaseRequest asks for a hosted checkout page.
type PurchaseRequest struct {
	ItemID      string
	RedirectURL string
}

// LoginParams describes where the hosted login page returns to.
type LoginParams struct {
	RedirectURL string
}

// Client is the commerce collaborator used by the game.
type Client interface {
	Initialize(ctx context.Context) (bool, error)
	SessionInfo(ctx context.Context) (SessionInfo, error)
	LoginURL(params LoginParams) (string, error)
	StoreCatalog(ctx context.Context) ([]Item, error)
	PurchaseURL(ctx context.Context, req PurchaseRequest) (string, error)
	PurchaseHistory(ctx context.Context) ([]Purchase, error)
	TipURL(ctx context.Context, redirectURL string) (string, error)
	SubmitScore(ctx context.Context, score int) error
}

// HTTPClient implements Client over the service's JSON HTTP API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	gameID  string
	token   string
	http    *http.Client
	logger  *log.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// WithSessionToken sets the player's bearer token.
func WithSessionToken(token string) Option {
	return func(c *HTTPClient) {
		c.token = token
	}
}

// New creates a client from configuration. A nil logger falls back to
// log.Default(). When cfg is incomplete every call returns ErrNotConfigured.
func New(cfg config.CommerceConfig, logger *log.Logger, opts ...Option) *HTTPClient {
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		gameID:  cfg.GameID,
		token:   cfg.SessionToken,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client can reach the service.
func (c *HTTPClient) Configured() bool {
	return c.baseURL != "" && c.apiKey != "" && c.gameID != ""
}

// Initialize registers the game with the service.
func (c *HTTPClient) Initialize(ctx context.Context) (bool, error) {
	body, err := c.do(ctx, http.MethodPost, "/v1/sdk/initialize", map[string]any{"gameId": c.gameID})
	if err != nil {
		return false, err
	}
	return gjson.GetBytes(body, "initialized").Bool(), nil
}

// SessionInfo returns the state of the player's session.
func (c *HTTPClient) SessionInfo(ctx context.Context) (SessionInfo, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/session", nil)
	if err != nil {
		return SessionInfo{}, err
	}
	res := gjson.ParseBytes(body)
	return SessionInfo{
		IsValid:   res.Get("isValid").Bool(),
		HasUserID: res.Get("hasUserId").Bool(),
	}, nil
}

// LoginURL builds the hosted login page address. No request is made.
func (c *HTTPClient) LoginURL(params LoginParams) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	q := url.Values{}
	q.Set("gameId", c.gameID)
	if params.RedirectURL != "" {
		q.Set("redirectUrl", params.RedirectURL)
	}
	return c.baseURL + "/login?" + q.Encode(), nil
}

// StoreCatalog lists the items for sale. The service may answer with a bare
// array or with an object holding an "items" array.
func (c *HTTPClient) StoreCatalog(ctx context.Context) ([]Item, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/store/catalog", nil)
	if err != nil {
		return nil, err
	}

	list := listOf(body, "items")
	items := make([]Item, 0, len(list))
	for _, v := range list {
		items = append(items, Item{
			ID:       idOf(v),
			Name:     v.Get("name").String(),
			Price:    int(v.Get("price").Int()),
			ImageURL: v.Get("imageUrl").String(),
		})
	}
	return items, nil
}

// PurchaseURL asks for a hosted checkout page for one item.
func (c *HTTPClient) PurchaseURL(ctx context.Context, req PurchaseRequest) (string, error) {
	if req.ItemID == "" {
		return "", errors.New("commerce: purchase request has no item id")
	}
	body, err := c.do(ctx, http.MethodPost, "/v1/purchases/url", map[string]any{
		"itemId":      req.ItemID,
		"redirectUrl": req.RedirectURL,
	})
	if err != nil {
		return "", err
	}
	u := gjson.GetBytes(body, "url").String()
	if u == "" {
		return "", fmt.Errorf("commerce: purchase url missing for item %s", req.ItemID)
	}
	return u, nil
}

// PurchaseHistory lists the logged-in player's purchases.
func (c *HTTPClient) PurchaseHistory(ctx context.Context) ([]Purchase, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/purchases", nil)
	if err != nil {
		return nil, err
	}

	list := listOf(body, "purchases")
	purchases := make([]Purchase, 0, len(list))
	for _, v := range list {
		p := Purchase{
			ID:     idOf(v),
			ItemID: v.Get("itemId").String(),
			Name:   v.Get("name").String(),
			Price:  int(v.Get("price").Int()),
		}
		if ts := v.Get("createdAt").String(); ts != "" {
			if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
				p.CreatedAt = parsed
			}
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

// TipURL asks for a hosted tip page. ErrNoTipURL means none is available.
func (c *HTTPClient) TipURL(ctx context.Context, redirectURL string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/v1/tips/url", map[string]any{"redirectUrl": redirectURL})
	if err != nil {
		return "", err
	}
	u := gjson.GetBytes(body, "url").String()
	if u == "" {
		return "", ErrNoTipURL
	}
	return u, nil
}

// SubmitScore reports a score.
func (c *HTTPClient) SubmitScore(ctx context.Context, score int) error {
	_, err := c.do(ctx, http.MethodPost, "/v1/scores", map[string]any{"score": score})
	return err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("commerce: cannot encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("commerce: cannot build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Game-Id", c.gameID)
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commerce: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("commerce: %s %s: cannot read body: %w", method, path, err)
	}

	c.logger.Debug("commerce request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(gjson.GetBytes(body, "message").String()),
		}
	}
	if len(body) > 0 && !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("commerce: %s %s: invalid json reply", method, path)
	}
	return body, nil
}

// listOf accepts either a top-level array or an object wrapping one under key.
func listOf(body []byte, key string) []gjson.Result {
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		res = res.Get(key)
	}
	if !res.IsArray() {
		return nil
	}
	return res.Array()
}

func idOf(v gjson.Result) string {
	if id := v.Get("_id"); id.Exists() {
		return id.String()
	}
	return v.Get("id").String()
}

// RedirectURL joins the configured origin with one of the Path constants.
func RedirectURL(origin, path string) string {
	return strings.TrimRight(origin, "/") + path
}
