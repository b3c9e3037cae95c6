// Package client is a Go client for the marketplace API. A Client carries an
// explicit Session that Login fills and Logout clears.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultTimeout = 15 * time.Second

// ErrNoSession is returned by authenticated calls when the session is empty
// or expired. No request is sent in that case.
var ErrNoSession = errors.New("client: no valid session")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status     int
	Detail     string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

type RegisterRequest struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Role      string   `json:"role"`
	Contact   string   `json:"contact,omitempty"`
	Location  string   `json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Language  string   `json:"language,omitempty"`
}

type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Role         Role      `json:"role"`
	Username     string    `json:"username"`
	UserID       uint      `json:"user_id"`
}

type MandiQuote struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	District      string  `json:"district"`
	DistanceKm    float64 `json:"distance_km"`
	PricePerKg    float64 `json:"price_per_kg"`
	TransportCost float64 `json:"transport_cost"`
	TravelTimeMin int     `json:"travel_time_min"`
}

// Mandis is the nearby mandi listing. Source is "live" or "fallback".
type Mandis struct {
	Mandis []MandiQuote `json:"mandis"`
	Crop   string       `json:"crop"`
	Total  int          `json:"total"`
	Source string       `json:"source"`
	Reason string       `json:"reason,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client for the API at baseURL. A nil session starts empty.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = &Session{}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		session: session,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var out struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     Role   `json:"role"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/register", req, false, &out); err != nil {
		return nil, err
	}
	return &User{ID: out.ID, Username: out.Username, Role: out.Role}, nil
}

// Login exchanges credentials for tokens and begins the session.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	var tok tokenResponse
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, false, &tok); err != nil {
		return nil, err
	}
	user := User{ID: tok.UserID, Username: tok.Username, Role: tok.Role}
	c.session.Begin(tok.AccessToken, tok.RefreshToken, tok.ExpiresAt, user)
	return &user, nil
}

// Logout revokes the tokens server side and clears the session. The session
// is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	if !c.session.Valid(c.now()) {
		return nil
	}
	body := map[string]string{"refresh_token": c.session.RefreshToken()}
	return c.do(ctx, http.MethodPost, "/api/logout", body, true, nil)
}

// Items lists the retailer's inventory.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var out []Item
	if err := c.do(ctx, http.MethodGet, "/api/retailer/items", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ItemsView searches and filters the retailer's inventory server side.
func (c *Client) ItemsView(ctx context.Context, search string, filter Filter) (*View, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if filter != "" {
		q.Set("filter", string(filter))
	}
	path := "/api/retailer/items/view"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out View
	if err := c.do(ctx, http.MethodGet, path, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mandis lists nearby mandis. It needs no session.
func (c *Client) Mandis(ctx context.Context, lat, lng float64, crop string) (*Mandis, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	if crop != "" {
		q.Set("crop", crop)
	}
	var out Mandis
	if err := c.do(ctx, http.MethodGet, "/api/farmer/mandis?"+q.Encode(), nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, auth bool, out any) error {
	var bearer string
	if auth {
		tok, ok := c.session.Token(c.now())
		if !ok {
			return ErrNoSession
		}
		bearer = tok
	}

	var body io.Reader
	if in != nil {
		bs, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError reads a {"detail": ...} body. A structured detail is kept as
// its raw JSON.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		apiErr.RetryAfter = time.Duration(secs) * time.Second
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		apiErr.Detail = strings.TrimSpace(string(raw))
		if apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	var msg string
	if err := json.Unmarshal(body.Detail, &msg); err == nil {
		apiErr.Detail = msg
	} else {
		apiErr.Detail = string(body.Detail)
	}
	return apiErr
}
