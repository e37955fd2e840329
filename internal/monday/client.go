// Package monday talks to the work-item tracking service's GraphQL API:
// fetching the current user, reading claims for a date range, and creating,
// updating and deleting items on the time-tracking board.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claimdeck/claimdeck/internal/claims"
)

// DefaultEndpoint is the production GraphQL endpoint.
const DefaultEndpoint = "https://api.monday.com/v2"

const itemsPageLimit = 500

// Client issues GraphQL requests against one board with one token.
type Client struct {
	endpoint string
	token    string
	boardID  string
	http     *http.Client
	logger   *zap.Logger

	groupIDs map[int]string // year -> group id, filled lazily
}

// Option adjusts a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the given endpoint, token and board.
func New(endpoint, token, boardID string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if boardID == "" {
		boardID = DefaultBoardID
	}
	c := &Client{
		endpoint: endpoint,
		token:    token,
		boardID:  boardID,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   zap.NewNop(),
		groupIDs: make(map[int]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data         json.RawMessage `json:"data"`
	Errors       []gqlError      `json:"errors"`
	ErrorMessage string          `json:"error_message"`
}

func (c *Client) do(ctx context.Context, op, query string, variables map[string]any, out any) error {
	reqID := uuid.NewString()
	started := time.Now()
	log := c.logger.With(zap.String("op", op), zap.String("request_id", reqID))
	log.Debug("remote call started")

	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return remoteErr(KindAPI, op, "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return remoteErr(KindNetwork, op, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("remote call failed", zap.Error(err), zap.Duration("took", time.Since(started)))
		return remoteErr(KindNetwork, op, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return remoteErr(KindNetwork, op, "read response", err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return remoteErr(KindAuth, op, "credentials rejected", nil)
	case resp.StatusCode >= 400:
		return remoteErr(KindAPI, op, fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	var envelope gqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return remoteErr(KindAPI, op, "decode response", err)
	}
	if envelope.ErrorMessage != "" {
		return remoteErr(KindAPI, op, envelope.ErrorMessage, nil)
	}
	if len(envelope.Errors) > 0 {
		return remoteErr(KindAPI, op, envelope.Errors[0].Message, nil)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return remoteErr(KindAPI, op, "decode data", err)
		}
	}
	log.Debug("remote call finished", zap.Duration("took", time.Since(started)))
	return nil
}

// Me returns the account the token authenticates as.
func (c *Client) Me(ctx context.Context) (User, error) {
	var data struct {
		Me *userPayload `json:"me"`
	}
	if err := c.do(ctx, "me", `query { me { id name email } }`, nil, &data); err != nil {
		return User{}, err
	}
	if data.Me == nil {
		return User{}, remoteErr(KindAuth, "me", "no user for token", nil)
	}
	return data.Me.user(), nil
}

// userPayload tolerates numeric ids, which the API emits for some accounts.
type userPayload struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

func (u userPayload) user() User {
	return User{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

// groupForYear resolves the board group holding a year's items. Groups are
// named by year; unknown years fall back to the catch-all group.
func (c *Client) groupForYear(ctx context.Context, year int) (string, error) {
	if id, ok := c.groupIDs[year]; ok {
		return id, nil
	}
	var data struct {
		Boards []struct {
			Groups []group `json:"groups"`
		} `json:"boards"`
	}
	query := fmt.Sprintf(`query { boards(ids: [%s]) { groups { id title } } }`, c.boardID)
	if err := c.do(ctx, "groups", query, nil, &data); err != nil {
		return "", err
	}
	if len(data.Boards) == 0 {
		return "", remoteErr(KindNotFound, "groups", fmt.Sprintf("board %s not found", c.boardID), nil)
	}
	id := fallbackGroupID
	want := strconv.Itoa(year)
	for _, g := range data.Boards[0].Groups {
		if g.Title == want {
			id = g.ID
			break
		}
	}
	c.groupIDs[year] = id
	return id, nil
}

// ClaimsBetween fetches the user's claims dated within [from, to] inclusive.
func (c *Client) ClaimsBetween(ctx context.Context, from, to time.Time) ([]claims.ClaimEntry, error) {
	var out []claims.ClaimEntry
	for year := from.Year(); year <= to.Year(); year++ {
		groupID, err := c.groupForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		items, err := c.groupItems(ctx, groupID)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			entry, err := entryFromItem(it)
			if err != nil {
				c.logger.Warn("skipping malformed item", zap.String("item_id", it.ID), zap.Error(err))
				continue
			}
			if entry.Date.Before(from) || entry.Date.After(to) {
				continue
			}
			out = append(out, entry)
		}
	}
	claims.SortEntries(out)
	return out, nil
}

func (c *Client) groupItems(ctx context.Context, groupID string) ([]item, error) {
	var data struct {
		Boards []struct {
			Groups []struct {
				ItemsPage struct {
					Items []item `json:"items"`
				} `json:"items_page"`
			} `json:"groups"`
		} `json:"boards"`
	}
	query := fmt.Sprintf(
		`query { boards(ids: [%s]) { groups(ids: [%q]) { items_page(limit: %d) { items { id name column_values { id text value } } } } } }`,
		c.boardID, groupID, itemsPageLimit)
	if err := c.do(ctx, "items", query, nil, &data); err != nil {
		return nil, err
	}
	if len(data.Boards) == 0 || len(data.Boards[0].Groups) == 0 {
		return nil, nil
	}
	return data.Boards[0].Groups[0].ItemsPage.Items, nil
}

// CreateClaim creates a board item for the entry and returns it with the
// assigned id.
func (c *Client) CreateClaim(ctx context.Context, entry claims.ClaimEntry) (claims.ClaimEntry, error) {
	groupID, err := c.groupForYear(ctx, entry.Date.Year())
	if err != nil {
		return claims.ClaimEntry{}, err
	}
	values, err := columnValuesJSON(entry)
	if err != nil {
		return claims.ClaimEntry{}, remoteErr(KindAPI, "create", "", err)
	}
	var data struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}
	query := `mutation ($board: ID!, $group: String!, $name: String!, $values: JSON!) {
		create_item(board_id: $board, group_id: $group, item_name: $name, column_values: $values) { id }
	}`
	vars := map[string]any{
		"board":  c.boardID,
		"group":  groupID,
		"name":   entry.Title(),
		"values": values,
	}
	if err := c.do(ctx, "create", query, vars, &data); err != nil {
		return claims.ClaimEntry{}, err
	}
	if data.CreateItem.ID == "" {
		return claims.ClaimEntry{}, remoteErr(KindAPI, "create", "no item id returned", nil)
	}
	entry.ID = data.CreateItem.ID
	return entry, nil
}

// UpdateClaim rewrites every column of an existing item.
func (c *Client) UpdateClaim(ctx context.Context, entry claims.ClaimEntry) error {
	if entry.ID == "" {
		return remoteErr(KindNotFound, "update", "entry has no id", nil)
	}
	values, err := columnValuesJSON(entry)
	if err != nil {
		return remoteErr(KindAPI, "update", "", err)
	}
	query := `mutation ($board: ID!, $item: ID!, $values: JSON!) {
		change_multiple_column_values(board_id: $board, item_id: $item, column_values: $values) { id }
	}`
	vars := map[string]any{
		"board":  c.boardID,
		"item":   entry.ID,
		"values": values,
	}
	return c.do(ctx, "update", query, vars, nil)
}

// DeleteClaim removes an item from the board.
func (c *Client) DeleteClaim(ctx context.Context, id string) error {
	if id == "" {
		return remoteErr(KindNotFound, "delete", "entry has no id", nil)
	}
	query := `mutation ($item: ID!) { delete_item(item_id: $item) { id } }`
	return c.do(ctx, "delete", query, map[string]any{"item": id}, nil)
}
