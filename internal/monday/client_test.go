package monday

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimdeck/claimdeck/internal/claims"
)

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func newTestServer(t *testing.T, handler func(req capturedRequest) (int, string)) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-token", r.Header.Get("Authorization"))
		var req capturedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handler(req)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client := New(srv.URL, "test-token", "111")
	return srv, client
}

func TestMe(t *testing.T) {
	_, client := newTestServer(t, func(req capturedRequest) (int, string) {
		require.Contains(t, req.Query, "me {")
		return 200, `{"data":{"me":{"id":12345,"name":"Jane Dev","email":"jane@example.com"}}}`
	})

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12345", user.ID)
	assert.Equal(t, "Jane Dev", user.Name)
}

func TestAuthErrorKind(t *testing.T) {
	_, client := newTestServer(t, func(req capturedRequest) (int, string) {
		return 401, `{}`
	})

	_, err := client.Me(context.Background())
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindAuth, rerr.Kind)
}

func TestGraphQLErrorKind(t *testing.T) {
	_, client := newTestServer(t, func(req capturedRequest) (int, string) {
		return 200, `{"errors":[{"message":"complexity budget exhausted"}]}`
	})

	_, err := client.Me(context.Background())
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindAPI, rerr.Kind)
	assert.Contains(t, rerr.Error(), "complexity budget exhausted")
}

func TestNetworkErrorKind(t *testing.T) {
	srv, client := newTestServer(t, func(req capturedRequest) (int, string) { return 200, `{}` })
	srv.Close()

	_, err := client.Me(context.Background())
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindNetwork, rerr.Kind)
}

const groupsBody = `{"data":{"boards":[{"groups":[{"id":"g2025","title":"2025"},{"id":"g2024","title":"2024"}]}]}}`

func itemsBody(items string) string {
	return `{"data":{"boards":[{"groups":[{"items_page":{"items":[` + items + `]}}]}]}}`
}

const itemJSON = `{
	"id":"901",
	"name":"Acme - ACME-1",
	"column_values":[
		{"id":"date4","text":"2025-03-12","value":""},
		{"id":"status","text":"Billable","value":"{\"index\":1}"},
		{"id":"text__1","text":"Acme","value":""},
		{"id":"text8__1","text":"ACME-1","value":""},
		{"id":"numbers__1","text":"7.5","value":""},
		{"id":"text2__1","text":"sprint work","value":""}
	]
}`

func TestClaimsBetween(t *testing.T) {
	outOfRange := strings.Replace(itemJSON, "2025-03-12", "2025-01-02", 1)
	outOfRange = strings.Replace(outOfRange, `"id":"901"`, `"id":"902"`, 1)
	_, client := newTestServer(t, func(req capturedRequest) (int, string) {
		if strings.Contains(req.Query, "items_page") {
			require.Contains(t, req.Query, `"g2025"`)
			return 200, itemsBody(itemJSON + "," + outOfRange)
		}
		return 200, groupsBody
	})

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	got, err := client.ClaimsBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)

	entry := got[0]
	assert.Equal(t, "901", entry.ID)
	assert.Equal(t, claims.ActivityBillable, entry.Activity)
	assert.Equal(t, "Acme", entry.Customer)
	assert.Equal(t, "ACME-1", entry.WorkItem)
	assert.Equal(t, 7.5, entry.Hours)
	assert.Equal(t, "sprint work", entry.Comment)
}

func TestGroupFallback(t *testing.T) {
	var itemsQuery string
	_, client := newTestServer(t, func(req capturedRequest) (int, string) {
		if strings.Contains(req.Query, "items_page") {
			itemsQuery = req.Query
			return 200, itemsBody("")
		}
		return 200, `{"data":{"boards":[{"groups":[{"id":"g2024","title":"2024"}]}]}}`
	})

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := client.ClaimsBetween(context.Background(), from, from)
	require.NoError(t, err)
	assert.Contains(t, itemsQuery, fallbackGroupID)
}

func TestCreateClaim(t *testing.T) {
	var createVars map[string]any
	_, client := newTestServer(t, func(req capturedRequest) (int, string) {
		if strings.Contains(req.Query, "create_item") {
			createVars = req.Variables
			return 200, `{"data":{"create_item":{"id":"777"}}}`
		}
		return 200, groupsBody
	})

	entry := claims.ClaimEntry{
		Date:     time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Activity: claims.ActivityBillable,
		Customer: "Acme",
		WorkItem: "ACME-1",
		Hours:    8,
	}
	created, err := client.CreateClaim(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, "777", created.ID)
	assert.Equal(t, "Acme - ACME-1", createVars["name"])
	assert.Equal(t, "g2025", createVars["group"])

	values, ok := createVars["values"].(string)
	require.True(t, ok)
	assert.Contains(t, values, `"date4":{"date":"2025-03-12"}`)
	assert.Contains(t, values, `"status":{"index":1}`)
}

func TestUpdateClaimRequiresID(t *testing.T) {
	_, client := newTestServer(t, func(req capturedRequest) (int, string) { return 200, `{}` })

	err := client.UpdateClaim(context.Background(), claims.ClaimEntry{})
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, KindNotFound, rerr.Kind)
}

func TestDeleteClaim(t *testing.T) {
	var deleted string
	_, client := newTestServer(t, func(req capturedRequest) (int, string) {
		if strings.Contains(req.Query, "delete_item") {
			deleted, _ = req.Variables["item"].(string)
			return 200, `{"data":{"delete_item":{"id":"55"}}}`
		}
		return 200, `{}`
	})

	require.NoError(t, client.DeleteClaim(context.Background(), "55"))
	assert.Equal(t, "55", deleted)
}

func TestEntryFromItemDefaultsActivity(t *testing.T) {
	it := item{
		ID:   "1",
		Name: "Acme - ACME-1",
		ColumnValues: []columnValue{
			{ID: colDate, Text: "2025-03-12"},
		},
	}
	entry, err := entryFromItem(it)
	require.NoError(t, err)
	assert.Equal(t, claims.DefaultActivity, entry.Activity)
	assert.Equal(t, "Acme", entry.Customer)
}

func TestEntryFromItemRejectsMissingDate(t *testing.T) {
	_, err := entryFromItem(item{ID: "1", Name: "x - y"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
