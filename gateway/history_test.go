package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/example/adoreshop/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeJournal struct {
	logs     []*repository.AuditLog
	err      error
	clientID string
	limit    int64
}

func (j *fakeJournal) GetAuditLogs(ctx context.Context, clientID string, limit int64) ([]*repository.AuditLog, error) {
	j.clientID = clientID
	j.limit = limit
	return j.logs, j.err
}

func TestCartHistory(t *testing.T) {
	env := setupGateway(t)
	at := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	journal := &fakeJournal{logs: []*repository.AuditLog{
		{Action: "payment_confirmed", EntityID: testClient, Data: bson.M{"order_ref": "ADR-7"}, CreatedAt: at},
		{Action: "cart_item_added", EntityID: testClient, Data: bson.M{"product": "Tie"}, CreatedAt: at.Add(-time.Minute)},
	}}
	env.gw.UseJournal(journal)
	env.login(t)

	w := env.do(t, http.MethodGet, "/api/v1/cart/history", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, testClient, journal.clientID)
	assert.Equal(t, int64(defaultHistoryLimit), journal.limit)
	events := decode(t, w)["events"].([]interface{})
	require.Len(t, events, 2)
	first := events[0].(map[string]interface{})
	assert.Equal(t, "payment_confirmed", first["type"])
	assert.Equal(t, "ADR-7", first["data"].(map[string]interface{})["order_ref"])
	assert.Equal(t, "2024-05-01T03:00:00Z", first["at"])

	w = env.do(t, http.MethodGet, "/api/v1/cart/history?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), journal.limit)
}

func TestCartHistoryValidation(t *testing.T) {
	env := setupGateway(t)
	env.gw.UseJournal(&fakeJournal{})
	env.login(t)

	w := env.do(t, http.MethodGet, "/api/v1/cart/history?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "max", decode(t, w)["fields"].(map[string]interface{})["limit"])

	w = env.do(t, http.MethodGet, "/api/v1/cart/history?limit=lots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_query", decode(t, w)["error"])
}

func TestCartHistoryUnavailable(t *testing.T) {
	env := setupGateway(t)
	env.login(t)

	w := env.do(t, http.MethodGet, "/api/v1/cart/history", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	env.gw.UseJournal(&fakeJournal{err: errors.New("mongo down")})
	w = env.do(t, http.MethodGet, "/api/v1/cart/history", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal", decode(t, w)["error"])
}

func TestCartHistoryRequiresLogin(t *testing.T) {
	env := setupGateway(t)
	env.gw.UseJournal(&fakeJournal{})

	w := env.do(t, http.MethodGet, "/api/v1/cart/history", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
