package repository

import (
	"context"
	"testing"
	"time"

	"github.com/example/adoreshop/pkg/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNewAuditLog(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	e := studio.Event{
		Type:     studio.EventPaymentConfirmed,
		ClientID: "c1",
		Data:     map[string]interface{}{"order_ref": "ADR-42", "total": int64(150000)},
		At:       at,
	}

	log := newAuditLog(e)

	assert.Equal(t, "storefront", log.Service)
	assert.Equal(t, "payment_confirmed", log.Action)
	assert.Equal(t, "c1", log.EntityID)
	assert.Equal(t, bson.M{"order_ref": "ADR-42", "total": int64(150000)}, log.Data)
	assert.Equal(t, at.UTC(), log.CreatedAt)
	assert.Empty(t, log.ID)
}

func TestNewAuditLog_DefaultsTimestamp(t *testing.T) {
	log := newAuditLog(studio.Event{Type: studio.EventCartItemAdded, ClientID: "c1"})

	assert.False(t, log.CreatedAt.IsZero())
	assert.NotNil(t, log.Data)
}

func TestNewAuditLog_CopiesData(t *testing.T) {
	data := map[string]interface{}{"item_id": "a"}
	log := newAuditLog(studio.Event{Type: studio.EventCartItemRemoved, Data: data})

	data["item_id"] = "b"

	assert.Equal(t, "a", log.Data["item_id"])
}

func TestMongoRepository_Journal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("record event", func(mt *mtest.T) {
		repo := &MongoRepository{client: mt.Client, collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.RecordEvent(context.Background(), studio.Event{
			Type:     studio.EventCheckoutStarted,
			ClientID: "c1",
			Data:     map[string]interface{}{"total": int64(225000)},
		})

		require.NoError(mt, err)
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
	})

	mt.Run("record event failure", func(mt *mtest.T) {
		repo := &MongoRepository{client: mt.Client, collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 91, Name: "ShutdownInProgress", Message: "shutting down",
		}))

		err := repo.RecordEvent(context.Background(), studio.Event{Type: studio.EventCartItemAdded, ClientID: "c1"})

		assert.ErrorContains(mt, err, "failed to journal cart_item_added")
	})

	mt.Run("get audit logs", func(mt *mtest.T) {
		repo := &MongoRepository{client: mt.Client, collection: mt.Coll}
		at := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "e2"},
				{Key: "service", Value: "storefront"},
				{Key: "action", Value: "payment_confirmed"},
				{Key: "entity_id", Value: "c1"},
				{Key: "data", Value: bson.D{{Key: "order_ref", Value: "ADR-7"}}},
				{Key: "created_at", Value: at},
			},
			bson.D{
				{Key: "_id", Value: "e1"},
				{Key: "service", Value: "storefront"},
				{Key: "action", Value: "cart_item_added"},
				{Key: "entity_id", Value: "c1"},
				{Key: "data", Value: bson.D{{Key: "product", Value: "Tie"}}},
				{Key: "created_at", Value: at.Add(-time.Minute)},
			},
		))

		logs, err := repo.GetAuditLogs(context.Background(), "c1", 10)

		require.NoError(mt, err)
		require.Len(mt, logs, 2)
		assert.Equal(mt, "payment_confirmed", logs[0].Action)
		assert.Equal(mt, "ADR-7", logs[0].Data["order_ref"])
		assert.True(mt, at.Equal(logs[0].CreatedAt))
		assert.Equal(mt, "cart_item_added", logs[1].Action)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, "c1", evt.Command.Lookup("filter", "entity_id").StringValue())
		assert.Equal(mt, int64(10), evt.Command.Lookup("limit").Int64())
	})

	mt.Run("get audit logs failure", func(mt *mtest.T) {
		repo := &MongoRepository{client: mt.Client, collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		_, err := repo.GetAuditLogs(context.Background(), "c1", 10)

		assert.ErrorContains(mt, err, "failed to query journal")
	})
}
