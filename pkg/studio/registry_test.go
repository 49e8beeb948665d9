package studio

import (
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/adoreshop/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_IsolatesClients(t *testing.T) {
	system := actor.NewActorSystem()
	reg := NewRegistry(system, Deps{}, time.Second)
	defer system.Shutdown()
	defer reg.Close()

	_, err := reg.Request("a", &QuickAdd{EntryID: "1"})
	require.NoError(t, err)

	reply, err := reg.Request("b", &GetOrder{})
	require.NoError(t, err)

	assert.Empty(t, reply.Order.Items)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_RemoveDiscardsState(t *testing.T) {
	system := actor.NewActorSystem()
	reg := NewRegistry(system, Deps{}, time.Second)
	defer system.Shutdown()
	defer reg.Close()

	_, err := reg.Request("a", &QuickAdd{EntryID: "2"})
	require.NoError(t, err)

	reg.Remove("a")
	assert.Equal(t, 0, reg.Len())

	reply, err := reg.Request("a", &GetOrder{})
	require.NoError(t, err)
	assert.Equal(t, order.StageIdle, reply.Order.Stage)
	assert.Empty(t, reply.Order.Items)
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	system := actor.NewActorSystem()
	reg := NewRegistry(system, Deps{}, time.Second)
	defer system.Shutdown()

	reg.Remove("nobody")

	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_UnknownMessageTimesOut(t *testing.T) {
	system := actor.NewActorSystem()
	reg := NewRegistry(system, Deps{}, 50*time.Millisecond)
	defer system.Shutdown()
	defer reg.Close()

	_, err := reg.Request("a", "hello")

	assert.Error(t, err)
}

func TestRegistry_RequestWaitsForStopToFinish(t *testing.T) {
	system := actor.NewActorSystem()
	reg := NewRegistry(system, Deps{}, time.Second)
	defer system.Shutdown()
	defer reg.Close()

	done := make(chan struct{})
	reg.mu.Lock()
	reg.stopping["a"] = done
	reg.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		_, err := reg.Request("a", &GetOrder{})
		errCh <- err
	}()

	select {
	case err := <-errCh:
		t.Fatalf("request finished while the old storefront was stopping: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 0, reg.Len())

	reg.mu.Lock()
	delete(reg.stopping, "a")
	close(done)
	reg.mu.Unlock()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("request never resumed")
	}
	assert.Equal(t, 1, reg.Len())
}
