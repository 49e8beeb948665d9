package studio

import (
	"fmt"
	"sync"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const actorPrefix = "storefront/"

// Registry spawns one storefront actor per client on first use.
type Registry struct {
	system  *actor.ActorSystem
	deps    Deps
	timeout time.Duration
	logger  *zap.Logger

	mu   sync.Mutex
	pids map[string]*actor.PID

	// stopping holds clients whose actor is still shutting down. The channel
	// closes once its name is free again.
	stopping map[string]chan struct{}
}

func NewRegistry(system *actor.ActorSystem, deps Deps, timeout time.Duration) *Registry {
	deps = deps.withDefaults()
	return &Registry{
		system:   system,
		deps:     deps,
		timeout:  timeout,
		logger:   deps.Logger,
		pids:     make(map[string]*actor.PID),
		stopping: make(map[string]chan struct{}),
	}
}

func (r *Registry) pid(clientID string) (*actor.PID, error) {
	r.mu.Lock()
	for {
		if pid, ok := r.pids[clientID]; ok {
			r.mu.Unlock()
			return pid, nil
		}
		done, ok := r.stopping[clientID]
		if !ok {
			break
		}
		r.mu.Unlock()
		<-done
		r.mu.Lock()
	}
	defer r.mu.Unlock()

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewStorefront(clientID, r.deps)
	})
	pid, err := r.system.Root.SpawnNamed(props, actorPrefix+clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn storefront for %s: %w", clientID, err)
	}
	r.pids[clientID] = pid
	r.logger.Debug("Storefront spawned", zap.String("client_id", clientID), zap.String("pid", pid.Id))
	return pid, nil
}

// Request sends msg to the client's storefront and waits for its reply. The
// returned error is either a transport failure or the Reply's own Err.
func (r *Registry) Request(clientID string, msg interface{}) (*Reply, error) {
	pid, err := r.pid(clientID)
	if err != nil {
		return nil, err
	}

	result, err := r.system.Root.RequestFuture(pid, msg, r.timeout).Result()
	if err != nil {
		return nil, fmt.Errorf("storefront %s: %w", clientID, err)
	}

	reply, ok := result.(*Reply)
	if !ok {
		return nil, fmt.Errorf("storefront %s: %w: %T", clientID, ErrUnexpectedReply, result)
	}
	return reply, reply.Err
}

// Remove stops the client's storefront, discarding its cart and design.
func (r *Registry) Remove(clientID string) {
	r.mu.Lock()
	pid, ok := r.pids[clientID]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.pids, clientID)
	done := make(chan struct{})
	r.stopping[clientID] = done
	r.mu.Unlock()

	if err := r.system.Root.StopFuture(pid).Wait(); err != nil {
		r.logger.Warn("Failed to stop storefront", zap.String("client_id", clientID), zap.Error(err))
	}

	r.mu.Lock()
	delete(r.stopping, clientID)
	close(done)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pids)
}

// Close stops every storefront.
func (r *Registry) Close() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.pids))
	for id := range r.pids {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		r.Remove(id)
	}
}
