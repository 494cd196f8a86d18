package notify

import (
	"sync/atomic"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// Handler receives one event. Handlers run on the dispatch actor's
// mailbox, one at a time; a slow handler delays later events.
type Handler func(Event)

// Subscription identifies one registered handler for unsubscription.
type Subscription struct {
	Kind string
	ID   int64
}

// Hub fans events out to handlers registered per event kind. Dispatch
// runs through a single actor, so handler registration and event
// delivery never race and no lock is held while handlers run.
type Hub struct {
	system *actor.ActorSystem
	pid    *actor.PID
	logger *zap.Logger
	nextID atomic.Int64
}

type subscribeMsg struct {
	kind    string
	id      int64
	handler Handler
}

type unsubscribeMsg struct {
	kind string
	id   int64
}

type eventMsg struct {
	event Event
}

// dispatchActor holds the handler registry. All mutation and dispatch
// happens inside Receive.
type dispatchActor struct {
	handlers map[string]map[int64]Handler
	logger   *zap.Logger
}

func (a *dispatchActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.handlers = make(map[string]map[int64]Handler)
		a.logger.Info("Notification dispatcher started")

	case *subscribeMsg:
		if a.handlers[msg.kind] == nil {
			a.handlers[msg.kind] = make(map[int64]Handler)
		}
		a.handlers[msg.kind][msg.id] = msg.handler

	case *unsubscribeMsg:
		delete(a.handlers[msg.kind], msg.id)

	case *eventMsg:
		hs := a.handlers[msg.event.Kind]
		if len(hs) == 0 {
			a.logger.Debug("No subscribers for event", zap.String("kind", msg.event.Kind))
			return
		}
		for _, h := range hs {
			h(msg.event)
		}

	case *actor.Stopped:
		a.logger.Info("Notification dispatcher stopped")
	}
}

func NewHub(logger *zap.Logger) (*Hub, error) {
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return &dispatchActor{logger: logger.Named("notify-dispatch")}
	})
	pid, err := system.Root.SpawnNamed(props, "notify-dispatch")
	if err != nil {
		return nil, err
	}
	return &Hub{
		system: system,
		pid:    pid,
		logger: logger,
	}, nil
}

// Subscribe registers handler for events of the given kind.
func (h *Hub) Subscribe(kind string, handler Handler) Subscription {
	id := h.nextID.Add(1)
	h.system.Root.Send(h.pid, &subscribeMsg{kind: kind, id: id, handler: handler})
	return Subscription{Kind: kind, ID: id}
}

// Unsubscribe removes a previously registered handler. Events already
// in the mailbox may still reach it.
func (h *Hub) Unsubscribe(sub Subscription) {
	h.system.Root.Send(h.pid, &unsubscribeMsg{kind: sub.Kind, id: sub.ID})
}

// Publish delivers one event to all handlers subscribed to its kind.
func (h *Hub) Publish(ev Event) {
	h.system.Root.Send(h.pid, &eventMsg{event: ev})
}

// Close stops the dispatch actor, waiting for queued events to drain.
func (h *Hub) Close() {
	_ = h.system.Root.PoisonFuture(h.pid).Wait()
	h.system.Shutdown()
}
