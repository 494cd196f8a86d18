package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub, err := NewHub(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(hub.Close)
	return hub
}

func orderCreatedEvent(t *testing.T, name, product string, amount float64) Event {
	t.Helper()
	data, err := json.Marshal(OrderCreated{
		CustomerName: name,
		ProductName:  product,
		TotalAmount:  amount,
	})
	require.NoError(t, err)
	return Event{
		Kind:    KindOrderCreated,
		Message: "New order created",
		Data:    data,
	}
}

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := newTestHub(t)

	got := make(chan Event, 1)
	hub.Subscribe(KindOrderCreated, func(ev Event) {
		got <- ev
	})

	hub.Publish(orderCreatedEvent(t, "Ada", "Widget", 30.00))

	select {
	case ev := <-got:
		assert.Equal(t, KindOrderCreated, ev.Kind)
		assert.Equal(t, "New order created", ev.Message)

		oc, err := ev.OrderCreated()
		require.NoError(t, err)
		assert.Equal(t, "Ada", oc.CustomerName)
		assert.Equal(t, "Widget", oc.ProductName)
		assert.Equal(t, 30.00, oc.TotalAmount)
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestHubDeliversToAllSubscribersOfKind(t *testing.T) {
	hub := newTestHub(t)

	first := make(chan Event, 1)
	second := make(chan Event, 1)
	hub.Subscribe(KindOrderCreated, func(ev Event) { first <- ev })
	hub.Subscribe(KindOrderCreated, func(ev Event) { second <- ev })

	hub.Publish(orderCreatedEvent(t, "Ada", "Widget", 30.00))

	for _, ch := range []chan Event{first, second} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("a subscriber missed the event")
		}
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := newTestHub(t)

	got := make(chan Event, 4)
	sub := hub.Subscribe(KindOrderCreated, func(ev Event) { got <- ev })

	hub.Publish(orderCreatedEvent(t, "Ada", "Widget", 30.00))
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}

	hub.Unsubscribe(sub)
	// Same mailbox, so the unsubscribe is processed before this publish.
	hub.Publish(orderCreatedEvent(t, "Bob", "Gadget", 12.50))

	select {
	case <-got:
		t.Fatal("delivery after unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestHubDropsEventsOfUnknownKind(t *testing.T) {
	hub := newTestHub(t)

	got := make(chan Event, 1)
	hub.Subscribe(KindOrderCreated, func(ev Event) { got <- ev })

	hub.Publish(Event{Kind: "ORDER_SHIPPED", Message: "nope"})

	select {
	case <-got:
		t.Fatal("subscriber received an event of another kind")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEventOrderCreatedDecode(t *testing.T) {
	ev := Event{Kind: KindOrderCreated, Data: json.RawMessage(`{"customerName":"Ada"`)}
	_, err := ev.OrderCreated()
	assert.Error(t, err, "truncated payload must not decode")

	ev = Event{Kind: "OTHER", Data: json.RawMessage(`{}`)}
	_, err = ev.OrderCreated()
	assert.Error(t, err, "wrong kind must not decode")
}
