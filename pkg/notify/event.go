package notify

import (
	"encoding/json"
	"fmt"
)

// KindOrderCreated is the only event kind the push server currently
// emits. The redis channel name doubles as the kind.
const KindOrderCreated = "ORDER_CREATED"

// Event is one push-server message. Delivery is at most once per
// connected session: no acknowledgment, no replay, and no ordering
// guarantee relative to in-flight CRUD calls. Data stays raw until a
// kind-specific decoder is applied.
type Event struct {
	Kind    string          `json:"-"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OrderCreated is the payload of an ORDER_CREATED event, ready for a
// toast: who bought what for how much.
type OrderCreated struct {
	CustomerName string  `json:"customerName"`
	ProductName  string  `json:"productName"`
	TotalAmount  float64 `json:"totalAmount"`
}

// OrderCreated decodes the event payload as an order-created
// notification.
func (e Event) OrderCreated() (*OrderCreated, error) {
	if e.Kind != KindOrderCreated {
		return nil, fmt.Errorf("event kind %q is not %s", e.Kind, KindOrderCreated)
	}
	var oc OrderCreated
	if err := json.Unmarshal(e.Data, &oc); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", KindOrderCreated, err)
	}
	return &oc, nil
}
