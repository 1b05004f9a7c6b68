//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/securedevx/Bitecraft-footweb/internal/events"
	"github.com/securedevx/Bitecraft-footweb/internal/order"
	"github.com/securedevx/Bitecraft-footweb/internal/testutil"
)

func TestOrderPlacedReachesBoundQueue(t *testing.T) {
	conn := testutil.StartRabbitMQ(t)

	pub, err := events.NewRabbitPublisher(conn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, events.OrderPlacedRoutingKey, events.EventsExchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	o := order.Order{
		ID:        "ORD-INT-TEST",
		CreatedAt: time.Now().UTC(),
		Total:     decimal.RequireFromString("13.50"),
	}
	ctx := events.ContextWithMetadata(context.Background(), events.EnvelopeMetadata{CorrelationID: "it-1"})
	require.NoError(t, pub.PublishOrderPlaced(ctx, o))

	select {
	case d := <-deliveries:
		var env events.EventEnvelope[events.OrderPlacedPayload]
		require.NoError(t, json.Unmarshal(d.Body, &env))
		require.NoError(t, env.Validate(events.OrderPlacedEventName, events.OrderPlacedEventVersion))
		require.Equal(t, "ORD-INT-TEST", env.Payload.OrderID)
		require.Equal(t, "it-1", env.CorrelationID)
	case <-time.After(10 * time.Second):
		t.Fatal("no delivery received")
	}
}
