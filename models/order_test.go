package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusAccepted, OrderStatusShipped, true},
		{OrderStatusAccepted, OrderStatusCancelled, true},
		{OrderStatusAccepted, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusAccepted, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusAccepted, false},
		{OrderStatusCancelled, OrderStatusShipped, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionTo_UnknownStatus(t *testing.T) {
	assert.False(t, OrderStatus("pending").CanTransitionTo(OrderStatusShipped))
}
