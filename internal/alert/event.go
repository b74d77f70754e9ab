// Package alert contains the threshold policy that turns ledger state and
// metric samples into alert events, and the dispatcher that delivers those
// events to downstream channels.
package alert

import "time"

// Kind identifies the threshold that was breached.
type Kind string

const (
	KindLowStock      Kind = "low_stock"
	KindExpiryWarning Kind = "expiry_warning"
	KindHighErrorRate Kind = "high_error_rate"
	KindSlowResponse  Kind = "slow_response"
)

// Severity levels attached to events.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Logical transport channels (mirrored as Redis lists).
const (
	ChannelStockAlerts  = "stock_alerts"
	ChannelSystemEvents = "system_events"
)

// Event is an ephemeral alert message. It is handed to the dispatcher and
// discarded — the core never persists it.
type Event struct {
	Kind      Kind      `json:"type"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`

	// Stock payload (low_stock, expiry_warning)
	ProductID     uint       `json:"product_id,omitempty"`
	WarehouseID   uint       `json:"warehouse_id,omitempty"`
	Quantity      int        `json:"quantity,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	DaysRemaining int        `json:"days_remaining,omitempty"`

	// Metric payload (high_error_rate, slow_response)
	Value     float64 `json:"value,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

// Channel selects the logical transport channel for the event kind.
func (e Event) Channel() string {
	switch e.Kind {
	case KindLowStock, KindExpiryWarning:
		return ChannelStockAlerts
	default:
		return ChannelSystemEvents
	}
}
