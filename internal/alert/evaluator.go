package alert

import (
	"time"

	"stockward/internal/model"
)

// Metric names the evaluator knows about.
const (
	MetricErrorRate    = "error_rate"
	MetricResponseTime = "response_time"
)

// Thresholds is the alert policy configuration. Low-stock minimums are
// per-product (Product.MinStock) and passed alongside the stock record.
type Thresholds struct {
	ExpiryWarningDays     int
	ErrorRateThreshold    float64
	ResponseTimeThreshold float64 // seconds
}

// Evaluator decides whether a post-mutation stock record or a metric sample
// crosses a configured threshold. It keeps no state between calls: repeated
// breaches re-alert on every call, and deduplication is a downstream concern.
type Evaluator struct {
	cfg Thresholds
	now func() time.Time
}

func NewEvaluator(cfg Thresholds) *Evaluator {
	return &Evaluator{cfg: cfg, now: time.Now}
}

// EvaluateStock inspects a stock record against the product's minimum and the
// expiry policy. Returns nil when no threshold is crossed. Low stock takes
// precedence when both would fire.
func (e *Evaluator) EvaluateStock(st *model.Stock, minStock int) *Event {
	now := e.now()

	if st.Quantity <= minStock {
		severity := SeverityWarning
		if st.Quantity == 0 {
			severity = SeverityCritical
		}
		return &Event{
			Kind:        KindLowStock,
			Severity:    severity,
			Timestamp:   now,
			ProductID:   st.ProductID,
			WarehouseID: st.WarehouseID,
			Quantity:    st.Quantity,
		}
	}

	if st.ExpiryDate != nil {
		// Days may be negative — already-expired stock still alerts.
		days := int(st.ExpiryDate.Sub(now).Hours() / 24)
		if days <= e.cfg.ExpiryWarningDays {
			severity := SeverityWarning
			if days <= 0 {
				severity = SeverityCritical
			}
			return &Event{
				Kind:          KindExpiryWarning,
				Severity:      severity,
				Timestamp:     now,
				ProductID:     st.ProductID,
				WarehouseID:   st.WarehouseID,
				Quantity:      st.Quantity,
				ExpiryDate:    st.ExpiryDate,
				DaysRemaining: days,
			}
		}
	}

	return nil
}

// EvaluateMetric inspects one system metric sample. Unknown metric names
// never alert.
func (e *Evaluator) EvaluateMetric(name string, value float64) *Event {
	switch name {
	case MetricErrorRate:
		if value > e.cfg.ErrorRateThreshold {
			return &Event{
				Kind:      KindHighErrorRate,
				Severity:  SeverityCritical,
				Timestamp: e.now(),
				Value:     value,
				Threshold: e.cfg.ErrorRateThreshold,
			}
		}
	case MetricResponseTime:
		if value > e.cfg.ResponseTimeThreshold {
			return &Event{
				Kind:      KindSlowResponse,
				Severity:  SeverityWarning,
				Timestamp: e.now(),
				Value:     value,
				Threshold: e.cfg.ResponseTimeThreshold,
			}
		}
	}
	return nil
}
