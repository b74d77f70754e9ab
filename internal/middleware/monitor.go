package middleware

import (
	"sync"
	"time"

	"stockward/internal/alert"

	"github.com/gin-gonic/gin"
)

// minSamples before an error-rate figure is considered meaningful.
const monitorMinSamples = 20

// Monitor samples request latency and server error rate and feeds them to
// the threshold evaluator. Breaches become system events on the dispatcher;
// the request itself is never delayed by delivery.
type Monitor struct {
	evaluator *alert.Evaluator
	alerts    interface{ Dispatch(ev alert.Event) }

	mu        sync.Mutex
	windowEnd time.Time
	total     int
	errored   int
}

func NewMonitor(evaluator *alert.Evaluator, alerts interface{ Dispatch(ev alert.Event) }) *Monitor {
	return &Monitor{evaluator: evaluator, alerts: alerts}
}

// Handler returns the gin middleware.
func (m *Monitor) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.observe(time.Since(start), c.Writer.Status() >= 500)
	}
}

func (m *Monitor) observe(latency time.Duration, errored bool) {
	if ev := m.evaluator.EvaluateMetric(alert.MetricResponseTime, latency.Seconds()); ev != nil {
		m.alerts.Dispatch(*ev)
	}

	m.mu.Lock()
	now := time.Now()
	if now.After(m.windowEnd) {
		m.windowEnd = now.Add(time.Minute)
		m.total = 0
		m.errored = 0
	}
	m.total++
	if errored {
		m.errored++
	}
	total, failed := m.total, m.errored
	m.mu.Unlock()

	if total < monitorMinSamples {
		return
	}
	if ev := m.evaluator.EvaluateMetric(alert.MetricErrorRate, float64(failed)/float64(total)); ev != nil {
		m.alerts.Dispatch(*ev)
	}
}
