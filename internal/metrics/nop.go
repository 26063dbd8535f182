package metrics

import "time"

// NopMetrics discards everything
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

// NewNop creates a no-op collector
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

func (n *NopMetrics) RecordCampaign(_ string, _ bool) {}

func (n *NopMetrics) RecordFailure(_ string) {}

func (n *NopMetrics) ObserveSweep(_ string, _ time.Duration) {}
