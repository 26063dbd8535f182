// Package metrics records simulation counters. The Prometheus collector owns
// its registry so a CLI run can export a textfile without a server.
package metrics

import "time"

// Collector receives simulation events
type Collector interface {
	// RecordCampaign counts a successfully built campaign by type name
	RecordCampaign(campaignType string, degenerate bool)
	// RecordFailure counts a construction failure by error code
	RecordFailure(code string)
	// ObserveSweep records the wall time of a whole sweep
	ObserveSweep(mode string, d time.Duration)
}
