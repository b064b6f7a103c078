// Package engine grades probe readings against fixed thresholds.
package engine

import "simsiac/internal/collector"

const (
	StatusHealthy  = "OK"
	StatusWarning  = "WARN"
	StatusCritical = "CRIT"
	StatusUnknown  = "N/A"

	CPUWarningThreshold   = 70.0
	CPUCriticalThreshold  = 90.0
	RAMWarningThreshold   = 70.0
	RAMCriticalThreshold  = 90.0
	DiskWarningThreshold  = 80.0
	DiskCriticalThreshold = 90.0
	LoadWarningThreshold  = 4.0
	LoadCriticalThreshold = 8.0
)

type threshold struct {
	warning, critical float64
}

var thresholds = map[string]threshold{
	"cpu":    {CPUWarningThreshold, CPUCriticalThreshold},
	"memory": {RAMWarningThreshold, RAMCriticalThreshold},
	"disk":   {DiskWarningThreshold, DiskCriticalThreshold},
	"load":   {LoadWarningThreshold, LoadCriticalThreshold},
}

// CheckResult is a graded reading.
type CheckResult struct {
	Name   string
	Value  float64
	Status string
}

func getStatus(value, warning, critical float64) string {
	if value > critical {
		return StatusCritical
	}
	if value > warning {
		return StatusWarning
	}
	return StatusHealthy
}

// Evaluate grades a reading. Probes without thresholds, such as uptime, are
// always healthy.
func Evaluate(r collector.Reading) CheckResult {
	res := CheckResult{Name: r.Probe, Value: r.Value, Status: StatusHealthy}
	if t, ok := thresholds[r.Probe]; ok {
		res.Status = getStatus(r.Value, t.warning, t.critical)
	}
	return res
}
