package quota

// Severity classifies a threshold-crossing alert.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// WarningThreshold is the usage percentage at which a warning alert fires.
const WarningThreshold = 80.0

// Alert is a threshold crossing derived from a LimitResult. Deduplication
// and acknowledgement state across evaluations belong to the caller.
type Alert struct {
	Resource   Resource `json:"resource"`
	Severity   Severity `json:"severity"`
	Current    int64    `json:"current"`
	Max        int64    `json:"max"`
	Percentage float64  `json:"percentage"`
}

// EvaluateAlerts derives alerts from a batch of limit results. Each resource
// yields at most one alert per severity per call: critical when the limit is
// exceeded, warning when usage is at or above WarningThreshold. Unlimited
// resources never alert.
func EvaluateAlerts(results []LimitResult) []Alert {
	seen := make(map[Resource]map[Severity]bool, len(results))
	alerts := make([]Alert, 0, len(results))

	emit := func(r LimitResult, sev Severity) {
		if seen[r.Resource][sev] {
			return
		}
		if seen[r.Resource] == nil {
			seen[r.Resource] = make(map[Severity]bool, 2)
		}
		seen[r.Resource][sev] = true

		alerts = append(alerts, Alert{
			Resource:   r.Resource,
			Severity:   sev,
			Current:    r.Current,
			Max:        r.Max,
			Percentage: r.Percentage,
		})
	}

	for _, r := range results {
		if r.Unlimited {
			continue
		}
		if r.Exceeded {
			emit(r, SeverityCritical)
			continue
		}
		if r.Percentage >= WarningThreshold {
			emit(r, SeverityWarning)
		}
	}

	return alerts
}
