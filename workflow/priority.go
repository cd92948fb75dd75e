package workflow

import (
	"sort"
	"time"

	"fire-department-api/models"
)

// Urgency levels. Ordering only; urgency never gates a transition.
const (
	UrgencyNormal   = "normal"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

var urgencyRank = map[string]int{
	UrgencyNormal:   0,
	UrgencyHigh:     1,
	UrgencyCritical: 2,
}

// DaysSinceApproval returns the whole days elapsed since the application
// was approved, or 0 when it has not been approved yet.
func DaysSinceApproval(app models.CertificateApplication, now time.Time) int {
	if app.ApprovedAt == nil {
		return 0
	}
	days := int(now.Sub(*app.ApprovedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// SortForInspection orders applications for the inspection queue:
// urgency first (critical > high > normal), then longest-waiting since
// approval. The sort is stable so equal keys keep their fetch order.
func SortForInspection(apps []models.CertificateApplication, now time.Time) {
	sort.SliceStable(apps, func(i, j int) bool {
		ri := urgencyRank[normalizeType(apps[i].UrgencyLevel)]
		rj := urgencyRank[normalizeType(apps[j].UrgencyLevel)]
		if ri != rj {
			return ri > rj
		}
		return DaysSinceApproval(apps[i], now) > DaysSinceApproval(apps[j], now)
	})
}
