package workflow

import (
	"testing"
	"time"

	"fire-department-api/models"
)

func queuedApp(id int, urgency string, approvedDaysAgo int) models.CertificateApplication {
	approved := testNow.Add(-time.Duration(approvedDaysAgo) * 24 * time.Hour)
	amount := 1500.0
	return models.CertificateApplication{
		ApplicationID: id,
		UrgencyLevel:  urgency,
		Status:        string(StatusPaymentAssigned),
		Payment:       &amount,
		ApprovedAt:    &approved,
	}
}

func TestSortForInspectionOrdersByUrgencyThenWait(t *testing.T) {
	apps := []models.CertificateApplication{
		queuedApp(1, UrgencyNormal, 30),
		queuedApp(2, UrgencyCritical, 1),
		queuedApp(3, UrgencyHigh, 5),
		queuedApp(4, UrgencyCritical, 10),
		queuedApp(5, UrgencyNormal, 2),
	}

	SortForInspection(apps, testNow)

	want := []int{4, 2, 3, 1, 5}
	for i, id := range want {
		if apps[i].ApplicationID != id {
			t.Fatalf("position %d: expected application %d, got %d", i, id, apps[i].ApplicationID)
		}
	}
}

func TestSortForInspectionIsStableForEqualKeys(t *testing.T) {
	apps := []models.CertificateApplication{
		queuedApp(7, UrgencyHigh, 3),
		queuedApp(8, UrgencyHigh, 3),
	}

	SortForInspection(apps, testNow)

	if apps[0].ApplicationID != 7 || apps[1].ApplicationID != 8 {
		t.Fatalf("equal keys reordered: %d, %d", apps[0].ApplicationID, apps[1].ApplicationID)
	}
}

func TestDaysSinceApproval(t *testing.T) {
	app := queuedApp(1, UrgencyNormal, 9)
	if days := DaysSinceApproval(app, testNow); days != 9 {
		t.Fatalf("expected 9 days, got %d", days)
	}

	app.ApprovedAt = nil
	if days := DaysSinceApproval(app, testNow); days != 0 {
		t.Fatalf("expected 0 days for unapproved application, got %d", days)
	}
}
