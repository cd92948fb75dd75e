package workflow

import (
	"errors"
	"testing"
	"time"

	"fire-department-api/models"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func pendingApp() models.CertificateApplication {
	applied := testNow.Add(-48 * time.Hour)
	return models.CertificateApplication{
		ApplicationID:    1,
		FullName:         "A. Citizen",
		NIC:              "901234567V",
		ServiceType:      ServiceFirePrevention,
		ConstructionType: ConstructionResidential,
		UrgencyLevel:     UrgencyNormal,
		Status:           string(StatusPending),
		AppliedDate:      &applied,
	}
}

func mustApply(t *testing.T, app models.CertificateApplication, action Action, in Input) models.CertificateApplication {
	t.Helper()
	out, err := Apply(app, action, in, testNow)
	if err != nil {
		t.Fatalf("Apply(%s) returned error: %v", action, err)
	}
	return out
}

func TestApprovePendingSetsApprovedAt(t *testing.T) {
	out := mustApply(t, pendingApp(), ActionApprove, Input{})

	if out.Status != string(StatusApproved) {
		t.Fatalf("expected approved status, got %s", out.Status)
	}
	if out.ApprovedAt == nil || !out.ApprovedAt.Equal(testNow) {
		t.Fatalf("expected approvedAt %v, got %v", testNow, out.ApprovedAt)
	}
}

func TestRejectPendingSetsReasonAndTimestamp(t *testing.T) {
	out := mustApply(t, pendingApp(), ActionReject, Input{Reason: "Missing plans"})

	if out.Status != string(StatusRejected) {
		t.Fatalf("expected rejected status, got %s", out.Status)
	}
	if out.RejectionReason == nil || *out.RejectionReason != "Missing plans" {
		t.Fatalf("unexpected rejection reason: %v", out.RejectionReason)
	}
	if out.RejectedAt == nil || !out.RejectedAt.Equal(testNow) {
		t.Fatalf("expected rejectedAt %v, got %v", testNow, out.RejectedAt)
	}
}

func TestAssignPaymentFromApproved(t *testing.T) {
	approved := mustApply(t, pendingApp(), ActionApprove, Input{})

	out := mustApply(t, approved, ActionAssignPayment, Input{Amount: 1500})
	if out.Status != string(StatusPaymentAssigned) {
		t.Fatalf("expected payment_assigned status, got %s", out.Status)
	}
	if out.Payment == nil || *out.Payment != 1500 {
		t.Fatalf("unexpected payment: %v", out.Payment)
	}
}

func TestMarkInspectedFromPaymentAssigned(t *testing.T) {
	app := mustApply(t, pendingApp(), ActionApprove, Input{})
	app = mustApply(t, app, ActionAssignPayment, Input{Amount: 1500})

	out := mustApply(t, app, ActionMarkInspected, Input{Notes: "Passed inspection"})
	if out.Status != string(StatusInspected) {
		t.Fatalf("expected inspected status, got %s", out.Status)
	}
	if out.InspectionNotes == nil || *out.InspectionNotes != "Passed inspection" {
		t.Fatalf("unexpected inspection notes: %v", out.InspectionNotes)
	}
	if out.InspectionDate == nil || !out.InspectionDate.Equal(testNow) {
		t.Fatalf("expected inspectionDate %v, got %v", testNow, out.InspectionDate)
	}
}

func TestReactivateClearsRejectionFields(t *testing.T) {
	rejected := mustApply(t, pendingApp(), ActionReject, Input{Reason: "X"})

	out := mustApply(t, rejected, ActionReactivate, Input{})
	if out.Status != string(StatusPending) {
		t.Fatalf("expected pending status, got %s", out.Status)
	}
	if out.RejectionReason != nil {
		t.Fatalf("expected cleared rejection reason, got %v", *out.RejectionReason)
	}
	if out.RejectedAt != nil {
		t.Fatalf("expected cleared rejectedAt, got %v", out.RejectedAt)
	}

	// Re-rejecting with a new reason succeeds independently of the first.
	again := mustApply(t, out, ActionReject, Input{Reason: "still incomplete"})
	if again.RejectionReason == nil || *again.RejectionReason != "still incomplete" {
		t.Fatalf("unexpected second rejection reason: %v", again.RejectionReason)
	}
}

func TestApproveAndRejectOnlyFromPending(t *testing.T) {
	states := []Status{StatusApproved, StatusRejected, StatusPaymentAssigned, StatusInspected}
	for _, from := range states {
		app := pendingApp()
		app.Status = string(from)
		if from == StatusRejected {
			reason := "r"
			app.RejectionReason = &reason
		}
		if from == StatusPaymentAssigned || from == StatusInspected {
			amount := 1500.0
			app.Payment = &amount
		}

		if _, err := Apply(app, ActionApprove, Input{}, testNow); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("approve from %s: expected ErrInvalidTransition, got %v", from, err)
		}
		if _, err := Apply(app, ActionReject, Input{Reason: "because"}, testNow); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("reject from %s: expected ErrInvalidTransition, got %v", from, err)
		}
	}
}

func TestRejectRequiresReason(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusApproved, StatusInspected} {
		app := pendingApp()
		app.Status = string(status)

		_, err := Apply(app, ActionReject, Input{Reason: "   "}, testNow)
		if !errors.Is(err, ErrMissingRequiredField) {
			t.Fatalf("reject without reason from %s: expected ErrMissingRequiredField, got %v", status, err)
		}
	}
}

func TestAssignPaymentRejectsNonPositiveAmounts(t *testing.T) {
	approved := mustApply(t, pendingApp(), ActionApprove, Input{})

	for _, amount := range []float64{0, -5} {
		_, err := Apply(approved, ActionAssignPayment, Input{Amount: amount}, testNow)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestAssignPaymentRequiresApprovedState(t *testing.T) {
	_, err := Apply(pendingApp(), ActionAssignPayment, Input{Amount: 1000}, testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestInspectionRequiresPaymentAssigned(t *testing.T) {
	approved := mustApply(t, pendingApp(), ActionApprove, Input{})

	_, err := Apply(approved, ActionMarkInspected, Input{Notes: "notes"}, testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for inspection before payment, got %v", err)
	}
}

func TestFailedTransitionLeavesRecordUnchanged(t *testing.T) {
	app := mustApply(t, pendingApp(), ActionApprove, Input{})

	for i := 0; i < 3; i++ {
		out, err := Apply(app, ActionApprove, Input{}, testNow)
		if err == nil {
			t.Fatalf("expected repeat approve to fail")
		}
		if out.Status != app.Status {
			t.Fatalf("status mutated on failure: %s != %s", out.Status, app.Status)
		}
		if out.Version != app.Version || out.Payment != app.Payment {
			t.Fatalf("record mutated on failed transition")
		}
		app = out
	}
}

func TestInspectedIsTerminal(t *testing.T) {
	app := mustApply(t, pendingApp(), ActionApprove, Input{})
	app = mustApply(t, app, ActionAssignPayment, Input{Amount: 2400})
	app = mustApply(t, app, ActionMarkInspected, Input{Notes: "done"})

	actions := []Action{ActionApprove, ActionReject, ActionAssignPayment, ActionMarkInspected, ActionReactivate}
	inputs := []Input{{}, {Reason: "r"}, {Amount: 10}, {Notes: "n"}, {}}
	for i, action := range actions {
		if _, err := Apply(app, action, inputs[i], testNow); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s on inspected: expected ErrInvalidTransition, got %v", action, err)
		}
	}
}

func TestReactivateOnlyFromRejected(t *testing.T) {
	_, err := Apply(pendingApp(), ActionReactivate, Input{}, testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestParseStatusAndAction(t *testing.T) {
	if _, err := ParseStatus("payment_assigned"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseStatus("archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if _, err := ParseAction(" Approve "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseAction("escalate"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestValidateCatchesInconsistentRecords(t *testing.T) {
	app := pendingApp()
	if err := Validate(app); err != nil {
		t.Fatalf("pending record should validate: %v", err)
	}

	app.Status = string(StatusRejected)
	if err := Validate(app); err == nil {
		t.Fatalf("rejected without reason should fail validation")
	}

	app = pendingApp()
	app.Status = string(StatusPaymentAssigned)
	if err := Validate(app); err == nil {
		t.Fatalf("payment_assigned without payment should fail validation")
	}

	app = pendingApp()
	app.Status = string(StatusInspected)
	amount := 1200.0
	app.Payment = &amount
	if err := Validate(app); err == nil {
		t.Fatalf("inspected without notes should fail validation")
	}
}

func TestValidateChecksTimestampsAgainstStatus(t *testing.T) {
	// Every record Apply produces must validate.
	app := mustApply(t, pendingApp(), ActionApprove, Input{})
	if err := Validate(app); err != nil {
		t.Fatalf("approved record should validate: %v", err)
	}
	app = mustApply(t, app, ActionAssignPayment, Input{Amount: 1500})
	app = mustApply(t, app, ActionMarkInspected, Input{Notes: "passed"})
	if err := Validate(app); err != nil {
		t.Fatalf("inspected record should validate: %v", err)
	}

	rejected := mustApply(t, pendingApp(), ActionReject, Input{Reason: "incomplete"})
	if err := Validate(rejected); err != nil {
		t.Fatalf("rejected record should validate: %v", err)
	}
	if err := Validate(mustApply(t, rejected, ActionReactivate, Input{})); err != nil {
		t.Fatalf("reactivated record should validate: %v", err)
	}

	// Externally loaded records with stamps that contradict the status.
	bad := pendingApp()
	bad.Status = string(StatusApproved)
	if err := Validate(bad); err == nil {
		t.Fatalf("approved without approved_at should fail validation")
	}

	bad = pendingApp()
	stamp := testNow
	bad.ApprovedAt = &stamp
	if err := Validate(bad); err == nil {
		t.Fatalf("pending with approved_at should fail validation")
	}

	bad = pendingApp()
	bad.RejectedAt = &stamp
	if err := Validate(bad); err == nil {
		t.Fatalf("pending with rejected_at should fail validation")
	}

	bad = mustApply(t, pendingApp(), ActionReject, Input{Reason: "incomplete"})
	bad.RejectedAt = nil
	if err := Validate(bad); err == nil {
		t.Fatalf("rejected without rejected_at should fail validation")
	}

	bad = mustApply(t, mustApply(t, pendingApp(), ActionApprove, Input{}), ActionAssignPayment, Input{Amount: 900})
	bad.InspectionDate = &stamp
	if err := Validate(bad); err == nil {
		t.Fatalf("payment_assigned with inspection_date should fail validation")
	}
}
