package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fire-department-api/models"
)

// Application statuses. Pending is the initial state; Rejected can return
// to Pending via Reactivate.
type Status string

const (
	StatusPending         Status = "pending"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusPaymentAssigned Status = "payment_assigned"
	StatusInspected       Status = "inspected"
)

// Actions accepted by Apply.
type Action string

const (
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionAssignPayment Action = "assign_payment"
	ActionMarkInspected Action = "mark_inspected"
	ActionReactivate    Action = "reactivate"
)

// Typed errors. Callers match with errors.Is.
var (
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidAmount        = errors.New("invalid amount")
)

// Input carries the payload for an action. Only the field the action
// needs is read.
type Input struct {
	Reason string  // Reject
	Amount float64 // AssignPayment
	Notes  string  // MarkInspected
}

var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
	StatusApproved: {
		ActionAssignPayment: StatusPaymentAssigned,
	},
	StatusPaymentAssigned: {
		ActionMarkInspected: StatusInspected,
	},
	StatusRejected: {
		ActionReactivate: StatusPending,
	},
	StatusInspected: {},
}

// ParseStatus validates a stored status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending, StatusApproved, StatusRejected, StatusPaymentAssigned, StatusInspected:
		return Status(strings.ToLower(strings.TrimSpace(s))), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// ParseAction validates an action name from a request.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionApprove, ActionReject, ActionAssignPayment, ActionMarkInspected, ActionReactivate:
		return Action(strings.ToLower(strings.TrimSpace(s))), nil
	default:
		return "", fmt.Errorf("unknown action: %s", s)
	}
}

// CanTransition reports whether action is legal from the given status.
// Guards are not evaluated here; Apply checks them.
func CanTransition(from Status, action Action) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[action]
	return ok
}

// Apply runs one transition against a copy of app and returns the updated
// record. On any error the input record is returned unchanged; no field
// is ever partially applied.
func Apply(app models.CertificateApplication, action Action, in Input, now time.Time) (models.CertificateApplication, error) {
	from, err := ParseStatus(app.Status)
	if err != nil {
		return app, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	// Payload guards come first: an empty rejection reason or a
	// non-positive amount is reported as such whatever the current state.
	switch action {
	case ActionReject:
		if strings.TrimSpace(in.Reason) == "" {
			return app, fmt.Errorf("%w: rejection reason is required", ErrMissingRequiredField)
		}
	case ActionAssignPayment:
		if in.Amount <= 0 {
			return app, fmt.Errorf("%w: payment must be greater than zero", ErrInvalidAmount)
		}
	case ActionMarkInspected:
		if strings.TrimSpace(in.Notes) == "" {
			return app, fmt.Errorf("%w: inspection notes are required", ErrMissingRequiredField)
		}
	}

	target, ok := transitions[from][action]
	if !ok {
		return app, fmt.Errorf("%w: cannot %s a %s application", ErrInvalidTransition, action, from)
	}

	if action == ActionMarkInspected && (app.Payment == nil || *app.Payment <= 0) {
		return app, fmt.Errorf("%w: cannot inspect before payment is assigned", ErrInvalidTransition)
	}

	next := app
	next.Status = string(target)

	switch action {
	case ActionApprove:
		t := now
		next.ApprovedAt = &t
	case ActionReject:
		t := now
		reason := strings.TrimSpace(in.Reason)
		next.RejectedAt = &t
		next.RejectionReason = &reason
	case ActionAssignPayment:
		amount := in.Amount
		next.Payment = &amount
	case ActionMarkInspected:
		t := now
		notes := strings.TrimSpace(in.Notes)
		next.InspectionDate = &t
		next.InspectionNotes = &notes
	case ActionReactivate:
		next.RejectionReason = nil
		next.RejectedAt = nil
	}

	return next, nil
}

// Validate checks the status/field invariants on a record loaded from
// storage. Records produced by Apply always pass.
func Validate(app models.CertificateApplication) error {
	status, err := ParseStatus(app.Status)
	if err != nil {
		return err
	}

	hasReason := app.RejectionReason != nil && strings.TrimSpace(*app.RejectionReason) != ""
	if (status == StatusRejected) != hasReason {
		return fmt.Errorf("status %s inconsistent with rejection reason", status)
	}

	// Timestamps mirror the status. Rejection happens only from Pending,
	// so a rejected record never carries an approval stamp; Reactivate
	// clears the rejection stamp on the way back to Pending.
	if (status == StatusRejected) != (app.RejectedAt != nil) {
		return fmt.Errorf("status %s inconsistent with rejection timestamp", status)
	}
	approved := status == StatusApproved || status == StatusPaymentAssigned || status == StatusInspected
	if approved != (app.ApprovedAt != nil) {
		return fmt.Errorf("status %s inconsistent with approval timestamp", status)
	}
	if (status == StatusInspected) != (app.InspectionDate != nil) {
		return fmt.Errorf("status %s inconsistent with inspection date", status)
	}

	switch status {
	case StatusPaymentAssigned:
		if app.Payment == nil || *app.Payment <= 0 {
			return fmt.Errorf("status %s requires a positive payment", status)
		}
	case StatusInspected:
		if app.Payment == nil {
			return fmt.Errorf("status %s requires a payment", status)
		}
		if app.InspectionNotes == nil || strings.TrimSpace(*app.InspectionNotes) == "" {
			return fmt.Errorf("status %s requires inspection notes", status)
		}
	}

	return nil
}
