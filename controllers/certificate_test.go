package controllers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"fire-department-api/services"
	"fire-department-api/workflow"
)

func TestTransitionErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{workflow.ErrMissingRequiredField, http.StatusBadRequest},
		{workflow.ErrInvalidAmount, http.StatusBadRequest},
		{workflow.ErrInvalidTransition, http.StatusConflict},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrVersionConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		if got := transitionErrorStatus(tc.err); got != tc.want {
			t.Fatalf("transitionErrorStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestTransitionMessagesCoverAllActions(t *testing.T) {
	actions := []workflow.Action{
		workflow.ActionApprove,
		workflow.ActionReject,
		workflow.ActionAssignPayment,
		workflow.ActionMarkInspected,
		workflow.ActionReactivate,
	}

	for _, action := range actions {
		if transitionMessages[action] == "" {
			t.Fatalf("no message configured for action %q", action)
		}
		if transitionEventTypes[action] == "" {
			t.Fatalf("no event type configured for action %q", action)
		}
	}
}

func TestVersionConflictMessage(t *testing.T) {
	msg := transitionErrorMessage(services.ErrVersionConflict)
	if !strings.Contains(msg, "refresh") {
		t.Fatalf("conflict message should tell the caller to refresh, got %q", msg)
	}
}

func TestFormatCertificateNumber(t *testing.T) {
	day := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	if got := formatCertificateNumber(day, 1); got != "FPC-20250615-0001" {
		t.Fatalf("unexpected number: %s", got)
	}
	if got := formatCertificateNumber(day, 12345); got != "FPC-20250615-12345" {
		t.Fatalf("unexpected number: %s", got)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry 'FPC-20250615-0003' for key 'application_number'")
	if !isDuplicateKeyError(dup) {
		t.Fatalf("expected duplicate-key error to match")
	}
	if isDuplicateKeyError(nil) {
		t.Fatalf("nil must not match")
	}
	if isDuplicateKeyError(errors.New("connection refused")) {
		t.Fatalf("unrelated error must not match")
	}
}

func TestBuildStatusEmailHTMLEscapesContent(t *testing.T) {
	html := buildStatusEmailHTML("Subject", "<b>Name</b>", "line one\nline <two>")

	if strings.Contains(html, "<b>Name</b>") {
		t.Fatalf("recipient name was not escaped")
	}
	if strings.Contains(html, "line <two>") {
		t.Fatalf("message body was not escaped")
	}
	if !strings.Contains(html, "line one<br />") {
		t.Fatalf("newlines should become <br />")
	}
}
