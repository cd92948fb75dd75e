package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"fire-department-api/models"
)

var (
	loadPattern   = regexp.MustCompile(`SELECT .* FROM .certificate_applications. WHERE application_id = \? AND delete_at IS NULL`)
	updatePattern = regexp.MustCompile(`UPDATE .certificate_applications. SET .* WHERE application_id = \? AND version = \? AND delete_at IS NULL`)
	countPattern  = regexp.MustCompile(`SELECT count\(\*\) FROM .certificate_applications. WHERE application_id = \? AND delete_at IS NULL`)
	deletePattern = regexp.MustCompile(`UPDATE .certificate_applications. SET .delete_at.=\? WHERE application_id = \? AND delete_at IS NULL`)
)

func TestLoadReturnsNotFoundForMissingRow(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: loadPattern,
			columns: []string{"application_id", "status", "version"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewApplicationStore(db)
	if _, err := store.Load(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestLoadReturnsRecord(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: loadPattern,
			columns: []string{"application_id", "status", "urgency_level", "version"},
			rows:    [][]driver.Value{{int64(7), "approved", "high", int64(3)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewApplicationStore(db)
	app, err := store.Load(7)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if app.ApplicationID != 7 || app.Status != "approved" || app.Version != 3 {
		t.Fatalf("unexpected record: %+v", app)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSaveBumpsVersionOnSuccess(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewApplicationStore(db)
	app := &models.CertificateApplication{ApplicationID: 7, Status: "approved", Version: 3}

	if err := store.Save(app, 3); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if app.Version != 4 {
		t.Fatalf("expected version 4 after save, got %d", app.Version)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSaveDetectsVersionConflict(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 0},
		},
		{
			kind:    kindQuery,
			pattern: countPattern,
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewApplicationStore(db)
	app := &models.CertificateApplication{ApplicationID: 7, Status: "approved", Version: 2}

	if err := store.Save(app, 2); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if app.Version != 2 {
		t.Fatalf("version must not change on conflict, got %d", app.Version)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSaveReportsMissingRow(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 0},
		},
		{
			kind:    kindQuery,
			pattern: countPattern,
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewApplicationStore(db)
	app := &models.CertificateApplication{ApplicationID: 99, Status: "approved"}

	if err := store.Save(app, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestUpdateContactBumpsVersionOnSuccess(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewApplicationStore(db)
	app := &models.CertificateApplication{
		ApplicationID: 7,
		Status:        "pending",
		ContactNumber: "0771234567",
		Version:       1,
	}

	if err := store.UpdateContact(app, 1); err != nil {
		t.Fatalf("UpdateContact returned error: %v", err)
	}
	if app.Version != 2 {
		t.Fatalf("expected version 2 after contact update, got %d", app.Version)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestUpdateContactLosesRaceToTransition(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 0},
		},
		{
			kind:    kindQuery,
			pattern: countPattern,
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	// The caller loaded version 1, but an approval bumped the row to 2
	// in between; the contact edit must fail instead of reverting it.
	store := NewApplicationStore(db)
	app := &models.CertificateApplication{
		ApplicationID: 7,
		Status:        "pending",
		ContactNumber: "0771234567",
		Version:       1,
	}

	if err := store.UpdateContact(app, 1); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if app.Version != 1 {
		t.Fatalf("version must not change on conflict, got %d", app.Version)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestDelete(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: deletePattern,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: deletePattern,
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	store := NewApplicationStore(db)
	if err := store.Delete(7); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Delete(7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
