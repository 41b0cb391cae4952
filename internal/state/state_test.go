package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

func TestGetSession_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	session, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session on empty db, got %+v", session)
	}
}

func TestSaveAndGetSession(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	saved := SessionState{
		SourceURL: "/srv/dailies/shot010_v2.mp4",
		UpdatedAt: time.Unix(1700000000, 0),
	}
	if err := saveSession(db, saved); err != nil {
		t.Fatalf("saveSession failed: %v", err)
	}

	got, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.SourceURL != saved.SourceURL {
		t.Errorf("SourceURL = %q, want %q", got.SourceURL, saved.SourceURL)
	}
	if !got.UpdatedAt.Equal(saved.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, saved.UpdatedAt)
	}
}

func TestSaveSession_Overwrites(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := saveSession(db, SessionState{SourceURL: "v1.mp4"}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := saveSession(db, SessionState{SourceURL: "v2.mp4"}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if got.SourceURL != "v2.mp4" {
		t.Errorf("got %+v, want v2.mp4", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should default to now")
	}
}

func TestGetPrefs_Defaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p, err := getPrefs(db)
	if err != nil {
		t.Fatalf("getPrefs failed: %v", err)
	}
	if p != DefaultPrefs {
		t.Errorf("prefs = %+v, want %+v", p, DefaultPrefs)
	}
}

func TestSaveAndGetPrefs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	want := Prefs{Loop: true, Muted: true, Overlay: false}
	if err := savePrefs(db, want); err != nil {
		t.Fatalf("savePrefs failed: %v", err)
	}

	got, err := getPrefs(db)
	if err != nil {
		t.Fatalf("getPrefs failed: %v", err)
	}
	if got != want {
		t.Errorf("prefs = %+v, want %+v", got, want)
	}
}

func TestManager_CloseFlushesPendingSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelcheck.db")

	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	m.SaveSession(SessionState{SourceURL: "v1.mp4"})
	m.SaveSession(SessionState{SourceURL: "v2.mp4"})
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	got, err := m.GetSession()
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.SourceURL != "v2.mp4" {
		t.Errorf("session = %+v, want v2.mp4", got)
	}
}

func TestManager_PrefsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelcheck.db")

	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if err := m.SavePrefs(Prefs{Loop: true, Overlay: true}); err != nil {
		t.Fatalf("SavePrefs failed: %v", err)
	}
	m.Close()

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	got, err := m.GetPrefs()
	if err != nil {
		t.Fatalf("GetPrefs failed: %v", err)
	}
	if !got.Loop || got.Muted || !got.Overlay {
		t.Errorf("prefs = %+v, want loop and overlay only", got)
	}
}

func TestMock(t *testing.T) {
	m := NewMock()

	if s, _ := m.GetSession(); s != nil {
		t.Errorf("expected nil session, got %+v", s)
	}
	m.SaveSession(SessionState{SourceURL: "v1.mp4"})
	if s, _ := m.GetSession(); s == nil || s.SourceURL != "v1.mp4" {
		t.Errorf("session = %+v, want v1.mp4", s)
	}

	if p, _ := m.GetPrefs(); p != DefaultPrefs {
		t.Errorf("prefs = %+v, want defaults", p)
	}
	_ = m.SavePrefs(Prefs{Muted: true})
	if p, _ := m.GetPrefs(); !p.Muted {
		t.Error("Muted = false, want true")
	}

	_ = m.Close()
	if !m.Closed() {
		t.Error("Closed() = false after Close")
	}
}
