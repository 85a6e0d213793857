package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/hollis/appshell/internal/history"
)

func TestNew_EmptyDSN(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestSink_SendAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	sink, err := New("sqlite://" + path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = sink.Close() }()

	ctx := context.Background()
	now := time.Now()
	events := []history.Event{
		{Type: history.EventSpawn, OccurredAt: now, Name: "backend", Path: "/opt/app/backend", PID: 4242},
		{Type: history.EventExit, OccurredAt: now.Add(time.Second), Name: "backend", Path: "/opt/app/backend", PID: 4242, Error: "signal: terminated"},
	}
	for _, e := range events {
		if err := sink.Send(ctx, e); err != nil {
			t.Fatalf("Send(%s): %v", e.Type, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM launch_history`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}

	var event string
	var errText sql.NullString
	row := db.QueryRow(`SELECT event, error FROM launch_history WHERE event = 'exit'`)
	if err := row.Scan(&event, &errText); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !errText.Valid || errText.String != "signal: terminated" {
		t.Fatalf("exit error not persisted: %+v", errText)
	}

	row = db.QueryRow(`SELECT error FROM launch_history WHERE event = 'spawn'`)
	if err := row.Scan(&errText); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if errText.Valid {
		t.Fatalf("spawn rows must have NULL error, got %q", errText.String)
	}
}

func TestSink_InMemory(t *testing.T) {
	sink, err := New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = sink.Close() }()
	e := history.Event{Type: history.EventSpawn, OccurredAt: time.Now(), Name: "backend", Path: "/x/backend", PID: 1}
	if err := sink.Send(context.Background(), e); err != nil {
		t.Fatalf("Send: %v", err)
	}
}
