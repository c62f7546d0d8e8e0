package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/domain"
)

// runCommand executes one CLI invocation against the store at dbPath.
func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append(args, "--db", dbPath, "--config", filepath.Join(filepath.Dir(dbPath), "no-config.toml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pace.db")

	out, err := runCommand(t, dbPath,
		"begin", "write", "tests",
		"-c", "dev", "-t", "go", "-t", "testing",
		"--at", "2026-03-14T09:00:00Z",
	)
	if err != nil {
		t.Fatalf("begin error = %v", err)
	}
	if !strings.Contains(out, "Began write tests") {
		t.Fatalf("unexpected begin output %q", out)
	}

	if _, err := runCommand(t, dbPath, "hold", "--at", "2026-03-14T09:30:00Z", "--reason", "lunch"); err != nil {
		t.Fatalf("hold error = %v", err)
	}

	out, err = runCommand(t, dbPath, "now")
	if err != nil {
		t.Fatalf("now error = %v", err)
	}
	if !strings.Contains(out, "held") || !strings.Contains(out, "lunch") {
		t.Fatalf("unexpected now output %q", out)
	}

	if _, err := runCommand(t, dbPath, "resume", "--at", "2026-03-14T10:00:00Z"); err != nil {
		t.Fatalf("resume error = %v", err)
	}

	out, err = runCommand(t, dbPath, "end", "--at", "2026-03-14T12:00:00Z")
	if err != nil {
		t.Fatalf("end error = %v", err)
	}
	if !strings.Contains(out, "2h30m") {
		t.Fatalf("expected worked duration in output %q", out)
	}

	out, err = runCommand(t, dbPath, "now")
	if err != nil {
		t.Fatalf("now error = %v", err)
	}
	if !strings.Contains(out, "No current activity") {
		t.Fatalf("unexpected now output %q", out)
	}

	out, err = runCommand(t, dbPath, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "write tests") || !strings.Contains(out, "ended") {
		t.Fatalf("unexpected list output %q", out)
	}
}

func TestBeginRejectsSecondCurrent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pace.db")

	if _, err := runCommand(t, dbPath, "begin", "first", "--at", "2026-03-14T09:00:00Z"); err != nil {
		t.Fatalf("begin error = %v", err)
	}
	_, err := runCommand(t, dbPath, "begin", "second", "--at", "2026-03-14T09:15:00Z")
	if !errors.Is(err, app.ErrActivityAlreadyActive) {
		t.Fatalf("expected ErrActivityAlreadyActive, got %v", err)
	}

	out, err := runCommand(t, dbPath, "begin", "second", "--force", "--at", "2026-03-14T09:15:00Z")
	if err != nil {
		t.Fatalf("force begin error = %v", err)
	}
	if !strings.Contains(out, "Began second") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTransitionsWithoutCurrent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pace.db")

	if _, err := runCommand(t, dbPath, "hold"); !errors.Is(err, domain.ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
	if _, err := runCommand(t, dbPath, "resume"); !errors.Is(err, domain.ErrNotHeld) {
		t.Fatalf("expected ErrNotHeld, got %v", err)
	}
	if _, err := runCommand(t, dbPath, "end"); !errors.Is(err, app.ErrNoCurrentActivity) {
		t.Fatalf("expected ErrNoCurrentActivity, got %v", err)
	}
}

func TestDeleteCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pace.db")

	if _, err := runCommand(t, dbPath, "begin", "scratch", "--at", "2026-03-14T09:00:00Z"); err != nil {
		t.Fatalf("begin error = %v", err)
	}
	if _, err := runCommand(t, dbPath, "end", "--at", "2026-03-14T10:00:00Z"); err != nil {
		t.Fatalf("end error = %v", err)
	}

	out, err := runCommand(t, dbPath, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	guid := strings.Fields(out)[0]

	if _, err := runCommand(t, dbPath, "delete", guid); err != nil {
		t.Fatalf("delete error = %v", err)
	}
	out, err = runCommand(t, dbPath, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No activities tracked yet") {
		t.Fatalf("unexpected list output %q", out)
	}

	if _, err := runCommand(t, dbPath, "delete", "not-a-guid"); !errors.Is(err, domain.ErrInvalidGuid) {
		t.Fatalf("expected ErrInvalidGuid, got %v", err)
	}
}
