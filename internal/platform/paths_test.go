package platform

import (
	"path/filepath"
	"testing"
)

func TestPathsForLinuxXDG(t *testing.T) {
	env := map[string]string{
		"XDG_CONFIG_HOME": "/xdg/config",
		"XDG_DATA_HOME":   "/xdg/data",
	}
	paths, err := PathsFor("linux", env, "/home/u/.config", "/home/u/.local/share", "pace")
	if err != nil {
		t.Fatalf("PathsFor() error = %v", err)
	}
	if paths.ConfigPath != filepath.Join("/xdg/config", "pace", "config.toml") {
		t.Fatalf("unexpected config path %q", paths.ConfigPath)
	}
	if paths.DBPath != filepath.Join("/xdg/data", "pace", "pace.db") {
		t.Fatalf("unexpected db path %q", paths.DBPath)
	}
}

func TestPathsForLinuxDefaults(t *testing.T) {
	paths, err := PathsFor("linux", map[string]string{}, "/home/u/.config", "/home/u/.local/share", "pace")
	if err != nil {
		t.Fatalf("PathsFor() error = %v", err)
	}
	if paths.ConfigPath != filepath.Join("/home/u/.config", "pace", "config.toml") {
		t.Fatalf("unexpected config path %q", paths.ConfigPath)
	}
	if paths.DataDir != filepath.Join("/home/u/.local/share", "pace") {
		t.Fatalf("unexpected data dir %q", paths.DataDir)
	}
}

func TestPathsForWindows(t *testing.T) {
	env := map[string]string{
		"APPDATA":      `C:\Users\u\AppData\Roaming`,
		"LOCALAPPDATA": `C:\Users\u\AppData\Local`,
	}
	paths, err := PathsFor("windows", env, `C:\fallback`, `C:\fallback`, "pace")
	if err != nil {
		t.Fatalf("PathsFor() error = %v", err)
	}
	if paths.ConfigPath != filepath.Join(`C:\Users\u\AppData\Roaming`, "pace", "config.toml") {
		t.Fatalf("unexpected config path %q", paths.ConfigPath)
	}
	if paths.DBPath != filepath.Join(`C:\Users\u\AppData\Local`, "pace", "pace.db") {
		t.Fatalf("unexpected db path %q", paths.DBPath)
	}
}

func TestPathsForValidation(t *testing.T) {
	if _, err := PathsFor("linux", nil, "", "/data", "pace"); err == nil {
		t.Fatal("expected error for empty config dir")
	}
	if _, err := PathsFor("linux", nil, "/config", "/data", "  "); err == nil {
		t.Fatal("expected error for empty app name")
	}
}

func TestDefaultPathsWithOptionsDevMode(t *testing.T) {
	paths, err := DefaultPathsWithOptions(Options{AppName: "pace", DevMode: true})
	if err != nil {
		t.Fatalf("DefaultPathsWithOptions() error = %v", err)
	}
	if filepath.Base(filepath.Dir(paths.ConfigPath)) != "pace-dev" {
		t.Fatalf("unexpected config path %q", paths.ConfigPath)
	}
	if filepath.Base(paths.DBPath) != "pace-dev.db" {
		t.Fatalf("unexpected db path %q", paths.DBPath)
	}
}
