package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataDirAndFilePathUseXDGDataHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error: %v", err)
	}
	wantDir := filepath.Join(tmp, "tabkit")
	if dir != wantDir {
		t.Fatalf("DataDir() = %q, want %q", dir, wantDir)
	}

	wantPath := filepath.Join(tmp, "tabkit", "auth.json")
	if got := FilePath(); got != wantPath {
		t.Fatalf("FilePath() = %q, want %q", got, wantPath)
	}
}

func TestSaveLoadRemoveLifecycle(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	store := Store{
		"deepl":          {Key: "apikey123456"},
		"libretranslate": {Key: "lt-key", BaseURL: "https://lt.example.com"},
	}

	if err := Save(store); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	path := filepath.Join(tmp, "tabkit", "auth.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat auth.json: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("auth.json mode = %o, want 600", info.Mode().Perm())
	}

	loaded := Load()
	if loaded["deepl"] == nil || loaded["deepl"].Key != "apikey123456" {
		t.Fatalf("Load() missing deepl key: %#v", loaded["deepl"])
	}
	if loaded["libretranslate"] == nil || loaded["libretranslate"].BaseURL != "https://lt.example.com" {
		t.Fatalf("Load() missing libretranslate endpoint: %#v", loaded["libretranslate"])
	}

	if err := Remove("deepl"); err != nil {
		t.Fatalf("Remove(deepl) error: %v", err)
	}
	if got := GetAPIKey("deepl"); got != "" {
		t.Fatalf("GetAPIKey after remove = %q, want empty", got)
	}
	if GetBaseURL("libretranslate") == "" {
		t.Fatalf("libretranslate entry should remain after removing deepl")
	}

	if err := Remove("missing-provider"); err != nil {
		t.Fatalf("Remove(missing) should be no-op, got: %v", err)
	}

	if err := RemoveAll(); err != nil {
		t.Fatalf("RemoveAll() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("auth.json should be removed, stat err=%v", err)
	}
	if got := Load(); len(got) != 0 {
		t.Fatalf("Load() after RemoveAll should be empty, got=%#v", got)
	}
}

func TestResolveAPIKeyPriority(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	if err := SetAPIKey("deepl", "stored-key"); err != nil {
		t.Fatalf("SetAPIKey() error: %v", err)
	}

	t.Setenv(EnvAPIKey, "env-key")

	if got := ResolveAPIKey("flag-key", "deepl"); got != "flag-key" {
		t.Fatalf("flag should win, got %q", got)
	}
	if got := ResolveAPIKey("", "deepl"); got != "env-key" {
		t.Fatalf("env should win over store, got %q", got)
	}

	t.Setenv(EnvAPIKey, "")
	if got := ResolveAPIKey("", "deepl"); got != "stored-key" {
		t.Fatalf("stored key expected, got %q", got)
	}
}

func TestSetAPIKeyPreservesBaseURL(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	if err := SetBaseURL("libretranslate", "https://lt.internal"); err != nil {
		t.Fatalf("SetBaseURL() error: %v", err)
	}
	if err := SetAPIKey("libretranslate", "new-key"); err != nil {
		t.Fatalf("SetAPIKey() error: %v", err)
	}

	got := Get("libretranslate")
	if got == nil {
		t.Fatal("Get(libretranslate) returned nil")
	}
	if got.Key != "new-key" {
		t.Fatalf("key = %q, want new-key", got.Key)
	}
	if got.BaseURL != "https://lt.internal" {
		t.Fatalf("baseUrl not preserved: %#v", got)
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("short"); got != "****" {
		t.Fatalf("MaskKey(short) = %q, want ****", got)
	}
	if got := MaskKey("12345678"); got != "****" {
		t.Fatalf("MaskKey(8 chars) = %q, want ****", got)
	}
	if got := MaskKey("123456789"); got != "1234...6789" {
		t.Fatalf("MaskKey(9 chars) = %q, want 1234...6789", got)
	}
}
