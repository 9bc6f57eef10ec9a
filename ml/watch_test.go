package ml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatchArtifactLogsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heart_model.json")
	if err := os.WriteFile(path, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := WatchArtifact(ctx, path, zap.New(core)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 同目录下的其他文件不触发告警
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[{}]"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if logs.FilterMessage("model artifact changed on disk; restart to load it").Len() > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	entries := logs.FilterMessage("model artifact changed on disk; restart to load it").All()
	if len(entries) == 0 {
		t.Fatal("expected a change warning")
	}
	for _, e := range entries {
		if got := e.ContextMap()["path"]; got != path {
			t.Fatalf("warning for %v, want %s", got, path)
		}
	}
}

func TestWatchArtifactMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "heart_model.json")
	if err := WatchArtifact(context.Background(), path, zap.NewNop()); err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}
