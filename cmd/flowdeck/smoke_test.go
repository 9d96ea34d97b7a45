package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flowdeck/internal/brief"
	"flowdeck/internal/console"
)

func TestSmokeConsoleLifecycle(t *testing.T) {
	ctrl := console.New(console.Config{})
	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := ctrl.Snapshot()
	t.Logf("boot: %d log entries, active step %d, %d views",
		len(snap.Log), snap.ActiveStep, snap.Metrics.Views)

	if err := ctrl.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestSmokeBriefPipeline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "campaign.md")
	if err := os.WriteFile(path, []byte("# smoke brief\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	text, err := brief.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	w, err := brief.NewWatcher(path)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	ctrl := console.New(console.Config{BriefPath: path, BriefText: text})
	if err := ctrl.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer ctrl.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("# revised\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-w.Changes():
		revised, err := brief.Load(path)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		ctrl.ReloadBrief(revised)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for brief change")
	}

	snap := ctrl.Snapshot()
	last := snap.Log[len(snap.Log)-1]
	if last.Text != "CAMPAIGN_BRIEF_SYNCED" {
		t.Errorf("last entry = %q, want CAMPAIGN_BRIEF_SYNCED", last.Text)
	}
}
