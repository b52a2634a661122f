package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/AlexRiggs/hemo/pkg/pipeline"
)

func TestCacheDir_XDGOverride(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestStoreDir_XDGOverride(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := storeDir()
	if err != nil {
		t.Fatalf("storeDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-data", appName); dir != want {
		t.Errorf("storeDir() = %q, want %q", dir, want)
	}
}

func TestDefaultConfigPath_XDGOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	if got, want := defaultConfigPath(), filepath.Join("/tmp/xdg-config", appName, "config.toml"); got != want {
		t.Errorf("defaultConfigPath() = %q, want %q", got, want)
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"generate", "metrics", "export", "store", "serve", "find", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestStageMessages_CoverAllStages(t *testing.T) {
	stages := []string{
		pipeline.StageBuild,
		pipeline.StageLengths,
		pipeline.StageRank,
		pipeline.StageRadii,
		pipeline.StagePrep,
		pipeline.StageSwitches,
	}
	for _, stage := range stages {
		if _, ok := stageMessages[stage]; !ok {
			t.Errorf("stage %q has no spinner message", stage)
		}
	}
}

func TestStageHooks_UpdateSpinnerMessage(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "starting")
	h := stageHooks{spinner: s}

	h.OnStageStart(context.Background(), pipeline.StageRadii, 0)
	s.mu.Lock()
	got := s.message
	s.mu.Unlock()
	if got != stageMessages[pipeline.StageRadii] {
		t.Errorf("spinner message = %q, want %q", got, stageMessages[pipeline.StageRadii])
	}

	// Unknown stages leave the message alone.
	h.OnStageStart(context.Background(), "warmup", 0)
	s.mu.Lock()
	got = s.message
	s.mu.Unlock()
	if got != stageMessages[pipeline.StageRadii] {
		t.Errorf("unknown stage changed message to %q", got)
	}
}

func TestLoadConfig_MissingFileKeepsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	before := c.Config
	if err := c.LoadConfig(""); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Config != before {
		t.Error("missing config file changed the loaded configuration")
	}
}
