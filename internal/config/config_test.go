package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAMLOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	if err := os.WriteFile(path, []byte("root_throwable_interface: MyThrowable\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RootThrowableInterface != "MyThrowable" {
		t.Fatalf("expected override, got %q", cfg.RootThrowableInterface)
	}
	if cfg.LoopFixedPointCap != LoopFixedPointCap {
		t.Fatalf("expected default LoopFixedPointCap to survive, got %d", cfg.LoopFixedPointCap)
	}
}

func TestDefaultMatchesConstants(t *testing.T) {
	cfg := Default()
	if cfg.LiteralStringWidenThreshold != LiteralStringWidenThreshold {
		t.Fatalf("Default() out of sync with LiteralStringWidenThreshold constant")
	}
}
