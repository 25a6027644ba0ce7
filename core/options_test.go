package core

import (
	"context"
	"testing"
)

func TestCfgxConfigProvider_LoadsRawValuesOverDefaults(t *testing.T) {
	provider := NewCfgxConfigProvider(staticRawConfigLoader{Values: map[string]any{
		"default_context":        "reporting",
		"disable_eager_populate": true,
	}})

	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultContext != "reporting" {
		t.Fatalf("expected loaded default_context, got %q", cfg.DefaultContext)
	}
	if !cfg.DisableEagerPopulate {
		t.Fatalf("expected disable_eager_populate true")
	}
	if cfg.QuietFallback {
		t.Fatalf("expected quiet_fallback default false")
	}
}

func TestGoOptionsResolver_RuntimeLayerWins(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{DefaultContext: "crm"}
	runtime := Config{DefaultContext: "billing", QuietFallback: true}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve options: %v", err)
	}
	if resolved.DefaultContext != "billing" {
		t.Fatalf("expected runtime default_context to win, got %q", resolved.DefaultContext)
	}
	if !resolved.QuietFallback {
		t.Fatalf("expected runtime quiet_fallback to win")
	}
}

func TestGoOptionsResolver_LoadedLayerBeatsDefaults(t *testing.T) {
	defaults := DefaultConfig()
	loaded := Config{DefaultContext: "crm", DisableEagerPopulate: true}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, Config{})
	if err != nil {
		t.Fatalf("resolve options: %v", err)
	}
	if resolved.DefaultContext != "crm" {
		t.Fatalf("expected loaded default_context, got %q", resolved.DefaultContext)
	}
	if !resolved.DisableEagerPopulate {
		t.Fatalf("expected loaded disable_eager_populate")
	}
}

func TestConfig_ValidateRejectsPaddedDefaultContext(t *testing.T) {
	cfg := Config{DefaultContext: " reporting "}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected padded default_context to fail validation")
	}
	if err := (Config{DefaultContext: "reporting"}).Validate(); err != nil {
		t.Fatalf("expected clean config to validate: %v", err)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}
