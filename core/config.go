package core

import (
	"fmt"
	"strings"
)

// Config carries resolver behavior knobs. Zero values match the recommended
// defaults: eager population on, fallback diagnostics on.
type Config struct {
	// DefaultContext names the descriptor used by the unqualified fallback.
	// Empty means "use the registry's designated default, or the singular
	// registered context when only one exists".
	DefaultContext string `koanf:"default_context" mapstructure:"default_context"`
	// DisableEagerPopulate skips the construction-time model scan.
	DisableEagerPopulate bool `koanf:"disable_eager_populate" mapstructure:"disable_eager_populate"`
	// QuietFallback drops the warn-level diagnostic emitted whenever a
	// resolution succeeds only through the default fallback.
	QuietFallback bool `koanf:"quiet_fallback" mapstructure:"quiet_fallback"`
}

func DefaultConfig() Config {
	return Config{}
}

func (c Config) Validate() error {
	if c.DefaultContext != strings.TrimSpace(c.DefaultContext) {
		return fmt.Errorf("core: default_context must not carry surrounding whitespace")
	}
	return nil
}
