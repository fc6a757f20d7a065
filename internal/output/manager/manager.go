// Package manager provides output writer selection with configuration support.
package manager

import (
	"os"
	"slices"
	"strings"

	"github.com/jmylchreest/polycue/internal/output"
	"github.com/jmylchreest/polycue/internal/output/archive"
	"github.com/jmylchreest/polycue/internal/output/manifest"
	"github.com/jmylchreest/polycue/internal/output/sheet"
	"github.com/jmylchreest/polycue/internal/output/tags"
)

// Environment variables read by WithEnvConfig.
const (
	EnvEnabledOutputs  = "POLYCUE_ENABLED_OUTPUTS"
	EnvDisabledOutputs = "POLYCUE_DISABLED_OUTPUTS"
)

// DefaultOutputs are enabled when no enabled list is configured. They match
// the files a plain save produces: one PNG per tag plus the manifest.
var DefaultOutputs = []string{"png", "manifest"}

// Config holds writer configuration.
type Config struct {
	// DisabledOutputs is a list of writer names to disable. "all" disables
	// every writer.
	DisabledOutputs []string

	// EnabledOutputs is a list of writer names to explicitly enable.
	// If set, only these writers are enabled (whitelist mode).
	EnabledOutputs []string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config   Config
	registry *output.Registry
	useEnv   bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config:   Config{},
		registry: output.NewRegistry(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads POLYCUE_ENABLED_OUTPUTS and POLYCUE_DISABLED_OUTPUTS.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithCustomRegistry allows providing a custom writer registry (useful for testing).
func (b *Builder) WithCustomRegistry(reg *output.Registry) *Builder {
	b.registry = reg
	return b
}

// Build constructs the Manager with the configured settings.
// Environment values replace the corresponding lists from WithConfig.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv(EnvDisabledOutputs); disabled != "" {
			config.DisabledOutputs = ParseList(disabled)
		}
		if enabled := os.Getenv(EnvEnabledOutputs); enabled != "" {
			config.EnabledOutputs = ParseList(enabled)
		}
	}

	m := &Manager{
		config:   config,
		registry: b.registry,
	}
	m.registerBuiltinWriters()

	return m
}

// Manager manages writer enable/disable state and owns the writer registry.
type Manager struct {
	config   Config
	registry *output.Registry
}

// registerBuiltinWriters registers all built-in writers.
func (m *Manager) registerBuiltinWriters() {
	m.registry.Register(tags.New())
	m.registry.Register(sheet.New())
	m.registry.Register(manifest.New())
	m.registry.Register(archive.New())
}

// Registry returns the writer registry.
func (m *Manager) Registry() *output.Registry {
	return m.registry
}

// Get retrieves a writer by name.
func (m *Manager) Get(name string) (output.Writer, bool) {
	return m.registry.Get(name)
}

// IsEnabled checks if a writer is enabled.
func (m *Manager) IsEnabled(name string) bool {
	// "all" in the disabled list takes precedence over everything.
	if slices.Contains(m.config.DisabledOutputs, "all") {
		return false
	}
	if slices.Contains(m.config.DisabledOutputs, name) {
		return false
	}

	enabled := m.config.EnabledOutputs
	if len(enabled) == 0 {
		enabled = DefaultOutputs
	}
	return slices.Contains(enabled, "all") || slices.Contains(enabled, name)
}

// Enabled returns the enabled writers, sorted by name.
func (m *Manager) Enabled() []output.Writer {
	var writers []output.Writer
	for _, name := range m.registry.List() {
		if !m.IsEnabled(name) {
			continue
		}
		w, _ := m.registry.Get(name)
		writers = append(writers, w)
	}
	return writers
}

// List returns the names of enabled writers, sorted.
func (m *Manager) List() []string {
	names := []string{}
	for _, name := range m.registry.List() {
		if m.IsEnabled(name) {
			names = append(names, name)
		}
	}
	return names
}

// All returns all registered writers (including disabled).
func (m *Manager) All() map[string]output.Writer {
	return m.registry.All()
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// UpdateConfig updates the manager's configuration without recreating writers.
// This preserves flag bindings and other writer state.
func (m *Manager) UpdateConfig(config Config) {
	m.config = config
}

// SetEnabled adds a writer to the enabled list (whitelist mode).
func (m *Manager) SetEnabled(name string) {
	m.config.DisabledOutputs = slices.DeleteFunc(m.config.DisabledOutputs, func(s string) bool { return s == name })
	if !slices.Contains(m.config.EnabledOutputs, name) {
		m.config.EnabledOutputs = append(m.config.EnabledOutputs, name)
	}
}

// SetDisabled adds a writer to the disabled list.
func (m *Manager) SetDisabled(name string) {
	m.config.EnabledOutputs = slices.DeleteFunc(m.config.EnabledOutputs, func(s string) bool { return s == name })
	if !slices.Contains(m.config.DisabledOutputs, name) {
		m.config.DisabledOutputs = append(m.config.DisabledOutputs, name)
	}
}

// ParseList parses a comma-separated list of writer names.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
