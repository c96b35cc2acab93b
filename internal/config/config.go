// Package config resolves layered configuration files into one effective
// configuration per session.
//
// DESIGN: Three file locations in ascending precedence (global, env-var
// directory, project marker folder), each merged field-by-field over
// hard-coded defaults. A layer that is missing or malformed contributes
// nothing; resolution itself never fails.
package config

// Config is the effective configuration for one session. It is built once
// by Resolve and read-only thereafter; runtime reconfiguration requires a
// new session.
type Config struct {
	Enabled  bool           `yaml:"enabled"`
	Debug    bool           `yaml:"debug"`
	Registry RegistryConfig `yaml:"registry"`
	Pruning  PruningConfig  `yaml:"pruning"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Commands CommandsConfig `yaml:"commands"`
}

// RegistryConfig controls the on-disk tool-definition catalog.
type RegistryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Path is the registry directory. Absolute paths are used verbatim;
	// relative paths are resolved against the session working directory.
	Path string `yaml:"path"`
}

// PruningConfig controls the tool-output pruning engine.
type PruningConfig struct {
	Enabled bool `yaml:"enabled"`
	// MaxTokens caps pruned output at MaxTokens*4 characters before the
	// disclosure suffix.
	MaxTokens int `yaml:"max_tokens"`
	// MinTokens is the estimate floor below which text passes through
	// untouched.
	MinTokens int `yaml:"min_tokens"`
}

// MetricsConfig controls counter collection and status rendering.
type MetricsConfig struct {
	Enabled      bool `yaml:"enabled"`
	ShowInStatus bool `yaml:"show_in_status"`
}

// CommandsConfig controls the reserved command namespace.
type CommandsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// fileConfig mirrors Config with pointer fields so that a file layer only
// overrides what it explicitly sets. A nil field never overrides.
type fileConfig struct {
	Enabled  *bool         `json:"enabled"`
	Debug    *bool         `json:"debug"`
	Registry *fileRegistry `json:"registry"`
	Pruning  *filePruning  `json:"pruning"`
	Metrics  *fileMetrics  `json:"metrics"`
	Commands *fileCommands `json:"commands"`
}

type fileRegistry struct {
	Enabled *bool   `json:"enabled"`
	Path    *string `json:"path"`
}

type filePruning struct {
	Enabled   *bool `json:"enabled"`
	MaxTokens *int  `json:"max_tokens"`
	MinTokens *int  `json:"min_tokens"`
}

type fileMetrics struct {
	Enabled      *bool `json:"enabled"`
	ShowInStatus *bool `json:"show_in_status"`
}

type fileCommands struct {
	Enabled *bool `json:"enabled"`
}

// merge overlays a file layer onto cfg, field by field.
func (cfg *Config) merge(layer *fileConfig) {
	if layer == nil {
		return
	}
	if layer.Enabled != nil {
		cfg.Enabled = *layer.Enabled
	}
	if layer.Debug != nil {
		cfg.Debug = *layer.Debug
	}
	if r := layer.Registry; r != nil {
		if r.Enabled != nil {
			cfg.Registry.Enabled = *r.Enabled
		}
		if r.Path != nil {
			cfg.Registry.Path = *r.Path
		}
	}
	if p := layer.Pruning; p != nil {
		if p.Enabled != nil {
			cfg.Pruning.Enabled = *p.Enabled
		}
		if p.MaxTokens != nil {
			cfg.Pruning.MaxTokens = *p.MaxTokens
		}
		if p.MinTokens != nil {
			cfg.Pruning.MinTokens = *p.MinTokens
		}
	}
	if m := layer.Metrics; m != nil {
		if m.Enabled != nil {
			cfg.Metrics.Enabled = *m.Enabled
		}
		if m.ShowInStatus != nil {
			cfg.Metrics.ShowInStatus = *m.ShowInStatus
		}
	}
	if c := layer.Commands; c != nil {
		if c.Enabled != nil {
			cfg.Commands.Enabled = *c.Enabled
		}
	}
}
