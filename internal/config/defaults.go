// Package config - defaults.go centralizes magic numbers and default values.
//
// DESIGN: All default values that appear in multiple places are defined here.
// This keeps the tuning surface auditable in one file.
package config

// =============================================================================
// TOKEN ESTIMATION
// =============================================================================

// AverageSchemaTokens is the flat per-tool estimate credited back when all
// activations are purged. Individual schema sizes are not re-read at purge
// time, so a single representative value is used instead.
const AverageSchemaTokens = 125

// =============================================================================
// PRUNING DEFAULTS
// =============================================================================

// DefaultPruneMaxTokens caps a pruned tool result. Anything beyond
// MaxTokens*4 characters is truncated with a disclosure suffix.
const DefaultPruneMaxTokens = 2000

// DefaultPruneMinTokens is the floor below which results are returned
// untouched. Short results are not worth mangling.
const DefaultPruneMinTokens = 100

// LargeResultThresholdBytes is the coarse pre-filter applied before the
// pruning engine runs at all. Results at or below this raw length bypass
// pruning entirely, independent of the token-based MinTokens check.
const LargeResultThresholdBytes = 1024

// =============================================================================
// FILE LOCATIONS
// =============================================================================

// EnvConfigDir names the environment variable that designates an extra
// configuration directory (middle precedence layer).
const EnvConfigDir = "GHOSTGATE_CONFIG_DIR"

// MarkerDirName is the project marker folder searched for in ancestors of
// the working directory.
const MarkerDirName = ".ghostgate"

// Settings file names per location. The relaxed (comments-tolerant) form is
// preferred; the strict form is the fallback. Only the first file found per
// location is used.
const (
	SettingsFileRelaxed = "settings.jsonc"
	SettingsFileStrict  = "settings.json"
)

// DefaultRegistryDir is the registry path used when no layer sets one,
// resolved relative to the working directory.
const DefaultRegistryDir = ".ghostgate/registry"

// =============================================================================
// COMMANDS
// =============================================================================

// CommandName is the reserved command namespace the engine intercepts.
const CommandName = "ghostgate"

// Default returns the hard-coded base configuration that every file layer
// overlays.
func Default() Config {
	return Config{
		Enabled: true,
		Debug:   false,
		Registry: RegistryConfig{
			Enabled: true,
			Path:    DefaultRegistryDir,
		},
		Pruning: PruningConfig{
			Enabled:   true,
			MaxTokens: DefaultPruneMaxTokens,
			MinTokens: DefaultPruneMinTokens,
		},
		Metrics: MetricsConfig{
			Enabled:      true,
			ShowInStatus: true,
		},
		Commands: CommandsConfig{
			Enabled: true,
		},
	}
}
