package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/jsonc"

	"github.com/citizenadam/GhostGate/internal/hostfs"
)

// seedSettings is written to the global location when no settings file
// exists anywhere. It only carries a schema reference; the empty object
// means the layer contributes nothing until the user edits it.
const seedSettings = `// GhostGate settings.
// Schema reference: https://github.com/citizenadam/GhostGate/blob/main/docs/settings-schema.md
{}
`

// Resolve builds the effective configuration for one session.
//
// Layers, ascending precedence: hard-coded defaults, the global per-user
// location, the GHOSTGATE_CONFIG_DIR location, and the nearest ancestor of
// workDir carrying a .ghostgate marker folder. Each location is read once;
// the relaxed settings.jsonc form is preferred over strict settings.json,
// and only the first existing file per location is used. A layer that fails
// to parse contributes nothing.
//
// Resolve never fails: the worst case is the default configuration.
func Resolve(workDir string, getenv func(string) string, fsys hostfs.FS) Config {
	cfg := Default()

	globalDir := globalConfigDir(getenv)
	globalFound := false

	for _, dir := range []string{globalDir, getenv(EnvConfigDir), projectConfigDir(workDir, fsys)} {
		if dir == "" {
			continue
		}
		layer, found := loadLayer(fsys, dir)
		if dir == globalDir {
			globalFound = found
		}
		cfg.merge(layer)
	}

	// Convenience: seed a commented global settings file for fresh
	// installations. Best-effort; a failed write never aborts resolution.
	if !globalFound && globalDir != "" {
		writeSeedSettings(fsys, globalDir, cfg.Debug)
	}

	if cfg.Registry.Path != "" && !filepath.IsAbs(cfg.Registry.Path) {
		cfg.Registry.Path = filepath.Join(workDir, cfg.Registry.Path)
	}

	return cfg
}

// loadLayer reads one location's settings file. Returns the parsed overlay
// (nil when absent or malformed) and whether any settings file existed.
func loadLayer(fsys hostfs.FS, dir string) (*fileConfig, bool) {
	for _, name := range []string{SettingsFileRelaxed, SettingsFileStrict} {
		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(path)
		if err != nil {
			continue
		}

		// Relaxed files are rewritten to strict JSON before parsing;
		// strict files must already be strict.
		if name == SettingsFileRelaxed {
			data = jsonc.ToJSON(data)
		}

		var layer fileConfig
		if err := json.Unmarshal(data, &layer); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("config: layer malformed, skipping")
			// The first existing file per location is the only one
			// consulted, even when it is garbled.
			return nil, true
		}
		return &layer, true
	}
	return nil, false
}

// globalConfigDir returns the per-user settings directory.
func globalConfigDir(getenv func(string) string) string {
	home := getenv("HOME")
	if home == "" {
		home = getenv("USERPROFILE")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "ghostgate")
}

// projectConfigDir walks up from workDir looking for a .ghostgate marker
// folder and returns it, or "" when none exists.
func projectConfigDir(workDir string, fsys hostfs.FS) string {
	dir := filepath.Clean(workDir)
	for {
		marker := filepath.Join(dir, MarkerDirName)
		if info, err := fsys.Stat(marker); err == nil && info.IsDir() {
			return marker
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// writeSeedSettings creates the commented global settings file.
func writeSeedSettings(fsys hostfs.FS, dir string, debug bool) {
	if err := fsys.MkdirAll(dir, 0o750); err != nil {
		if debug {
			log.Warn().Err(err).Str("dir", dir).Msg("config: seed settings mkdir failed")
		}
		return
	}
	path := filepath.Join(dir, SettingsFileRelaxed)
	if err := fsys.WriteFile(path, []byte(seedSettings), 0o640); err != nil {
		if debug {
			log.Warn().Err(err).Str("path", path).Msg("config: seed settings write failed")
		}
		return
	}
	log.Debug().Str("path", path).Msg("config: seeded global settings file")
}
