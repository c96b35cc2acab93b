package registry

import (
	"github.com/rs/zerolog/log"
	"github.com/tidwall/sjson"

	"github.com/citizenadam/GhostGate/internal/hostfs"
)

// SeedToolName is the example definition written to a freshly created
// registry so a new installation has something browsable.
const SeedToolName = "sys_info"

// Ensure creates the registry directory and seeds it with one example
// definition when it does not exist yet.
//
// Best-effort only: no other component depends on the seed, and a failure
// here must never block session startup. Failures are logged only when
// debug mode is on.
func Ensure(fsys hostfs.FS, dir string, debug bool) {
	if info, err := fsys.Stat(dir); err == nil && info.IsDir() {
		return
	}

	if err := fsys.MkdirAll(dir, 0o750); err != nil {
		if debug {
			log.Warn().Err(err).Str("dir", dir).Msg("registry: bootstrap mkdir failed")
		}
		return
	}

	if err := fsys.WriteFile(dir+"/"+SeedToolName+".json", seedDefinition(), 0o640); err != nil {
		if debug {
			log.Warn().Err(err).Str("dir", dir).Msg("registry: bootstrap seed write failed")
		}
		return
	}

	log.Debug().Str("dir", dir).Msg("registry: seeded new registry directory")
}

// seedDefinition builds the sys_info example definition.
func seedDefinition() []byte {
	doc := []byte(`{}`)
	doc, _ = sjson.SetBytes(doc, "name", SeedToolName)
	doc, _ = sjson.SetBytes(doc, "description",
		"Report basic host information (OS, architecture, working directory). Example definition seeded by GhostGate.")
	doc, _ = sjson.SetRawBytes(doc, "parameters", []byte(`{
  "type": "object",
  "properties": {
    "detail": {
      "type": "string",
      "description": "Level of detail to report: summary or full"
    }
  }
}`))
	return doc
}
