// Package registry reads the on-disk tool-definition catalog.
//
// DESIGN: The catalog has no persistent in-memory identity. Every query
// re-reads the registry directory so on-disk edits are picked up without a
// restart. A directory-level failure degrades to an empty catalog; callers
// treat "no tools" and "directory missing" identically.
package registry

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"

	"github.com/citizenadam/GhostGate/internal/hostfs"
	"github.com/citizenadam/GhostGate/internal/tokens"
)

// Definition is one tool definition loaded from the registry directory.
// Parameters is an opaque JSON schema carried through unmodified; the engine
// never interprets it beyond size estimation and re-serialization.
type Definition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// Document renders the definition back to a single JSON object, preserving
// the raw parameters schema byte-for-byte.
func (d Definition) Document() []byte {
	doc := []byte(`{}`)
	doc, _ = sjson.SetBytes(doc, "name", d.Name)
	doc, _ = sjson.SetBytes(doc, "description", d.Description)
	if len(d.Parameters) > 0 {
		doc, _ = sjson.SetRawBytes(doc, "parameters", d.Parameters)
	}
	return doc
}

// SchemaTokens estimates the prompt cost of injecting this definition.
func (d Definition) SchemaTokens() int {
	return tokens.EstimateBytes(d.Document())
}

// Load reads every definition file in the registry directory into a
// name-keyed catalog.
//
// Definitions are keyed by their declared name, not their filename. Two
// files may declare the same name; the last one in enumeration order wins.
// Enumeration order is platform-dependent, so that collision outcome is
// nondeterministic.
//
// Any failure to list the directory yields an empty catalog, never a
// partial catalog plus an error. Individual unparseable files are skipped.
func Load(fsys hostfs.FS, dir string) map[string]Definition {
	catalog := make(map[string]Definition)

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		log.Debug().Err(err).Str("dir", dir).Msg("registry: unavailable, using empty catalog")
		return catalog
	}

	for _, entry := range entries {
		if entry.IsDir() || !definitionFile(entry.Name()) {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("registry: unreadable definition, skipping")
			continue
		}

		def, ok := parseDefinition(data)
		if !ok {
			log.Debug().Str("path", path).Msg("registry: malformed definition, skipping")
			continue
		}
		catalog[def.Name] = def
	}

	return catalog
}

// parseDefinition extracts {name, description, parameters} from one file.
// Comments are tolerated in definition files the same way they are in
// settings files.
func parseDefinition(data []byte) (Definition, bool) {
	data = jsonc.ToJSON(data)
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return Definition{}, false
	}

	name := strings.TrimSpace(parsed.Get("name").String())
	if name == "" {
		return Definition{}, false
	}

	def := Definition{
		Name:        name,
		Description: parsed.Get("description").String(),
	}
	if params := parsed.Get("parameters"); params.Exists() {
		def.Parameters = json.RawMessage(params.Raw)
	}
	return def, true
}

func definitionFile(name string) bool {
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".jsonc")
}
