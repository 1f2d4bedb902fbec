package ontology

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/mhartley/compass/internal/graph"
	"github.com/mhartley/compass/internal/logger"
)

// MinFrameworkVersion is the oldest framework definition format this engine
// accepts.
const MinFrameworkVersion = "v1.0.0"

// Loader parses framework documents and loads them into a graph store.
type Loader struct {
	store *graph.Store
	log   *logger.Logger
}

// NewLoader creates a Loader for the given store.
func NewLoader(store *graph.Store, log *logger.Logger) *Loader {
	return &Loader{store: store, log: log}
}

// Result summarizes a successful load.
type Result struct {
	Framework  string           `json:"framework"`
	Version    string           `json:"version"`
	Statistics graph.Statistics `json:"statistics"`
}

// Load parses, validates, and merges a framework document into the store.
// Any failure — malformed JSON, shape violation, unsupported version, or a
// competency-model violation — rejects the whole document and leaves the
// current snapshot untouched.
func (l *Loader) Load(raw []byte) (*Result, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if err := l.store.Load(doc.facts()); err != nil {
		return nil, err
	}

	res := &Result{
		Framework:  doc.Framework,
		Version:    doc.Version,
		Statistics: l.store.Snapshot().Statistics(),
	}
	l.log.Info("ontology loaded",
		"framework", doc.Framework,
		"version", doc.Version,
		"skills", res.Statistics.Skills,
		"roles", res.Statistics.Roles,
	)
	return res, nil
}

// Replace is Load, but discards the current snapshot first. Used for full
// periodic refreshes from the authoritative source.
func (l *Loader) Replace(raw []byte) (*Result, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if err := l.store.Replace(doc.facts()); err != nil {
		return nil, err
	}

	res := &Result{
		Framework:  doc.Framework,
		Version:    doc.Version,
		Statistics: l.store.Snapshot().Statistics(),
	}
	l.log.Info("ontology replaced",
		"framework", doc.Framework,
		"version", doc.Version,
		"skills", res.Statistics.Skills,
		"roles", res.Statistics.Roles,
	)
	return res, nil
}

// Parse validates a raw document's shape and version and decodes it.
// Violations are reported as *graph.ErrSchemaViolation so callers handle
// load failures uniformly.
func Parse(raw []byte) (*Document, error) {
	if err := validateShape(raw); err != nil {
		return nil, &graph.ErrSchemaViolation{Problems: []string{err.Error()}}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &graph.ErrSchemaViolation{Problems: []string{fmt.Sprintf("decode document: %v", err)}}
	}

	version := canonicalVersion(doc.Version)
	if !semver.IsValid(version) {
		return nil, &graph.ErrSchemaViolation{
			Problems: []string{fmt.Sprintf("invalid framework version %q (want semver)", doc.Version)},
		}
	}
	if semver.Compare(version, MinFrameworkVersion) < 0 {
		return nil, &graph.ErrSchemaViolation{
			Problems: []string{fmt.Sprintf("framework version %s older than minimum supported %s", version, MinFrameworkVersion)},
		}
	}

	return &doc, nil
}

// canonicalVersion accepts versions with or without the "v" prefix.
func canonicalVersion(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
