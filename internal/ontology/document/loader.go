package document

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/logger"
	"github.com/conduit-lang/ontogen/internal/ontology"
)

// Loader reads ontology documents and their imports from a filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader reading from fs.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load reads the document at path and every document it imports,
// transitively, and returns the merged set. Imports are file paths relative
// to the importing document.
func (l *Loader) Load(path string) (*ontology.Set, error) {
	state := &loadState{byPath: make(map[string]*ontology.Ontology)}

	root, err := l.load(filepath.Clean(path), state)
	if err != nil {
		return nil, err
	}

	logger.Debugw("Loaded ontology documents",
		"root", root.IRI,
		"documents", len(state.order)+1)

	return ontology.NewSet(root, state.order...), nil
}

// Files returns the document paths reachable from path, root first.
func (l *Loader) Files(path string) ([]string, error) {
	state := &loadState{byPath: make(map[string]*ontology.Ontology)}
	if _, err := l.load(filepath.Clean(path), state); err != nil {
		return nil, err
	}
	return append([]string{filepath.Clean(path)}, state.paths...), nil
}

type loadState struct {
	byPath map[string]*ontology.Ontology
	// order and paths list imported documents in discovery order.
	order []*ontology.Ontology
	paths []string
}

func (l *Loader) load(path string, state *loadState) (*ontology.Ontology, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	var importPaths []string
	for _, imp := range raw.Imports {
		p := imp
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		importPaths = append(importPaths, filepath.Clean(p))
	}

	// Register before descending so import cycles terminate.
	placeholder := &ontology.Ontology{}
	state.byPath[path] = placeholder

	var importIRIs []ontology.IRI
	for i, p := range importPaths {
		if existing, ok := state.byPath[p]; ok {
			if existing.IRI != "" {
				importIRIs = append(importIRIs, existing.IRI)
			}
			continue
		}
		if exists, _ := afero.Exists(l.fs, p); !exists {
			return nil, errors.WithHintf(
				errors.Wrapf(errors.ErrImportNotFound, "%s imports %s", path, raw.Imports[i]),
				"import paths are resolved relative to %s", dir)
		}
		imported, err := l.load(p, state)
		if err != nil {
			return nil, err
		}
		state.order = append(state.order, imported)
		state.paths = append(state.paths, p)
		importIRIs = append(importIRIs, imported.IRI)
	}

	o, err := convert(raw, importIRIs)
	if err != nil {
		return nil, errors.Wrapf(err, "converting %s", path)
	}
	*placeholder = *o
	return placeholder, nil
}

// decode parses document bytes, choosing the format from the file extension.
func decode(path string, data []byte) (*rawDocument, error) {
	var raw rawDocument

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "parsing YAML %s", path), errors.ErrInvalidDocument)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "parsing JSON %s", path), errors.ErrInvalidDocument)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "parsing TOML %s", path), errors.ErrInvalidDocument)
		}
	default:
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidDocument, "unsupported document format %q", filepath.Ext(path)),
			"use a .yaml, .yml, .json or .toml file")
	}

	return &raw, nil
}
