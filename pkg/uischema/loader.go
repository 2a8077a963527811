package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{models: make(map[string]Model)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, raw := range doc.Models {
			id := strings.TrimSpace(name)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty model name", path)
			}
			if prev, exists := store.models[id]; exists {
				return fmt.Errorf("uischema: duplicate model %q (files %s and %s)", id, prev.Source, path)
			}
			model, err := normaliseModel(raw, id, path)
			if err != nil {
				return err
			}
			store.models[id] = model
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Model returns the overlay of the named model.
func (s *Store) Model(name string) (Model, bool) {
	if s == nil {
		return Model{}, false
	}
	model, ok := s.models[name]
	return model, ok
}

// Empty reports whether the store holds any overlay.
func (s *Store) Empty() bool {
	return s == nil || len(s.models) == 0
}

type documentFile struct {
	Models map[string]modelFile `json:"models" yaml:"models"`
}

type modelFile struct {
	Title  string                 `json:"title" yaml:"title"`
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseModel(raw modelFile, name, source string) (Model, error) {
	model := Model{
		Name:   name,
		Source: source,
		Title:  strings.TrimSpace(raw.Title),
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}
	for key, cfg := range raw.Fields {
		attr := strings.TrimSpace(key)
		if attr == "" {
			return Model{}, fmt.Errorf("uischema: model %q (file %s) has an empty field key", name, source)
		}
		if cfg.Order != nil && *cfg.Order < 0 {
			return Model{}, fmt.Errorf("uischema: model %q (file %s) field %q has a negative order", name, source, attr)
		}
		model.Fields[attr] = cfg.clone()
	}
	return model, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
