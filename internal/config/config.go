// Package config loads YAML run files and checks them against an embedded
// JSON schema before decoding.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"mad-grid/internal/core"
	pcore "mad-grid/pkg/core"
)

//go:embed run.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func runSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("run.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// File is a run description.
type File struct {
	Scenario   string            `yaml:"scenario"`
	Seed       int64             `yaml:"seed"`
	Steps      int               `yaml:"steps"`
	TPS        int               `yaml:"tps"`
	Params     map[string]string `yaml:"params"`
	Collisions []CollisionRule   `yaml:"collisions"`
	Sweep      *Sweep            `yaml:"sweep"`
}

// CollisionRule overrides one entry of the scenario's collision map.
type CollisionRule struct {
	Src  int    `yaml:"src"`
	Dst  int    `yaml:"dst"`
	Type string `yaml:"type"`
}

// Sweep describes a parameter grid.
type Sweep struct {
	Sizes       []string            `yaml:"sizes"`
	Repetitions int                 `yaml:"repetitions"`
	MaxSteps    int                 `yaml:"max_steps"`
	Workers     int                 `yaml:"workers"`
	Params      map[string][]string `yaml:"params"`
}

// Load reads and validates a run file.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(raw)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse validates raw YAML against the run schema and decodes it.
func Parse(raw []byte) (File, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	// Round-trip through JSON so the validator sees plain JSON values.
	js, err := json.Marshal(doc)
	if err != nil {
		return File{}, fmt.Errorf("convert yaml: %w", err)
	}
	var inst any
	if err := json.Unmarshal(js, &inst); err != nil {
		return File{}, fmt.Errorf("convert yaml: %w", err)
	}
	s, err := runSchema()
	if err != nil {
		return File{}, fmt.Errorf("compile schema: %w", err)
	}
	if err := s.Validate(inst); err != nil {
		return File{}, fmt.Errorf("invalid run file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("decode run file: %w", err)
	}
	return f, nil
}

// Apply installs the file's collision overrides on m.
func (f File) Apply(m *pcore.CollisionMap) error {
	for _, r := range f.Collisions {
		t, err := pcore.ParseCollisionType(r.Type)
		if err != nil {
			return err
		}
		if err := m.Add(t, r.Src, r.Dst); err != nil {
			return fmt.Errorf("collision %d -> %d: %w", r.Src, r.Dst, err)
		}
	}
	return nil
}

// ParseSize reads a "WxH" board size.
func ParseSize(s string) (core.Size, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return core.Size{}, fmt.Errorf("%w: size %q is not WxH", pcore.ErrInvalidArgument, s)
	}
	wi, err := strconv.Atoi(w)
	if err != nil || wi <= 0 {
		return core.Size{}, fmt.Errorf("%w: size %q has a bad width", pcore.ErrInvalidArgument, s)
	}
	hi, err := strconv.Atoi(h)
	if err != nil || hi <= 0 {
		return core.Size{}, fmt.Errorf("%w: size %q has a bad height", pcore.ErrInvalidArgument, s)
	}
	return core.Size{W: wi, H: hi}, nil
}

// ParseOverrides turns repeated key=value flags into a parameter map.
func ParseOverrides(kvs []string) (map[string]string, error) {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: override %q is not key=value", pcore.ErrInvalidArgument, kv)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
