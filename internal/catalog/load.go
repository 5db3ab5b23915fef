package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed exams/*.json
var bundled embed.FS

//go:embed exam.schema.json
var examSchemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func examSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(examSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse exam schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://exam.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add exam schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// Parse decodes and validates a single exam definition.
func Parse(data []byte) (ExamConfig, error) {
	schema, err := examSchema()
	if err != nil {
		return ExamConfig{}, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return ExamConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return ExamConfig{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var cfg ExamConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ExamConfig{}, fmt.Errorf("decode exam: %w", err)
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return ExamConfig{}, err
	}
	return cfg, nil
}

// Prepare fills defaults on a config assembled in code and validates it.
func Prepare(cfg ExamConfig) (ExamConfig, error) {
	cfg = cfg.Clone()
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return ExamConfig{}, err
	}
	return cfg, nil
}

// Bundled returns the exams shipped with the binary.
func Bundled() ([]ExamConfig, error) {
	return readFS(bundled, "exams")
}

// ReadDir reads every *.json exam in dir.
func ReadDir(dir string) ([]ExamConfig, error) {
	return readFS(os.DirFS(dir), ".")
}

func readFS(fsys fs.FS, root string) ([]ExamConfig, error) {
	matches, err := fs.Glob(fsys, path.Join(root, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}

	var exams []ExamConfig
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		exams = append(exams, cfg)
	}
	return exams, nil
}

// Load builds the catalog from the bundled exams plus any exams in dir.
// An empty dir loads only the bundled set.
func Load(dir string) (*Catalog, error) {
	exams, err := Bundled()
	if err != nil {
		return nil, fmt.Errorf("load bundled exams: %w", err)
	}
	if dir != "" {
		extra, err := ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load exams from %s: %w", dir, err)
		}
		exams = append(exams, extra...)
	}
	return New(exams)
}
