// Package jsonstore persists the store snapshot as a single JSON file.
// Human-readable and portable. No locking; one process owns the file.
package jsonstore

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/todosphere/internal/store"
)

const schemaURL = "https://todosphere.dev/schema/snapshot.json"

//go:embed schema.json
var schemaJSON []byte

// ErrSchema marks a snapshot file that does not match the expected layout.
var ErrSchema = errors.New("snapshot does not match schema")

// Store reads and writes <dir>/todo-storage.json.
type Store struct {
	path   string
	schema *jsonschema.Schema
}

// New returns a file store rooted at dir. The directory is created on first save.
func New(dir string) (*Store, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Store{
		path:   filepath.Join(dir, store.SnapshotName+".json"),
		schema: schema,
	}, nil
}

// Path is the snapshot file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context) (*store.Snapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNoSnapshot
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := s.validate(b); err != nil {
		return nil, err
	}
	return store.DecodeSnapshot(b)
}

func (s *Store) Save(_ context.Context, snap *store.Snapshot) error {
	b, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	// write then rename so a crash never leaves half a snapshot behind
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

func (s *Store) validate(b []byte) error {
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	err := s.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	leaf := firstLeaf(ve)
	loc := leaf.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%w: %s: %s", ErrSchema, loc, leaf.Message)
}

// firstLeaf walks down to the first cause that has no causes of its own.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
