package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Makepad-fr/todosphere/internal/model"
)

// SnapshotName is the key the whole store is persisted under.
const SnapshotName = "todo-storage"

// Snapshot is the persisted shape of the store. The active selection and the
// current user are transient and never written.
type Snapshot struct {
	Lists []model.TodoList `json:"lists"`
	model.Preferences
}

// Persister reads and writes a Snapshot.
type Persister interface {
	// Load returns ErrNoSnapshot when nothing was stored yet.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Encode renders the snapshot the way every backend stores it.
func (s *Snapshot) Encode() ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// DecodeSnapshot parses data produced by Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &snap, nil
}

// Memory keeps the snapshot in process. Used by tests.
type Memory struct {
	data []byte
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(context.Context) (*Snapshot, error) {
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return DecodeSnapshot(m.data)
}

func (m *Memory) Save(_ context.Context, snap *Snapshot) error {
	b, err := snap.Encode()
	if err != nil {
		return err
	}
	m.data = b
	return nil
}
