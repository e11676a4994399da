package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/gesturekit/pointer"
)

const fileVersion = 1

// persistedTouch is the JSON form of pointer.Touch.
type persistedTouch struct {
	ID int32   `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// persistedSample is the JSON form of Sample. The action is stored as its
// numeric value; offsets are nanoseconds for an exact round trip.
type persistedSample struct {
	OffsetNS int64            `json:"offset_ns"`
	Action   uint8            `json:"action"`
	Pointer  int32            `json:"pointer,omitempty"`
	Points   []persistedTouch `json:"points,omitempty"`
}

// persistedTrace is the root structure of a trace file.
type persistedTrace struct {
	Version   int               `json:"version"`
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Samples   []persistedSample `json:"samples"`
}

// Save writes the trace to path as indented JSON. The file is written
// atomically using a temporary file and rename.
func Save(tr *Trace, path string) error {
	data := persistedTrace{
		Version:   fileVersion,
		ID:        tr.ID.String(),
		Name:      tr.Name,
		CreatedAt: tr.CreatedAt,
		Samples:   make([]persistedSample, len(tr.Samples)),
	}
	for i, s := range tr.Samples {
		ps := persistedSample{
			OffsetNS: int64(s.Offset),
			Action:   uint8(s.Event.Action),
			Pointer:  int32(s.Event.Pointer),
			Points:   make([]persistedTouch, len(s.Event.Points)),
		}
		for j, pt := range s.Event.Points {
			ps.Points[j] = persistedTouch{ID: int32(pt.ID), X: pt.X, Y: pt.Y}
		}
		data.Samples[i] = ps
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling trace: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating trace directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("writing trace file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replacing trace file: %w", err)
	}
	return nil
}

// Load reads a trace file written by Save.
func Load(path string) (*Trace, error) {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace file: %w", err)
	}

	var data persistedTrace
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("parsing trace file %s: %w", path, err)
	}
	if data.Version > fileVersion {
		return nil, fmt.Errorf("unsupported trace file version: %d (max supported: %d)",
			data.Version, fileVersion)
	}

	id := uuid.Nil
	if data.ID != "" {
		id, err = uuid.Parse(data.ID)
		if err != nil {
			return nil, fmt.Errorf("parsing trace id %q: %w", data.ID, err)
		}
	}

	tr := &Trace{
		ID:        id,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		Samples:   make([]Sample, len(data.Samples)),
	}
	for i, ps := range data.Samples {
		ev := pointer.Event{
			Action:  pointer.Action(ps.Action),
			Pointer: pointer.ID(ps.Pointer),
			Points:  make([]pointer.Touch, len(ps.Points)),
			Time:    data.CreatedAt.Add(time.Duration(ps.OffsetNS)),
		}
		for j, pt := range ps.Points {
			ev.Points[j] = pointer.Touch{ID: pointer.ID(pt.ID), X: pt.X, Y: pt.Y}
		}
		tr.Samples[i] = Sample{Offset: time.Duration(ps.OffsetNS), Event: ev}
	}
	return tr, nil
}
