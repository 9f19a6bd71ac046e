package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"alertsim/internal/model"
)

// Store owns on-disk round-tripping of the configuration document. Load and
// Save recover from every I/O failure internally; callers never see one.
type Store struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() *model.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if s.logger != nil {
				s.logger.Warn("config file not found, using defaults", "path", s.path)
			}
		} else if s.logger != nil {
			s.logger.Error("config read failed, using defaults", "path", s.path, "err", err)
		}
		return DefaultDocument()
	}
	doc := model.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		if s.logger != nil {
			s.logger.Error("config parse failed, using defaults", "path", s.path, "err", err)
		}
		return DefaultDocument()
	}
	// The default document is legacy-shaped. Merging it into a document that
	// already carries alert_sources would reintroduce stubs the migration
	// consumed, so only pre-migration documents are topped up.
	if doc.Sources.Len() == 0 {
		return MergeDefaults(doc, DefaultDocument())
	}
	return doc
}

func (s *Store) Save(doc *model.Document) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		if s.logger != nil {
			s.logger.Error("config encode failed", "path", s.path, "err", err)
		}
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		if s.logger != nil {
			s.logger.Error("config save failed", "path", s.path, "err", err)
		}
	}
}

// MergeDefaults copies top-level keys present in defaults but absent from
// loaded. Additive only: existing keys are never overwritten.
func MergeDefaults(loaded, defaults *model.Document) *model.Document {
	for key, val := range defaults.Extra {
		if _, ok := loaded.Extra[key]; !ok {
			loaded.Extra[key] = val
		}
	}
	return loaded
}

func DefaultDocument() *model.Document {
	doc := model.NewDocument()
	doc.Extra["SIEM_Alert"] = json.RawMessage(`{"default_severity":"Medium"}`)
	doc.Extra["Login_Alert"] = json.RawMessage(`{"default_status":"Success"}`)
	doc.Extra["Smart_Fence_Alert"] = json.RawMessage(`{"default_status":"Breached"}`)
	doc.Extra["Location_Based_Alert"] = json.RawMessage(`{"default_user":"Unknown"}`)
	doc.Extra["Motion_Sensor_Alert"] = json.RawMessage(`{"default_status":"Detected"}`)
	doc.Extra["IR_Sensor_Alert"] = json.RawMessage(`{"default_status":"Detected"}`)
	doc.Extra["sensor_types"] = json.RawMessage(`{}`)
	doc.Extra["items"] = json.RawMessage(`{}`)
	return doc
}
