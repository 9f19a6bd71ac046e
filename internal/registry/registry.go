package registry

import (
	"fmt"
	"log/slog"

	"alertsim/internal/model"
	"alertsim/internal/store"
)

// Registry owns the in-memory alert-source mapping. Every mutation persists
// through the store before returning, so disk always matches memory.
type Registry struct {
	store  *store.Store
	logger *slog.Logger
	doc    *model.Document
	lastID map[string]int // highest item number handed out per source this session
}

func New(st *store.Store, logger *slog.Logger) *Registry {
	r := &Registry{store: st, logger: logger, doc: st.Load(), lastID: make(map[string]int)}
	if r.doc.Sources.Len() == 0 {
		r.migrate()
	}
	return r
}

func (r *Registry) persist() {
	r.store.Save(r.doc)
}

func (r *Registry) source(name string) (*model.AlertSource, error) {
	src, ok := r.doc.Sources.Get(name)
	if !ok {
		return nil, fmt.Errorf("alert source %q: %w", name, ErrNotFound)
	}
	return src, nil
}

func (r *Registry) List() []string {
	return r.doc.Sources.Names()
}

func (r *Registry) Has(name string) bool {
	_, ok := r.doc.Sources.Get(name)
	return ok
}

func (r *Registry) Fields(name string) ([]string, error) {
	src, err := r.source(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(src.Fields))
	copy(out, src.Fields)
	return out, nil
}

func (r *Registry) Add(name string, fields []string) error {
	if _, ok := r.doc.Sources.Get(name); ok {
		return fmt.Errorf("alert source %q: %w", name, ErrDuplicateName)
	}
	if len(fields) == 0 {
		return validationErrorf("fields", "cannot be empty.")
	}
	cp := make([]string, len(fields))
	copy(cp, fields)
	r.doc.Sources.Set(name, model.NewAlertSource(cp))
	r.persist()
	if r.logger != nil {
		r.logger.Info("alert source added", "name", name, "fields", len(fields))
	}
	return nil
}

func (r *Registry) Remove(name string) error {
	if !r.doc.Sources.Delete(name) {
		return fmt.Errorf("alert source %q: %w", name, ErrNotFound)
	}
	delete(r.lastID, name)
	r.persist()
	if r.logger != nil {
		r.logger.Info("alert source removed", "name", name)
	}
	return nil
}

func (r *Registry) Settings(name string) (map[string]model.SettingValue, error) {
	src, err := r.source(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.SettingValue, len(src.Settings))
	for k, v := range src.Settings {
		out[k] = v
	}
	return out, nil
}

// Setting returns one setting's string form, or def when the source or key
// is absent.
func (r *Registry) Setting(name, key, def string) string {
	src, ok := r.doc.Sources.Get(name)
	if !ok {
		return def
	}
	v, ok := src.Settings[key]
	if !ok {
		return def
	}
	return v.String()
}

func (r *Registry) SetSetting(name, key string, value model.SettingValue) error {
	src, err := r.source(name)
	if err != nil {
		return err
	}
	src.Settings[key] = value
	r.persist()
	return nil
}

func (r *Registry) DeleteSetting(name, key string) error {
	src, err := r.source(name)
	if err != nil {
		return err
	}
	if _, ok := src.Settings[key]; !ok {
		return fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	delete(src.Settings, key)
	r.persist()
	return nil
}

func (r *Registry) Thresholds(name string) (map[string]model.Rule, error) {
	src, err := r.source(name)
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.Rule, len(src.Thresholds))
	for k, v := range src.Thresholds {
		out[k] = v
	}
	return out, nil
}

func (r *Registry) SetThreshold(name, field string, rule model.Rule) error {
	src, err := r.source(name)
	if err != nil {
		return err
	}
	src.Thresholds[field] = rule
	r.persist()
	return nil
}

func (r *Registry) DeleteThreshold(name, field string) error {
	src, err := r.source(name)
	if err != nil {
		return err
	}
	if _, ok := src.Thresholds[field]; !ok {
		return fmt.Errorf("threshold %q: %w", field, ErrNotFound)
	}
	delete(src.Thresholds, field)
	r.persist()
	return nil
}
