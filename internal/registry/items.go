package registry

import (
	"fmt"
	"strconv"
	"strings"

	"alertsim/internal/model"
)

func idPrefix(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// NextID reports the next sequential id for the source: prefix from the
// first three characters of the name, numeric suffix one past the highest
// present or already handed out this session. Sparse numbering is fine;
// freed ids are never reused.
func (r *Registry) NextID(name string) (string, error) {
	src, err := r.source(name)
	if err != nil {
		return "", err
	}
	prefix := idPrefix(name)
	return fmt.Sprintf("%s-%03d", prefix, r.nextNum(name, src, prefix)), nil
}

func (r *Registry) nextNum(name string, src *model.AlertSource, prefix string) int {
	highest := r.lastID[name]
	for _, it := range src.Items {
		if !strings.HasPrefix(it.ID, prefix+"-") {
			continue
		}
		n, err := strconv.Atoi(it.ID[len(prefix)+1:])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}

func (r *Registry) allocateID(name string, src *model.AlertSource) string {
	prefix := idPrefix(name)
	n := r.nextNum(name, src, prefix)
	r.lastID[name] = n
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// AddItem validates every source field before inserting; any failure aborts
// the whole add.
func (r *Registry) AddItem(name string, values map[string]string) (model.Item, error) {
	src, err := r.source(name)
	if err != nil {
		return model.Item{}, err
	}
	for _, field := range src.Fields {
		if err := r.Validate(name, field, values[field]); err != nil {
			return model.Item{}, err
		}
	}
	item := model.NewItem(r.allocateID(name, src))
	for _, field := range src.Fields {
		item.SetAttr(field, values[field])
	}
	src.Items = append(src.Items, item)
	r.persist()
	if r.logger != nil {
		r.logger.Info("item added", "source", name, "id", item.ID)
	}
	return item, nil
}

// FindOrCreateAuto looks an item up by exact match on keyField. A hit updates
// valueField in place; a miss appends a fresh auto-generated item. The second
// return reports whether an item was created.
func (r *Registry) FindOrCreateAuto(name, keyField, keyValue, valueField, value string) (model.Item, bool, error) {
	src, err := r.source(name)
	if err != nil {
		return model.Item{}, false, err
	}
	for i := range src.Items {
		if src.Items[i].Attr(keyField) == keyValue {
			src.Items[i].SetAttr(valueField, value)
			r.persist()
			return src.Items[i], false, nil
		}
	}
	item := model.NewItem(r.allocateID(name, src))
	item.SetAttr(keyField, keyValue)
	item.SetAttr(valueField, value)
	item.AutoGenerated = true
	src.Items = append(src.Items, item)
	r.persist()
	if r.logger != nil {
		r.logger.Info("item auto-created", "source", name, "id", item.ID, keyField, keyValue)
	}
	return item, true, nil
}

func (r *Registry) ConfirmOrDiscard(name, itemID string, keep bool) error {
	src, err := r.source(name)
	if err != nil {
		return err
	}
	for i := range src.Items {
		if src.Items[i].ID != itemID {
			continue
		}
		if keep {
			src.Items[i].AutoGenerated = false
		} else {
			src.Items[i].RemoveAfterSim = true
		}
		r.persist()
		return nil
	}
	return fmt.Errorf("item %q: %w", itemID, ErrNotFound)
}

// Cleanup drops flagged items from every source in one pass, regardless of
// which source triggered it.
func (r *Registry) Cleanup() {
	removed := 0
	for _, name := range r.doc.Sources.Names() {
		src, _ := r.doc.Sources.Get(name)
		kept := src.Items[:0]
		for _, it := range src.Items {
			if it.RemoveAfterSim {
				removed++
				continue
			}
			kept = append(kept, it)
		}
		src.Items = kept
	}
	r.persist()
	if removed > 0 && r.logger != nil {
		r.logger.Info("transient items removed", "count", removed)
	}
}

func (r *Registry) Items(name string) ([]model.Item, error) {
	src, err := r.source(name)
	if err != nil {
		return nil, err
	}
	out := make([]model.Item, len(src.Items))
	copy(out, src.Items)
	return out, nil
}

func (r *Registry) AutoGenerated(name string) []model.Item {
	src, ok := r.doc.Sources.Get(name)
	if !ok {
		return nil
	}
	var out []model.Item
	for _, it := range src.Items {
		if it.AutoGenerated {
			out = append(out, it)
		}
	}
	return out
}

// EditItem validates all supplied values first, then applies them together;
// empty values keep the current ones.
func (r *Registry) EditItem(name, itemID string, values map[string]string) error {
	src, err := r.source(name)
	if err != nil {
		return err
	}
	idx := -1
	for i := range src.Items {
		if src.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("item %q: %w", itemID, ErrNotFound)
	}
	for _, field := range src.Fields {
		v, ok := values[field]
		if !ok || v == "" {
			continue
		}
		if err := r.Validate(name, field, v); err != nil {
			return err
		}
	}
	for _, field := range src.Fields {
		if v, ok := values[field]; ok && v != "" {
			src.Items[idx].SetAttr(field, v)
		}
	}
	r.persist()
	return nil
}

func (r *Registry) RemoveItem(name, itemID string) error {
	src, err := r.source(name)
	if err != nil {
		return err
	}
	for i := range src.Items {
		if src.Items[i].ID == itemID {
			src.Items = append(src.Items[:i], src.Items[i+1:]...)
			r.persist()
			if r.logger != nil {
				r.logger.Info("item removed", "source", name, "id", itemID)
			}
			return nil
		}
	}
	return fmt.Errorf("item %q: %w", itemID, ErrNotFound)
}

// SearchItems matches a case-insensitive substring against item ids, field
// names, and field values.
func (r *Registry) SearchItems(name, query string) ([]model.Item, error) {
	src, err := r.source(name)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []model.Item
	for _, it := range src.Items {
		if strings.Contains(strings.ToLower(it.ID), q) {
			out = append(out, it)
			continue
		}
		for k, v := range it.Attrs {
			if strings.Contains(strings.ToLower(k), q) || strings.Contains(strings.ToLower(v.String()), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out, nil
}
