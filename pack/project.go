package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// headerFields are kept on every projected record.
var headerFields = []string{"_id", "type", "name", "img", "uuid", "originalName"}

// project keeps only the dot-paths in fields, plus the header fields.
func project(doc map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields)+len(headerFields))
	for _, f := range headerFields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	for _, path := range fields {
		copyPath(doc, out, strings.Split(path, "."))
	}
	return out
}

func copyPath(src, dst map[string]any, parts []string) {
	v, ok := src[parts[0]]
	if !ok {
		return
	}
	if len(parts) == 1 {
		dst[parts[0]] = v
		return
	}
	child, ok := v.(map[string]any)
	if !ok {
		return
	}
	next, ok := dst[parts[0]].(map[string]any)
	if !ok {
		next = map[string]any{}
		dst[parts[0]] = next
	}
	copyPath(child, next, parts[1:])
}

// newRecord projects a raw document into a Record of pack m. On error the
// returned record still carries the header fields that could be read.
func newRecord(m Metadata, doc map[string]any, fields []string) (Record, error) {
	projected := project(doc, fields)

	var r Record
	var errs []error
	for _, h := range []struct {
		key string
		dst *string
	}{
		{"_id", &r.ID},
		{"uuid", &r.UUID},
		{"type", &r.Type},
		{"name", &r.Name},
		{"originalName", &r.OriginalName},
		{"img", &r.Image},
	} {
		v, ok := projected[h.key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s is %T", ErrInvalidField, h.key, v))
			continue
		}
		*h.dst = s
	}
	if r.UUID == "" && r.ID != "" {
		r.UUID = fmt.Sprintf("Compendium.%s.%s.%s", m.ID, m.Type, r.ID)
	}
	if len(errs) > 0 {
		return r, errors.Join(errs...)
	}

	raw, err := json.Marshal(projected)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	r.Raw = raw
	return r, nil
}
