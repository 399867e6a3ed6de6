package gcloud

import (
	"sort"
	"strings"
)

// The service's request schemas use "type" as a field name in several nested
// messages. Agent-facing configs carry the field as "type_" so the key is safe
// in every host runtime; the adapter renames it back before the wire call.

const (
	reservedKey  = "type"
	sanitizedKey = "type_"
)

// SanitizeConfig returns a deep copy of cfg with every nested "type" key
// renamed to "type_". Keys that are already sanitized are left alone, so the
// transform is idempotent. The input map is never mutated.
func SanitizeConfig(cfg map[string]any) map[string]any {
	renamed, _ := renameKeys(cfg, reservedKey, sanitizedKey)
	return renamed.(map[string]any)
}

// Desanitize reverses SanitizeConfig, renaming every nested "type_" key back
// to "type" so the config matches the service's JSON schema.
func Desanitize(cfg map[string]any) map[string]any {
	renamed, _ := renameKeys(cfg, sanitizedKey, reservedKey)
	return renamed.(map[string]any)
}

// renameKeys walks maps and slices, renaming from -> to at every depth. The
// rename only happens when the target key is absent, which keeps repeated
// application stable. Returns the copy and whether anything changed.
func renameKeys(v any, from, to string) (any, bool) {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		changed := false
		for k, child := range val {
			renamedChild, childChanged := renameKeys(child, from, to)
			changed = changed || childChanged
			if k == from {
				if _, exists := val[to]; !exists {
					out[to] = renamedChild
					changed = true
					continue
				}
			}
			out[k] = renamedChild
		}
		return out, changed
	case []any:
		out := make([]any, len(val))
		changed := false
		for i, child := range val {
			out[i], _ = renameKeys(child, from, to)
		}
		return out, changed
	default:
		return v, false
	}
}

// UpdateSpec is the translated form of a resource update: the canonical name,
// the field mask paths, and the sanitized config body.
type UpdateSpec struct {
	Name   string
	Paths  []string
	Config map[string]any
}

// BuildUpdate validates an update request against its config. Every mask path
// must refer to a top-level key present in the config, otherwise the update
// would silently clear fields the caller did not intend to touch.
func BuildUpdate(name string, mask []string, cfg map[string]any) (*UpdateSpec, error) {
	if name == "" {
		return nil, InvalidArgumentf("resource name must not be empty")
	}
	if len(mask) == 0 {
		return nil, InvalidArgumentf("update mask must not be empty")
	}
	sanitized := SanitizeConfig(cfg)
	for _, path := range mask {
		root := path
		if i := strings.IndexByte(path, '.'); i >= 0 {
			root = path[:i]
		}
		if _, ok := sanitized[root]; !ok {
			return nil, InvalidArgumentf("update mask path %q not present in config", path)
		}
	}
	return &UpdateSpec{Name: name, Paths: mask, Config: sanitized}, nil
}

// RequireSections checks that each named top-level section exists in the
// config and is a non-nil object.
func RequireSections(cfg map[string]any, sections ...string) error {
	for _, s := range sections {
		v, ok := cfg[s]
		if !ok || v == nil {
			return InvalidArgumentf("config section %q is required", s)
		}
		if _, isMap := v.(map[string]any); !isMap {
			return InvalidArgumentf("config section %q must be an object", s)
		}
	}
	return nil
}

// RequireOneOf checks that exactly one of the named keys is set in the config.
func RequireOneOf(cfg map[string]any, keys ...string) (string, error) {
	var present []string
	for _, k := range keys {
		if v, ok := cfg[k]; ok && v != nil {
			present = append(present, k)
		}
	}
	switch len(present) {
	case 1:
		return present[0], nil
	case 0:
		sort.Strings(keys)
		return "", InvalidArgumentf("exactly one of %s is required", strings.Join(keys, ", "))
	default:
		sort.Strings(present)
		return "", InvalidArgumentf("only one of %s may be set, got %s",
			strings.Join(keys, ", "), strings.Join(present, ", "))
	}
}

// LabelsFrom extracts the optional string-to-string labels block from a
// config, rejecting non-string values.
func LabelsFrom(cfg map[string]any) (map[string]string, error) {
	raw, ok := cfg["labels"]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, InvalidArgumentf("labels must be an object of string values")
	}
	labels := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, InvalidArgumentf("label %q must be a string", k)
		}
		labels[k] = s
	}
	return labels, nil
}
