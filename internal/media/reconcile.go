// Package media computes how an entity's media list changes on update.
package media

import (
	"encoding/json"
	"path"
	"strings"
)

// Plan is the outcome of reconciling a stored media list with an update.
type Plan struct {
	// Delete holds stored paths the caller no longer keeps.
	Delete []string
	// Keep holds stored paths the caller keeps, in stored order.
	Keep []string
	// Final is what gets persisted: Keep followed by the new uploads.
	Final []string
}

// Normalize makes two spellings of the same relative path compare equal:
// backslashes become slashes, redundant segments are cleaned and a leading
// slash is dropped. The empty string stays empty.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	p = strings.TrimLeft(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// NormalizeAll normalizes every path and drops empty ones.
func NormalizeAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Reconcile splits current into the paths to delete and to keep, given the
// paths the client kept, and appends the freshly uploaded paths.
//
// A nil or empty kept list means nothing stored survives the update.
func Reconcile(current, kept, uploaded []string) Plan {
	keep := make(map[string]struct{}, len(kept))
	for _, p := range NormalizeAll(kept) {
		keep[p] = struct{}{}
	}

	plan := Plan{
		Delete: []string{},
		Keep:   []string{},
	}
	for _, p := range NormalizeAll(current) {
		if _, ok := keep[p]; ok {
			plan.Keep = append(plan.Keep, p)
		} else {
			plan.Delete = append(plan.Delete, p)
		}
	}

	newPaths := NormalizeAll(uploaded)
	plan.Final = make([]string, 0, len(plan.Keep)+len(newPaths))
	plan.Final = append(plan.Final, plan.Keep...)
	plan.Final = append(plan.Final, newPaths...)
	return plan
}

// ParseKept decodes the existingMedia form value. It accepts a JSON array of
// strings or a comma separated list. A blank value, JSON null or any other
// JSON shape yields an empty list.
func ParseKept(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err == nil {
		if paths == nil {
			return []string{}
		}
		return paths
	}
	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		return []string{}
	}

	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
