package plan

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Filename prefixes by media kind, matching the naming convention of most
// camera apps.
const (
	PrefixPhoto = "IMG_"
	PrefixVideo = "VID_"
)

// Operation represents a planned rename within a single directory.
type Operation struct {
	OldName string
	NewName string
}

// Item is one file to assign a target name to.
type Item struct {
	// Name is the file's current name within the directory.
	Name string

	// Prefix is PrefixPhoto or PrefixVideo.
	Prefix string

	// TakenAt is the attributed date taken.
	TakenAt time.Time
}

// TargetName computes the canonical filename for a date taken.
//
// The format is <prefix>YYYYMMDD_HHMMSS<ext> with the extension lowercased.
// It is a pure function of its inputs.
func TargetName(prefix string, takenAt time.Time, ext string) string {
	return prefix + takenAt.Format("20060102_150405") + strings.ToLower(ext)
}

// Resolve returns name if it is not yet taken, otherwise a variant with a
// suffix _N appended before the extension, where N starts at 1. The chosen
// name is recorded in taken.
func Resolve(name string, taken map[string]bool) string {
	if taken == nil {
		taken = make(map[string]bool)
	}

	if !taken[name] {
		taken[name] = true
		return name
	}

	ext := filepath.Ext(name)
	nameWithoutExt := strings.TrimSuffix(name, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", nameWithoutExt, i, ext)
		if !taken[candidate] {
			taken[candidate] = true
			return candidate
		}
	}
}

// Assign computes a rename Operation for every item, resolving collisions
// between items deterministically with _N suffixes.
//
// Items whose current name already equals their canonical target claim that
// name first, so a repeat run over an already-renamed folder plans only
// no-op operations. Output order matches input order.
func Assign(items []Item) []Operation {
	taken := make(map[string]bool)
	ops := make([]Operation, len(items))

	// First pass: files already carrying their canonical name keep it.
	for i, it := range items {
		target := TargetName(it.Prefix, it.TakenAt, filepath.Ext(it.Name))
		if it.Name == target {
			taken[target] = true
			ops[i] = Operation{OldName: it.Name, NewName: it.Name}
		}
	}

	// Second pass: everything else gets the canonical name or a suffixed
	// variant.
	for i, it := range items {
		if ops[i].OldName != "" {
			continue
		}
		target := TargetName(it.Prefix, it.TakenAt, filepath.Ext(it.Name))
		ops[i] = Operation{OldName: it.Name, NewName: Resolve(target, taken)}
	}

	return ops
}
