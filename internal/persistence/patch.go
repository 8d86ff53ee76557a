package persistence

// Patch is a sparse mapping of field paths to new values. Keys may use
// dotted paths ("completedCases.c1") to address nested attributes; applying
// a patch never clobbers sibling fields of a nested object.
type Patch map[string]any

// Sanitized returns a copy of the patch with the reserved keys removed.
// Reserved keys (identifiers, server-stamped timestamps) are never caller
// controlled.
func (p Patch) Sanitized(reserved ...string) Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range reserved {
		delete(out, k)
	}
	return out
}

// IsEmpty reports whether the patch has no fields.
func (p Patch) IsEmpty() bool {
	return len(p) == 0
}
