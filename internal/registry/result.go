package registry

import "github.com/griffnb/glbindgen/internal/domain"

// Result is the outcome of a type resolution: either a target type or the
// original name that could not be resolved. Callers must check OK before
// using Target.
type Result struct {
	target   string
	original string
	ok       bool
}

// Resolved returns a successful Result.
func Resolved(target, original string) Result {
	return Result{target: target, original: original, ok: true}
}

// Unresolved returns a failed Result for original.
func Unresolved(original string) Result {
	return Result{original: original}
}

// OK reports whether the type was resolved.
func (r Result) OK() bool {
	return r.ok
}

// Target returns the target type, or "" when unresolved.
func (r Result) Target() string {
	return r.target
}

// Original returns the name resolution started from.
func (r Result) Original() string {
	return r.original
}

// String renders the result for emitted text. Unresolved results carry the
// unresolved marker so they can be found with grep.
func (r Result) String() string {
	if r.ok {
		return r.target
	}
	return domain.UnresolvedMarker + r.original
}

// TypeRef converts the result into a model type reference.
func (r Result) TypeRef(pointer int) domain.TypeRef {
	if !r.ok {
		return domain.TypeRef{Kind: domain.KindUnresolved, Original: r.original, Pointer: pointer}
	}
	return domain.TypeRef{Kind: domain.KindNative, Name: r.target, Original: r.original, Pointer: pointer}
}
