package envq

import (
	"errors"
	"fmt"
	"unicode/utf16"
)

// maxSizeAttempts bounds the grow loop. Exhausting it takes a value that
// changes size between the sizing call and the fill call on every attempt,
// which does not happen outside a pathologically hot environment block.
const maxSizeAttempts = 8

// ErrUnstableSize is returned when a query reports a different required size
// on every attempt and the resolver gives up.
var ErrUnstableSize = errors.New("query size did not stabilize")

// QueryError reports a failed sized query together with the native error
// code of the underlying call.
type QueryError struct {
	Op   string
	Code uint32
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: native error code %d", e.Op, e.Code)
}

// zeroKind classifies a zero size reported by a sized query.
type zeroKind int

const (
	zeroError zeroKind = iota
	zeroAbsent
	zeroEmpty
)

// convention describes how one concrete query reports its edge cases.
type convention struct {
	// op names the underlying call in errors.
	op string

	// zero classifies a zero size given the native code of the call.
	zero func(code uint32) zeroKind

	// fillExcludesTerminator is set when a successful fill reports the
	// written length without the trailing terminator. The sizing call
	// always counts the terminator.
	fillExcludesTerminator bool

	// oneMeansAbsent is set when a required size of one (terminator only)
	// is indistinguishable from the value being unset.
	oneMeansAbsent bool
}

var (
	expandConvention = convention{
		op:   "ExpandEnvironmentStrings",
		zero: func(uint32) zeroKind { return zeroError },
	}

	lookupConvention = convention{
		op: "GetEnvironmentVariable",
		zero: func(code uint32) zeroKind {
			if code == codeEnvVarNotFound {
				return zeroAbsent
			}
			return zeroError
		},
		fillExcludesTerminator: true,
		oneMeansAbsent:         true,
	}

	currentDirConvention = convention{
		op:                     "GetCurrentDirectory",
		zero:                   func(uint32) zeroKind { return zeroError },
		fillExcludesTerminator: true,
	}

	searchPathConvention = convention{
		op: "GetDllDirectory",
		zero: func(code uint32) zeroKind {
			if code == codeSuccess {
				return zeroEmpty
			}
			return zeroError
		},
		fillExcludesTerminator: true,
	}
)

// Resolver runs sized queries against a Querier.
type Resolver struct {
	q Querier
}

// New creates a Resolver over the given backend. Most callers want the
// package-level functions, which query the operating system.
func New(q Querier) *Resolver {
	return &Resolver{q: q}
}

var std = New(systemQuerier{})

// ExpandTemplate substitutes %NAME% environment references in template.
// References to undefined variables are left in place verbatim; a template
// without references comes back unchanged.
func ExpandTemplate(template string) (string, error) {
	return std.ExpandTemplate(template)
}

// LookupVariable reads a single environment variable. The second return
// value is false both when the variable is unset and when it is set to the
// empty string; the underlying query reports those two cases identically.
func LookupVariable(name string) (string, bool, error) {
	return std.LookupVariable(name)
}

// CurrentDirectory returns the process working directory.
func CurrentDirectory() (string, error) {
	return std.CurrentDirectory()
}

// SearchPathDirectory returns the process-wide search-path directory. An
// empty result is valid and distinct from an error: it means no directory
// is set.
func SearchPathDirectory() (string, error) {
	return std.SearchPathDirectory()
}

// SetSearchPathDirectory sets the process-wide search-path directory read
// back by SearchPathDirectory.
func SetSearchPathDirectory(dir string) error {
	return setSearchPath(dir)
}

// ExpandTemplate substitutes %NAME% environment references in template.
func (r *Resolver) ExpandTemplate(template string) (string, error) {
	v, _, err := r.resolve(expandConvention, func(buf []uint16) (uint32, uint32) {
		return r.q.ExpandStrings(template, buf)
	})
	return v, err
}

// LookupVariable reads a single environment variable; found is false when
// the variable is unset or empty.
func (r *Resolver) LookupVariable(name string) (value string, found bool, err error) {
	return r.resolve(lookupConvention, func(buf []uint16) (uint32, uint32) {
		return r.q.EnvironmentVariable(name, buf)
	})
}

// CurrentDirectory returns the process working directory.
func (r *Resolver) CurrentDirectory() (string, error) {
	v, _, err := r.resolve(currentDirConvention, func(buf []uint16) (uint32, uint32) {
		return r.q.CurrentDirectory(buf)
	})
	return v, err
}

// SearchPathDirectory returns the process-wide search-path directory, which
// may legitimately be empty.
func (r *Resolver) SearchPathDirectory() (string, error) {
	v, _, err := r.resolve(searchPathConvention, func(buf []uint16) (uint32, uint32) {
		return r.q.SearchPathDirectory(buf)
	})
	return v, err
}

// resolve runs the grow-until-stable loop for one query. It sizes with a nil
// buffer, fills with a buffer of the reported length, and retries with the
// newly reported length whenever the two calls disagree, meaning the value
// changed in between. The returned string carries no terminator.
func (r *Resolver) resolve(conv convention, call func(buf []uint16) (uint32, uint32)) (string, bool, error) {
	n, code := call(nil)
	if n == 0 {
		return zeroResult(conv, code)
	}
	if n == 1 && conv.oneMeansAbsent {
		// Only the terminator: the value is the empty string, which this
		// query reports the same way as an unset one.
		return "", false, nil
	}

	for attempt := 0; attempt < maxSizeAttempts; attempt++ {
		buf := make([]uint16, n)
		m, code := call(buf)
		if m == 0 {
			return zeroResult(conv, code)
		}
		if conv.fillExcludesTerminator {
			if m+1 == uint32(len(buf)) {
				return utf16String(buf[:m]), true, nil
			}
		} else if m == uint32(len(buf)) {
			return utf16String(buf[:m-1]), true, nil
		}
		n = m
	}
	return "", false, fmt.Errorf("%s: %w", conv.op, ErrUnstableSize)
}

func zeroResult(conv convention, code uint32) (string, bool, error) {
	switch conv.zero(code) {
	case zeroAbsent:
		return "", false, nil
	case zeroEmpty:
		return "", true, nil
	default:
		return "", false, &QueryError{Op: conv.op, Code: code}
	}
}

func utf16String(u []uint16) string {
	return string(utf16.Decode(u))
}
