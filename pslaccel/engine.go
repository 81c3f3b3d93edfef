// Package pslaccel defines the pluggable matching backend contract used by
// package publicsuffix. The reference Engine always works and is backed by
// package pslmatch; a native Engine, built with the pslaccel_native build
// tag, binds to an external accelerator library through cgo. Callers that
// never enable the native backend pay nothing for this package beyond the
// interface indirection.
package pslaccel

import (
	"errors"

	"github.com/psltrie/psltrie/pslbuf"
	"github.com/psltrie/psltrie/pslmatch"
)

// ErrNativeUnavailable is returned by the native engine's Load when the
// binary was not built with the pslaccel_native tag, or when the external
// accelerator library failed to initialize for the given buffer.
var ErrNativeUnavailable = errors.New("pslaccel: native accelerator unavailable")

// Engine answers public-suffix-position queries against a loaded
// pslbuf.Buffer. Implementations may hold backend-specific state tied to the
// buffer's contents; Load must be called again after the buffer's rule tree
// changes.
type Engine interface {
	// Load prepares the engine to serve queries against buf. Implementations
	// that cannot accelerate a particular buffer (wrong format version,
	// accelerator not linked in) return ErrNativeUnavailable so the caller
	// can fall back to the reference engine.
	Load(buf *pslbuf.Buffer) error

	// PublicSuffixPosition returns the byte offset within hostname where
	// the longest matching public suffix rule begins, or -1 if hostname has
	// no matching rule at all.
	PublicSuffixPosition(buf *pslbuf.Buffer, hostname string) int

	// WildcardFallback reports whether the last label matched by the most
	// recent PublicSuffixPosition call was matched through a "*" child
	// because no child carried that label exactly. This holds for the
	// root's default "*" rule and for listed wildcards such as "*.jp".
	WildcardFallback() bool

	// Name identifies the engine for diagnostics (e.g. "reference", "native").
	Name() string

	// Close releases any backend resources. Safe to call on an engine that
	// was never successfully Loaded.
	Close() error
}

// Reference returns the always-available Engine backed by package pslmatch.
func Reference() Engine {
	return &referenceEngine{}
}

type referenceEngine struct {
	lastBuf *pslbuf.Buffer
}

func (*referenceEngine) Load(buf *pslbuf.Buffer) error { return nil }

func (e *referenceEngine) PublicSuffixPosition(buf *pslbuf.Buffer, hostname string) int {
	pslmatch.Prepare(buf, hostname)
	entry := pslmatch.PublicSuffixPosition(buf)
	e.lastBuf = buf
	if entry == pslmatch.NoMatch {
		return -1
	}
	begin, _ := buf.LabelEntry(entry)
	return begin
}

// WildcardFallback reads the flag pslmatch.PublicSuffixPosition left in
// buf's scratch region during the most recent query.
func (e *referenceEngine) WildcardFallback() bool {
	if e.lastBuf == nil {
		return false
	}
	return e.lastBuf.WildcardFallback()
}

func (*referenceEngine) Name() string { return "reference" }

func (*referenceEngine) Close() error { return nil }

// Native returns the build's native accelerator Engine. With the
// pslaccel_native build tag it binds to the external accelerator library;
// otherwise it is a stub whose Load always fails with ErrNativeUnavailable,
// so callers always get a usable Engine value and decide fallback themselves.
func Native() Engine {
	return newNativeEngine()
}
