// Package publicsuffix matches hostnames against a Public Suffix List,
// answering the two questions callers actually need: what is a hostname's
// public suffix, and what is its registrable domain (the public suffix
// plus one label). Matching is delegated to package pslmatch by default,
// or to a pluggable package pslaccel Engine when one is enabled.
package publicsuffix

import (
	"github.com/zeebo/xxh3"

	"github.com/psltrie/psltrie/pslaccel"
	"github.com/psltrie/psltrie/pslbuf"
	"github.com/psltrie/psltrie/pslbuilder"
)

// List holds a compiled rule tree and the engine currently answering
// queries against it. The zero value is not usable; construct one with
// Parse, NewWithEmbeddedList, or FromSelfie.
type List struct {
	buf    *pslbuf.Buffer
	engine pslaccel.Engine
}

// config collects Parse-time settings. Options mutate a config rather than
// a half-built List, so List itself carries no construction-only fields.
type config struct {
	toASCII pslbuilder.ToASCII
}

// Option configures a List at construction time.
type Option func(*config)

// WithToASCII installs the conversion function Parse uses for PSL lines
// that contain bytes outside the plain hostname charset. The default, nil,
// means such lines are skipped; package pslconv provides a ready-made
// IDNA-backed implementation.
func WithToASCII(toASCII pslbuilder.ToASCII) Option {
	return func(c *config) { c.toASCII = toASCII }
}

// Parse builds a List from Public Suffix List text (the same format
// publicsuffix.org distributes: one rule per line, "//" comments, blank
// lines ignored, "!" marking exceptions). It never fails: malformed lines
// are silently skipped.
func Parse(text string, opts ...Option) *List {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	buf := pslbuilder.Parse(text, c.toASCII)
	return &List{buf: buf, engine: pslaccel.Reference()}
}

// EnableAccelerator attempts to load eng against the List's current rule
// tree and, if that succeeds, switches queries over to it. On failure the
// List keeps using whichever engine it had before and returns the error
// (typically pslaccel.ErrNativeUnavailable).
func (l *List) EnableAccelerator(eng pslaccel.Engine) error {
	if err := eng.Load(l.buf); err != nil {
		return err
	}
	old := l.engine
	l.engine = eng
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// DisableAccelerator switches queries back to the reference engine.
func (l *List) DisableAccelerator() {
	old := l.engine
	l.engine = pslaccel.Reference()
	if old != nil {
		_ = old.Close()
	}
}

// AcceleratorName reports the name of the engine currently answering
// queries ("reference" unless EnableAccelerator has succeeded).
func (l *List) AcceleratorName() string {
	return l.engine.Name()
}

// PublicSuffix returns the part of hostname matched by the longest matching
// public suffix rule, with ASCII letters lowercased, or "" if hostname is
// empty, starts with a '.', or no rule matches. A rightmost label that no
// listed rule covers matches the root's default "*" rule, so an unlisted
// single label such as "localhost" is its own public suffix.
func (l *List) PublicSuffix(hostname string) string {
	if hostname == "" || hostname[0] == '.' {
		return ""
	}
	begin := l.engine.PublicSuffixPosition(l.buf, hostname)
	if begin < 0 {
		return ""
	}
	return lowerASCII(hostname[begin:])
}

// lowerASCII folds 'A'-'Z' to lowercase, the same folding the matcher
// applies, and returns s itself when it has no uppercase ASCII letter.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] |= 0x20
				}
			}
			return string(b)
		}
	}
	return s
}

// IsPublicSuffix reports whether hostname is itself exactly a public
// suffix. This is stricter than PublicSuffix(hostname) == hostname: a
// hostname whose last label was matched through a "*" wildcard rule is
// reported false. That covers the root's default "*" rule (e.g. an unlisted
// single label like "localhost") and listed wildcards alike (e.g.
// "something.jp" under "*.jp").
func (l *List) IsPublicSuffix(hostname string) bool {
	if hostname == "" || hostname[0] == '.' {
		return false
	}
	begin := l.engine.PublicSuffixPosition(l.buf, hostname)
	if begin != 0 {
		return false
	}
	return !l.engine.WildcardFallback()
}

// RegistrableDomain returns hostname's public suffix plus the one label
// immediately to its left — the domain an organization actually registers.
// It returns "" when hostname has no public suffix, equals its public
// suffix exactly, or consists of only the public suffix with nothing to
// its left.
func (l *List) RegistrableDomain(hostname string) string {
	hostname = lowerASCII(hostname)
	suffix := l.PublicSuffix(hostname)
	if suffix == "" || suffix == hostname {
		return ""
	}
	rest := hostname[:len(hostname)-len(suffix)-1] // drop the joining '.'
	if rest == "" {
		return ""
	}
	if i := lastDot(rest); i >= 0 {
		rest = rest[i+1:]
	}
	return rest + "." + suffix
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}

// Fingerprint returns a 64-bit digest of the List's compiled rule tree,
// useful for cache keys and for detecting whether two Lists were built
// from the same rule set without comparing the underlying buffers byte for
// byte.
func (l *List) Fingerprint() uint64 {
	return xxh3.Hash(l.buf.Bytes())
}
