//go:build !pslaccel_native
// +build !pslaccel_native

package pslaccel

import "github.com/psltrie/psltrie/pslbuf"

// stubEngine is built when the pslaccel_native tag is absent. Its Load
// always fails so publicsuffix.List falls back to the reference engine
// without the caller needing a build-tag-aware branch of its own.
type stubEngine struct{}

func newNativeEngine() Engine {
	return &stubEngine{}
}

func (*stubEngine) Load(buf *pslbuf.Buffer) error {
	return ErrNativeUnavailable
}

func (*stubEngine) PublicSuffixPosition(buf *pslbuf.Buffer, hostname string) int {
	panic("pslaccel: PublicSuffixPosition called on an unloaded native engine")
}

func (*stubEngine) WildcardFallback() bool {
	panic("pslaccel: WildcardFallback called on an unloaded native engine")
}

func (*stubEngine) Name() string { return "native(unavailable)" }

func (*stubEngine) Close() error { return nil }
