//go:build pslaccel_native
// +build pslaccel_native

package pslaccel

import (
	"unsafe"

	"github.com/psltrie/psltrie/pslbuf"
)

// #cgo LDFLAGS: -l pslaccel -lstdc++
// #include <stdlib.h>
// #include <pslaccel/psl_accel.h>
import "C"

// nativeEngine binds to an external libpslaccel build that re-implements
// the reference tree walk with SIMD-accelerated label comparisons. It
// accepts the same flat buffer layout package pslbuf produces, so Load
// never re-serializes the rule tree.
type nativeEngine struct {
	place []byte
	db    *C.psl_accel_database_t
}

func newNativeEngine() Engine {
	return &nativeEngine{}
}

func (e *nativeEngine) Load(buf *pslbuf.Buffer) error {
	raw := buf.Bytes()
	if len(raw) == 0 {
		return ErrNativeUnavailable
	}

	placeSize := C.psl_accel_place_size(
		(*C.char)(unsafe.Pointer(&raw[0])),
		C.size_t(len(raw)),
	)
	if placeSize == 0 {
		return ErrNativeUnavailable
	}
	place := make([]byte, placeSize)

	var db *C.psl_accel_database_t
	rc := C.psl_accel_load(
		(*C.char)(unsafe.Pointer(&place[0])),
		placeSize,
		&db,
		(*C.char)(unsafe.Pointer(&raw[0])),
		C.size_t(len(raw)),
	)
	if rc != C.PSL_ACCEL_SUCCESS {
		return ErrNativeUnavailable
	}

	e.place = place
	e.db = db
	return nil
}

func (e *nativeEngine) PublicSuffixPosition(buf *pslbuf.Buffer, hostname string) int {
	if e.db == nil {
		panic("pslaccel: PublicSuffixPosition called on an unloaded native engine")
	}
	if hostname == "" || hostname[0] == '.' {
		return -1
	}
	res := C.psl_accel_find(
		e.db,
		(*C.char)(unsafe.Pointer(unsafe.StringData(hostname))),
		C.size_t(len(hostname)),
	)
	return int(res)
}

// WildcardFallback asks the accelerator whether the last label matched by
// the most recent PublicSuffixPosition call was matched through a "*" child.
func (e *nativeEngine) WildcardFallback() bool {
	if e.db == nil {
		panic("pslaccel: WildcardFallback called on an unloaded native engine")
	}
	return C.psl_accel_last_match_was_wildcard(e.db) != 0
}

func (e *nativeEngine) Name() string { return "native" }

func (e *nativeEngine) Close() error {
	if e.db != nil {
		C.psl_accel_free(e.db)
		e.db = nil
	}
	e.place = nil
	return nil
}
