package publicsuffix

import (
	"fmt"

	"github.com/psltrie/psltrie/pslaccel"
	"github.com/psltrie/psltrie/pslbuf"
)

type fakeAlwaysFailsEngine struct{}

func (fakeAlwaysFailsEngine) Load(buf *pslbuf.Buffer) error { return fmt.Errorf("fake: load failed") }
func (fakeAlwaysFailsEngine) PublicSuffixPosition(buf *pslbuf.Buffer, hostname string) int {
	panic("unused")
}
func (fakeAlwaysFailsEngine) WildcardFallback() bool { panic("unused") }
func (fakeAlwaysFailsEngine) Name() string           { return "fake-fails" }
func (fakeAlwaysFailsEngine) Close() error           { return nil }

// fakeEchoEngine delegates to the reference engine but reports a distinct
// Name, so tests can tell EnableAccelerator actually swapped engines.
type fakeEchoEngine struct {
	ref pslaccel.Engine
}

func (fakeEchoEngine) Load(buf *pslbuf.Buffer) error { return nil }
func (e *fakeEchoEngine) PublicSuffixPosition(buf *pslbuf.Buffer, hostname string) int {
	e.ref = pslaccel.Reference()
	return e.ref.PublicSuffixPosition(buf, hostname)
}
func (e *fakeEchoEngine) WildcardFallback() bool {
	if e.ref == nil {
		return false
	}
	return e.ref.WildcardFallback()
}
func (fakeEchoEngine) Name() string { return "fake-echo" }
func (fakeEchoEngine) Close() error { return nil }
