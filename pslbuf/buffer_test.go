package pslbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackWord0RoundTrip(t *testing.T) {
	w0 := PackWord0(3, FlagRuleTerminus|FlagException, 7)
	charLen, flags, childCount := UnpackWord0(w0)
	require.Equal(t, 3, charLen)
	require.Equal(t, uint8(FlagRuleTerminus|FlagException), flags)
	require.Equal(t, 7, childCount)
}

func TestPackUnpackInlineLabelRoundTrip(t *testing.T) {
	label := []byte("uk")
	w := PackInlineLabel(label)
	got := UnpackInlineLabel(w, len(label))
	require.Equal(t, label, got)
}

func TestReserveGrowsAndNeverShrinks(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(10))
	require.Equal(t, 12, b.Len()) // rounded up to 4-byte multiple

	b.SetWord(0, 0xdeadbeef)
	require.NoError(t, b.Reserve(4)) // smaller request, must not shrink
	require.Equal(t, 12, b.Len())
	require.Equal(t, uint32(0xdeadbeef), b.Word(0))

	require.NoError(t, b.Reserve(100))
	require.GreaterOrEqual(t, b.Len(), 100)
	require.Equal(t, uint32(0xdeadbeef), b.Word(0)) // preserved across growth
}

func TestNodeRecordReadWrite(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(TreeOffset+NodeBytes*2))

	nodeOff := TreeOffset / 4
	b.SetWord(nodeOff, PackWord0(2, FlagRuleTerminus, 1))
	b.SetWord(nodeOff+1, PackInlineLabel([]byte("jp")))
	b.SetWord(nodeOff+2, uint32(nodeOff+NodeWords))

	require.Equal(t, []byte("jp"), b.NodeLabel(nodeOff))
	require.Equal(t, uint8(FlagRuleTerminus), b.NodeFlags(nodeOff))
	require.Equal(t, 1, b.NodeChildCount(nodeOff))
	require.Equal(t, nodeOff+NodeWords, b.NodeChildrenOffset(nodeOff))
}

func TestResetScratchClearsLengthAndCache(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(ScratchBytes))
	b.Bytes()[HostnameLenOffset] = 5
	b.SetCachedHostname("example.com")

	b.ResetScratch()

	require.Equal(t, byte(0), b.Bytes()[HostnameLenOffset])
	require.Equal(t, "", b.CachedHostname())
}

func TestWildcardFallbackFlag(t *testing.T) {
	b := New()
	require.NoError(t, b.Reserve(ScratchBytes))
	require.False(t, b.WildcardFallback())

	b.SetWildcardFallback(true)
	require.True(t, b.WildcardFallback())

	b.SetWildcardFallback(false)
	require.False(t, b.WildcardFallback())
}
