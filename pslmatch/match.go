// Package pslmatch implements the reference (non-accelerated) lookup
// algorithm over a pslbuf.Buffer: writing a hostname into the buffer's
// scratch region, then walking the rule tree and the resulting
// label-index table in lock-step to find the longest matching public
// suffix rule. The hot path (PublicSuffixPosition) performs no
// allocations.
package pslmatch

import "github.com/psltrie/psltrie/pslbuf"

var wildcardLabel = []byte("*")

// Prepare normalizes hostname into buf's scratch region: lowercases ASCII
// bytes, clamps to pslbuf.HostnameMaxBytes, and builds the label-index
// table right-to-left (TLD first). If hostname is identical to the last
// prepared hostname, Prepare is a no-op. Returns the prepared length.
func Prepare(buf *pslbuf.Buffer, hostname string) int {
	if hostname == "" {
		_ = buf.Reserve(pslbuf.ScratchBytes)
		buf.Bytes()[pslbuf.HostnameLenOffset] = 0
		buf.SetCachedHostname("")
		return 0
	}

	if buf.CachedHostname() == hostname {
		return buf.HostnameLen()
	}

	n := len(hostname)
	if n > pslbuf.HostnameMaxBytes {
		n = pslbuf.HostnameMaxBytes
		hostname = hostname[:n]
	}

	_ = buf.Reserve(pslbuf.ScratchBytes)
	data := buf.Bytes()
	for i := 0; i < n; i++ {
		c := hostname[i]
		if c >= 'A' && c <= 'Z' {
			c |= 0x20
		}
		data[i] = c
	}
	data[pslbuf.HostnameLenOffset] = byte(n)

	buildLabelIndex(buf, data[:n])

	buf.SetCachedHostname(hostname)
	return n
}

// buildLabelIndex writes (end, begin) pairs into the label-index table,
// one per label of host, ordered right-to-left (rightmost/TLD first),
// followed by a zero-begin terminator pair. Labels beyond MaxLabelEntries
// are silently dropped — no real hostname within the 255-byte cap comes
// close to that count.
func buildLabelIndex(buf *pslbuf.Buffer, host []byte) {
	entry := 0
	end := len(host)
	for i := len(host) - 1; i >= 0; i-- {
		if host[i] != '.' {
			continue
		}
		if entry >= pslbuf.MaxLabelEntries {
			break
		}
		buf.SetLabelEntry(entry, end, i+1)
		entry++
		end = i
	}
	if entry < pslbuf.MaxLabelEntries {
		buf.SetLabelEntry(entry, end, 0)
		entry++
	}
	buf.SetLabelEntry(entry, 0, 0) // terminator
}

// NoMatch is the cursor value PublicSuffixPosition returns when no rule
// matched at all.
const NoMatch = -1

// PublicSuffixPosition walks the tree and the label-index table in
// lock-step, honoring exception > longest-match > wildcard precedence,
// and returns the label-index table entry marking the start of the
// longest matched rule, or NoMatch. buf must already have had Prepare
// called on it for the hostname being queried.
func PublicSuffixPosition(buf *pslbuf.Buffer) int {
	if buf.HostnameLen() == 0 {
		return NoMatch
	}
	if buf.HostnameBytes()[0] == '.' {
		return NoMatch
	}

	node := buf.RootOffset()
	cursor := NoMatch
	p := 0

	for {
		begin, end := buf.LabelEntry(p)
		label := buf.Bytes()[begin:end]

		childCount := buf.NodeChildCount(node)
		if childCount == 0 {
			break
		}
		childrenOff := buf.NodeChildrenOffset(node)

		idx, found := binarySearchChild(buf, childrenOff, childCount, label)
		wildcard := false
		if !found && buf.CompareNodeLabel(childrenOff, wildcardLabel) == 0 {
			idx = 0
			found = true
			wildcard = true
		}
		if !found {
			break
		}

		buf.SetWildcardFallback(wildcard)
		node = childrenOff + idx*pslbuf.NodeWords
		flags := buf.NodeFlags(node)

		if flags&pslbuf.FlagException != 0 {
			if p > 0 {
				return p - 1
			}
			return NoMatch
		}
		if flags&pslbuf.FlagRuleTerminus != 0 {
			cursor = p
		}
		if begin == 0 {
			break
		}
		p++
	}

	return cursor
}

// binarySearchChild finds the child of a node whose label equals label,
// using the length-major ordering the builder sorted children with.
func binarySearchChild(buf *pslbuf.Buffer, childrenOff, count int, label []byte) (int, bool) {
	lo, hi := 0, count
	for lo < hi {
		mid := (lo + hi) / 2
		off := childrenOff + mid*pslbuf.NodeWords
		switch c := buf.CompareNodeLabel(off, label); {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}
