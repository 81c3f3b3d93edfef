// Package pslbuilder parses Public Suffix List text into the flat,
// cache-friendly encoding defined by package pslbuf: a tree of rules is
// built once in memory, then serialized depth-first into a single
// contiguous buffer that the pslmatch package walks without allocating.
package pslbuilder

import (
	"bytes"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/psltrie/psltrie/pslbuf"
)

const maxRuleLen = 253

// ToASCII converts a single PSL line that contains bytes outside
// [*a-z0-9.-] into its ASCII/punycode form. The caller supplies the
// implementation (see package pslconv for a ready-made one); Parse never
// assumes a particular conversion and trusts the result verbatim, even if
// it is not a well-formed label — the matcher's byte comparisons remain
// well-defined regardless.
type ToASCII func(string) string

// Parse reads PSL text and returns a freshly built Buffer containing the
// complete flattened rule table. It never fails: malformed lines are
// silently skipped, per PSL convention (spec.md §7).
func Parse(text string, toASCII ToASCII) *pslbuf.Buffer {
	root := &ruleNode{}

	// Step 3: the default wildcard rule is always installed first, so the
	// root always has a "*" child even if the input text defines none.
	insertRule(root, [][]byte{[]byte("*")}, false)

	for _, line := range splitLines(text) {
		rule, exception, ok := extractRule(line, toASCII)
		if !ok {
			continue
		}
		insertRule(root, splitLabels(rule), exception)
	}

	return serialize(root)
}

// splitLines splits on '\n' or '\r', either terminator, omitting empty
// runs (blank lines are dropped anyway by extractRule).
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

// extractRule implements step 1 of the builder algorithm: strip a
// trailing "//" comment, trim whitespace, detect the leading "!"
// exception marker, convert to ASCII when needed, and reject lines that
// are empty or longer than the RFC 1035 hostname cap after conversion.
func extractRule(line string, toASCII ToASCII) (rule []byte, exception bool, ok bool) {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false, false
	}

	if line[0] == '!' {
		exception = true
		line = line[1:]
	}
	if line == "" {
		return nil, false, false
	}

	lowered := toLowerASCII(line)
	var ascii string
	if isPSLCharset(lowered) {
		ascii = lowered
	} else {
		if toASCII == nil {
			return nil, false, false
		}
		ascii = toASCII(lowered)
	}

	if len(ascii) == 0 || len(ascii) > maxRuleLen {
		return nil, false, false
	}
	return []byte(ascii), exception, true
}

// toLowerASCII lowercases only ASCII 'A'-'Z' bytes, leaving any non-ASCII
// bytes untouched for isPSLCharset/toASCII to deal with.
func toLowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c | 0x20
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// isPSLCharset reports whether every byte of s is in [*a-z0-9.-].
func isPSLCharset(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '*' || c == '.' || c == '-':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// flagsFor returns the node-record flag bits for a rule-tree node.
func flagsFor(n *ruleNode) uint8 {
	var f uint8
	if n.terminus {
		f |= pslbuf.FlagRuleTerminus
	}
	if n.exception {
		f |= pslbuf.FlagException
	}
	return f
}

// flatNode is a fully-positioned node record awaiting serialization, once
// the character-data region's base offset is known.
type flatNode struct {
	wordOffset  int
	charLen     int
	flags       uint8
	childCount  int
	childrenOff int // word offset of the children block, 0 if none
	inline      uint32
	charDataOff int // relative offset into charData, valid iff charLen > InlineLabelMaxBytes
}

// charEntry records one interned label for character-data deduplication.
type charEntry struct {
	bytes []byte
	off   int
}

// serializer accumulates the flattened node list and character-data blob
// during the tree walk described in step 5 of the builder algorithm.
type serializer struct {
	nextWord int
	nodes    []flatNode
	charData []byte
	dedup    map[uint64][]charEntry
}

// intern returns the relative character-data offset for label,
// deduplicating labels that have already been stored. The dedup map is
// keyed on a 64-bit xxh3 digest of the label bytes rather than the label
// itself, so long, rarely-repeated labels don't force large string keys
// into the map's bucket array.
func (s *serializer) intern(label []byte) int {
	h := xxh3.Hash(label)
	for _, e := range s.dedup[h] {
		if bytes.Equal(e.bytes, label) {
			return e.off
		}
	}
	off := len(s.charData)
	s.charData = append(s.charData, label...)
	s.dedup[h] = append(s.dedup[h], charEntry{bytes: append([]byte(nil), label...), off: off})
	return off
}

// allocate assigns word offsets depth-first: a node's own record is
// already allocated by its caller (the root gets the first slot), and
// allocate reserves one contiguous block of NodeWords*len(children) for
// its children before descending into them, so every node's children end
// up contiguous in the final buffer as required by the layout.
func (s *serializer) allocate(node *ruleNode, wordOffset int) {
	fn := flatNode{
		wordOffset: wordOffset,
		charLen:    len(node.label),
		flags:      flagsFor(node),
		childCount: len(node.children),
	}
	if fn.charLen <= pslbuf.InlineLabelMaxBytes {
		fn.inline = pslbuf.PackInlineLabel(node.label)
	} else {
		fn.charDataOff = s.intern(node.label)
	}

	if len(node.children) > 0 {
		childrenOff := s.nextWord
		s.nextWord += len(node.children) * pslbuf.NodeWords
		fn.childrenOff = childrenOff
		s.nodes = append(s.nodes, fn)
		for i, child := range node.children {
			s.allocate(child, childrenOff+i*pslbuf.NodeWords)
		}
		return
	}
	s.nodes = append(s.nodes, fn)
}

// serialize performs step 5 of the builder algorithm: walk the rule tree,
// compute the tree and character-data regions, then copy both into a
// freshly sized Buffer in one shot.
func serialize(root *ruleNode) *pslbuf.Buffer {
	s := &serializer{
		nextWord: pslbuf.TreeOffset / 4,
		dedup:    make(map[uint64][]charEntry),
	}

	rootOffset := s.nextWord
	s.nextWord += pslbuf.NodeWords
	s.allocate(root, rootOffset)

	treeBytes := (s.nextWord - pslbuf.TreeOffset/4) * 4
	charDataBase := pslbuf.TreeOffset + treeBytes
	total := charDataBase + len(s.charData)

	buf := pslbuf.New()
	_ = buf.Reserve(total)
	buf.SetRootOffset(rootOffset)
	buf.SetCharDataOffset(charDataBase)
	copy(buf.Bytes()[charDataBase:], s.charData)

	for _, n := range s.nodes {
		buf.SetWord(n.wordOffset, pslbuf.PackWord0(n.charLen, n.flags, n.childCount))
		if n.charLen <= pslbuf.InlineLabelMaxBytes {
			buf.SetWord(n.wordOffset+1, n.inline)
		} else {
			buf.SetWord(n.wordOffset+1, uint32(charDataBase+n.charDataOff))
		}
		buf.SetWord(n.wordOffset+2, uint32(n.childrenOff))
	}

	return buf
}
