package publicsuffix

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/psltrie/psltrie/pslaccel"
	"github.com/psltrie/psltrie/pslbuf"
)

// Selfie is the structured serialization of a List's compiled rule tree:
// a magic version word followed by the buffer's contents as 32-bit words.
// It round-trips through ToSelfie/FromSelfie without re-parsing PSL text.
type Selfie struct {
	Magic uint32
	Words []uint32
}

// ToSelfie captures l's current rule tree as a Selfie.
func (l *List) ToSelfie() Selfie {
	raw := l.buf.Bytes()
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = l.buf.Word(i)
	}
	return Selfie{Magic: pslbuf.SelfieMagic, Words: words}
}

// FromSelfie reconstructs a List from a Selfie produced by ToSelfie. The
// reconstructed List starts with the reference engine enabled; any
// accelerator must be re-enabled explicitly.
func FromSelfie(s Selfie) (*List, error) {
	if s.Magic != pslbuf.SelfieMagic {
		return nil, errUnsupportedMagic
	}
	buf := pslbuf.New()
	if err := buf.Reserve(len(s.Words) * 4); err != nil {
		return nil, err
	}
	for i, w := range s.Words {
		buf.SetWord(i, w)
	}
	return &List{buf: buf, engine: pslaccel.Reference()}, nil
}

// String encodes the Selfie as "<magic>\t<base64 of little-endian words>",
// the compact form accepted by ParseSelfieString.
func (s Selfie) String() string {
	raw := make([]byte, len(s.Words)*4)
	for i, w := range s.Words {
		raw[i*4] = byte(w)
		raw[i*4+1] = byte(w >> 8)
		raw[i*4+2] = byte(w >> 16)
		raw[i*4+3] = byte(w >> 24)
	}
	return strconv.FormatUint(uint64(s.Magic), 10) + "\t" + base64.StdEncoding.EncodeToString(raw)
}

// ParseSelfieString decodes the string form produced by Selfie.String.
func ParseSelfieString(s string) (Selfie, error) {
	if s == "" {
		return Selfie{}, errEmptySelfieString
	}
	tab := strings.IndexByte(s, '\t')
	if tab < 0 {
		return Selfie{}, errMalformedSelfie
	}
	magic, err := strconv.ParseUint(s[:tab], 10, 32)
	if err != nil {
		return Selfie{}, errMalformedSelfie
	}
	raw, err := base64.StdEncoding.DecodeString(s[tab+1:])
	if err != nil {
		return Selfie{}, errMalformedSelfie
	}
	if len(raw)%4 != 0 {
		return Selfie{}, errMalformedSelfie
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = uint32(raw[i*4]) | uint32(raw[i*4+1])<<8 | uint32(raw[i*4+2])<<16 | uint32(raw[i*4+3])<<24
	}
	return Selfie{Magic: uint32(magic), Words: words}, nil
}

// FromSelfieString is a convenience wrapper combining ParseSelfieString and
// FromSelfie.
func FromSelfieString(s string) (*List, error) {
	selfie, err := ParseSelfieString(s)
	if err != nil {
		return nil, err
	}
	return FromSelfie(selfie)
}
