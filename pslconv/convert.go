// Package pslconv provides a default ASCII conversion for Public Suffix
// List lines that package pslbuilder cannot parse directly (anything with
// bytes outside [*a-z0-9.-], i.e. non-ASCII Unicode domain labels).
package pslconv

import "golang.org/x/net/idna"

// ToASCII converts s to its punycode/ASCII form using the standard IDNA
// profile, returning s unchanged if conversion fails. It matches the
// pslbuilder.ToASCII signature and is meant to be passed directly to
// publicsuffix.WithToASCII.
func ToASCII(s string) string {
	ascii, err := idna.ToASCII(s)
	if err != nil {
		return s
	}
	return ascii
}
