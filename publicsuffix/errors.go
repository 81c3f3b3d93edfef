package publicsuffix

import "fmt"

// Sentinel errors returned by package publicsuffix. The query path
// (PublicSuffix, RegistrableDomain, IsPublicSuffix) never returns an error;
// these only surface from construction and serialization.
var (
	errEmptySelfieString = fmt.Errorf("publicsuffix: empty selfie string")
	errUnsupportedMagic   = fmt.Errorf("publicsuffix: unsupported selfie magic version")
	errMalformedSelfie    = fmt.Errorf("publicsuffix: malformed selfie encoding")
)
