package scheduling

import "errors"

// ErrInvalidInterval reports a malformed or inverted start/end pair. It
// indicates bad output from the extraction collaborator, so callers log
// it rather than retrying.
var ErrInvalidInterval = errors.New("invalid interval")
