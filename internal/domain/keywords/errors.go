package keywords

import "errors"

// ErrEmptyVocabulary is returned by Fit when no document has any term.
var ErrEmptyVocabulary = errors.New("empty vocabulary")
