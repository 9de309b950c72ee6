package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const plainText = "text/plain"

// ReadFile reads a plain-text resume from disk.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume %s: %w", path, err)
	}
	return Decode(b)
}

// Read reads a plain-text resume from r.
func Read(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	return Decode(b)
}

// Decode checks that b is text and returns it with invalid UTF-8 dropped.
func Decode(b []byte) (string, error) {
	mt := mimetype.Detect(b)
	if !isText(mt) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
	}
	return strings.ToValidUTF8(string(b), ""), nil
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is(plainText) {
			return true
		}
	}
	return false
}
