// Package contentid encodes filesystem-relative paths into the opaque
// identifiers exposed to clients, and decodes untrusted identifiers back.
package contentid

import (
	"encoding/base64"
	"errors"
	"path"
	"strings"
)

var (
	ErrMalformedIdentifier = errors.New("malformed content identifier")
	ErrInvalidPath         = errors.New("path escapes library root")
)

// Kind tags an identifier with the library root it belongs to. Carrying the
// tag inside the identifier avoids inferring the root from path shape.
type Kind byte

const (
	KindMovie   Kind = 'm'
	KindEpisode Kind = 'e'
)

// Encode produces a URL-safe identifier for a path relative to the root
// selected by kind. The same (kind, path) pair always yields the same
// identifier.
func Encode(kind Kind, relPath string) string {
	return base64.RawURLEncoding.EncodeToString(append([]byte{byte(kind), ':'}, relPath...))
}

// Decode reverses Encode. It fails with ErrMalformedIdentifier for anything
// that is not validly encoded; it performs no filesystem access and no path
// validation beyond shape.
func Decode(id string) (Kind, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return 0, "", ErrMalformedIdentifier
	}
	if len(raw) < 3 || raw[1] != ':' {
		return 0, "", ErrMalformedIdentifier
	}
	kind := Kind(raw[0])
	if kind != KindMovie && kind != KindEpisode {
		return 0, "", ErrMalformedIdentifier
	}
	return kind, string(raw[2:]), nil
}

// Sanitize validates a decoded, client-supplied relative path before it may
// touch the filesystem. Absolute paths and any path whose cleaned form
// climbs out of the root are rejected.
func Sanitize(relPath string) (string, error) {
	if relPath == "" || strings.HasPrefix(relPath, "/") || strings.Contains(relPath, "\\") {
		return "", ErrInvalidPath
	}
	clean := path.Clean(relPath)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidPath
	}
	return clean, nil
}
