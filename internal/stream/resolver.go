// Package stream resolves client-supplied content identifiers back to files
// under the configured library roots and serves them as ranged byte
// streams.
package stream

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/mwaldt/homestream/internal/contentid"
)

var ErrNotFound = errors.New("content file not found")

// Resolver maps decoded identifiers onto the movies or series root. Every
// decoded path is containment-checked before any filesystem access.
type Resolver struct {
	moviesRoot string
	seriesRoot string
}

func NewResolver(moviesRoot, seriesRoot string) *Resolver {
	return &Resolver{
		moviesRoot: filepath.Clean(moviesRoot),
		seriesRoot: filepath.Clean(seriesRoot),
	}
}

// Resolve turns an identifier into an absolute path inside the root its
// kind designates. Malformed identifiers and paths that escape the root are
// rejected without touching the filesystem.
func (r *Resolver) Resolve(id string) (string, error) {
	kind, relPath, err := contentid.Decode(id)
	if err != nil {
		return "", err
	}
	clean, err := contentid.Sanitize(relPath)
	if err != nil {
		return "", err
	}

	root := r.moviesRoot
	if kind == contentid.KindEpisode {
		root = r.seriesRoot
	}

	full := filepath.Join(root, filepath.FromSlash(clean))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", contentid.ErrInvalidPath
	}
	return full, nil
}

// ResolveSubtitle returns the path of a subtitle sidecar that lives next to
// the identified video. The filename must be a bare name ending in .srt or
// .vtt; anything that looks like a path is rejected.
func (r *Resolver) ResolveSubtitle(id, filename string) (string, error) {
	if filename != path.Base(filename) || filename == "." || filename == ".." {
		return "", contentid.ErrInvalidPath
	}
	if !strings.HasSuffix(filename, ".srt") && !strings.HasSuffix(filename, ".vtt") {
		return "", contentid.ErrInvalidPath
	}

	videoPath, err := r.Resolve(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(videoPath), filename), nil
}
