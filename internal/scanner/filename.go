package scanner

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Extensions recognized as playable video during a scan.
var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true,
}

var (
	// episodePattern matches explicit episode markers like "E03" or "e12"
	// anywhere in a filename.
	episodePattern = regexp.MustCompile(`[Ee](\d+)`)

	// seasonDirPattern matches directory names like "Season 1" or "season02".
	seasonDirPattern = regexp.MustCompile(`(?i)^season`)

	digitRun = regexp.MustCompile(`\d+`)

	separators = strings.NewReplacer(".", " ", "_", " ", "-", " ")
)

// IsVideo reports whether a filename carries a recognized video extension.
func IsVideo(name string) bool {
	return videoExtensions[strings.ToLower(path.Ext(name))]
}

// cleanName replaces dot/underscore/dash separators with spaces and
// collapses the result. Used for names that carry no extension.
func cleanName(name string) string {
	return strings.Join(strings.Fields(separators.Replace(name)), " ")
}

// DeriveTitle turns a video filename into a display title. It never fails;
// release-quality tags are deliberately kept (they are stripped only for
// external poster searches).
func DeriveTitle(filename string) string {
	return cleanName(strings.TrimSuffix(filename, path.Ext(filename)))
}

// SeasonNumber extracts the season number from a "season N" directory name.
// Anything else, including a "season" directory without digits, is season 1.
func SeasonNumber(dirName string) int {
	if !seasonDirPattern.MatchString(dirName) {
		return 1
	}
	if m := digitRun.FindString(dirName); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// EpisodeNumber extracts an explicit E<digits> marker from a filename. When
// none is present it falls back to the caller-supplied 1-based ordinal,
// which tracks directory listing order and is therefore only a best-effort
// stand-in.
func EpisodeNumber(filename string, fallbackOrdinal int) int {
	if m := episodePattern.FindStringSubmatch(filename); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return fallbackOrdinal
}

// SubtitlesFor returns the sibling filenames that are subtitle sidecars for
// the given video base name (filename without extension), in listing order.
func SubtitlesFor(siblings []string, base string) []string {
	var subs []string
	for _, name := range siblings {
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasSuffix(name, ".srt") || strings.HasSuffix(name, ".vtt") {
			subs = append(subs, name)
		}
	}
	return subs
}
