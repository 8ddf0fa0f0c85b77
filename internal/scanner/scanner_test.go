package scanner

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaldt/homestream/internal/contentid"
)

type fakePosters struct{}

func (fakePosters) MoviePoster(title string) string  { return "movie-poster:" + title }
func (fakePosters) SeriesPoster(title string) string { return "series-poster:" + title }

// errDirFS fails every Open under one path, simulating an unreadable
// directory.
type errDirFS struct {
	inner fs.FS
	fail  string
}

func (e errDirFS) Open(name string) (fs.File, error) {
	if name == e.fail {
		return nil, errors.New("permission denied")
	}
	return e.inner.Open(name)
}

func newTestScanner(moviesFS, seriesFS fs.FS) *Scanner {
	return NewWithFS(moviesFS, seriesFS, "/media/movies", "/media/series", fakePosters{})
}

func TestScanMovies(t *testing.T) {
	moviesFS := fstest.MapFS{
		"Inception.2010.1080p.mkv": {},
		"Inception.2010.1080p.srt": {},
		"Arrival (2016).mp4":       {},
		"cover.jpg":                {},
		"Extras/bonus.mkv":         {}, // subdirectory, not scanned
	}

	movies := newTestScanner(moviesFS, fstest.MapFS{}).ScanMovies()
	require.Len(t, movies, 2)

	byTitle := map[string]int{}
	for i, m := range movies {
		byTitle[m.Title] = i
	}

	inception := movies[byTitle["Inception 2010 1080p"]]
	assert.Equal(t, contentid.Encode(contentid.KindMovie, "Inception.2010.1080p.mkv"), inception.ID)
	assert.Equal(t, "Inception.2010.1080p.mkv", inception.Filename)
	assert.Equal(t, []string{"Inception.2010.1080p.srt"}, inception.Subtitles)
	assert.Equal(t, "movie-poster:Inception 2010 1080p", inception.Thumbnail)

	arrival := movies[byTitle["Arrival (2016)"]]
	assert.Empty(t, arrival.Subtitles)
}

func TestScanMoviesUnreadableRoot(t *testing.T) {
	s := newTestScanner(errDirFS{inner: fstest.MapFS{}, fail: "."}, fstest.MapFS{})
	assert.Empty(t, s.ScanMovies())
}

func TestScanSeriesSeasonLayout(t *testing.T) {
	seriesFS := fstest.MapFS{
		"Breaking.Bad/Season 1/A Late One E02.mkv":  {},
		"Breaking.Bad/Season 1/B Early One E01.mkv": {},
		"Breaking.Bad/Season 1/B Early One E01.srt": {},
		"Breaking.Bad/Season 2/S02E01 Pilot.mp4":    {},
		"Breaking.Bad/notes.txt":                    {},
	}

	series := newTestScanner(fstest.MapFS{}, seriesFS).ScanSeries()
	require.Len(t, series, 1)

	sr := series[0]
	assert.Equal(t, "Breaking Bad", sr.Title)
	assert.Equal(t, contentid.Encode(contentid.KindEpisode, "Breaking.Bad"), sr.ID)
	assert.Equal(t, "series-poster:Breaking Bad", sr.Thumbnail)
	require.Len(t, sr.Seasons, 2)

	s1 := sr.Seasons[0]
	assert.Equal(t, 1, s1.Number)
	require.Len(t, s1.Episodes, 2)
	// Explicit markers win over listing order.
	assert.Equal(t, 1, s1.Episodes[0].EpisodeNumber)
	assert.Equal(t, "B Early One E01", s1.Episodes[0].Title)
	assert.Equal(t, []string{"B Early One E01.srt"}, s1.Episodes[0].Subtitles)
	assert.Equal(t, 2, s1.Episodes[1].EpisodeNumber)
	assert.Equal(t, "Breaking Bad", s1.Episodes[0].SeriesTitle)

	s2 := sr.Seasons[1]
	assert.Equal(t, 2, s2.Number)
	require.Len(t, s2.Episodes, 1)
	assert.Equal(t, contentid.Encode(contentid.KindEpisode, "Breaking.Bad/Season 2/S02E01 Pilot.mp4"), s2.Episodes[0].ID)
}

func TestScanSeriesImplicitSeasonOne(t *testing.T) {
	seriesFS := fstest.MapFS{
		"Mini Show/part one.mkv": {},
		"Mini Show/part two.mkv": {},
	}

	series := newTestScanner(fstest.MapFS{}, seriesFS).ScanSeries()
	require.Len(t, series, 1)
	require.Len(t, series[0].Seasons, 1)

	season := series[0].Seasons[0]
	assert.Equal(t, 1, season.Number)
	require.Len(t, season.Episodes, 2)
	// No markers anywhere, so listing order supplies the ordinals.
	assert.Equal(t, 1, season.Episodes[0].EpisodeNumber)
	assert.Equal(t, 2, season.Episodes[1].EpisodeNumber)
}

func TestScanSeriesLooseFilesMergeIntoSeasonOne(t *testing.T) {
	seriesFS := fstest.MapFS{
		"Show/special.mkv":          {},
		"Show/Season 1/Show E01.mkv": {},
	}

	series := newTestScanner(fstest.MapFS{}, seriesFS).ScanSeries()
	require.Len(t, series, 1)
	require.Len(t, series[0].Seasons, 1)
	assert.Len(t, series[0].Seasons[0].Episodes, 2)
}

func TestScanSeriesPartialFailure(t *testing.T) {
	inner := fstest.MapFS{
		"Broken Show/Season 1/ep E01.mkv": {},
		"Good Show/Season 1/ep E01.mkv":   {},
	}
	seriesFS := errDirFS{inner: inner, fail: "Broken Show"}

	series := newTestScanner(fstest.MapFS{}, seriesFS).ScanSeries()
	require.Len(t, series, 1)
	assert.Equal(t, "Good Show", series[0].Title)
}

func TestScanSeriesUnreadableRoot(t *testing.T) {
	s := newTestScanner(fstest.MapFS{}, errDirFS{inner: fstest.MapFS{}, fail: "."})
	assert.Empty(t, s.ScanSeries())
}
