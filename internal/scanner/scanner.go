// Package scanner walks the movies and series roots and builds the
// in-memory catalog for one request. Nothing here is cached: every call
// re-reads the filesystem so the catalog always reflects the current state.
package scanner

import (
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mwaldt/homestream/internal/contentid"
	"github.com/mwaldt/homestream/internal/models"
)

// PosterSource looks up poster art for a title. Lookups fail soft: an empty
// string means no artwork.
type PosterSource interface {
	MoviePoster(title string) string
	SeriesPoster(title string) string
}

type Scanner struct {
	moviesRoot string
	seriesRoot string
	moviesFS   fs.FS
	seriesFS   fs.FS
	posters    PosterSource
}

// New builds a scanner over two on-disk roots.
func New(moviesRoot, seriesRoot string, posters PosterSource) *Scanner {
	return &Scanner{
		moviesRoot: moviesRoot,
		seriesRoot: seriesRoot,
		moviesFS:   os.DirFS(moviesRoot),
		seriesFS:   os.DirFS(seriesRoot),
		posters:    posters,
	}
}

// NewWithFS builds a scanner over arbitrary fs.FS roots; tests use
// fstest.MapFS fixtures.
func NewWithFS(moviesFS, seriesFS fs.FS, moviesRoot, seriesRoot string, posters PosterSource) *Scanner {
	return &Scanner{
		moviesRoot: moviesRoot,
		seriesRoot: seriesRoot,
		moviesFS:   moviesFS,
		seriesFS:   seriesFS,
		posters:    posters,
	}
}

// ScanMovies lists the movies root (non-recursive) and returns one Movie per
// recognized video file. An unreadable root is an empty library, not an
// error.
func (s *Scanner) ScanMovies() []models.Movie {
	entries, err := fs.ReadDir(s.moviesFS, ".")
	if err != nil {
		log.Printf("scan: movies root unreadable: %v", err)
		return nil
	}

	siblings := childNames(entries)

	var movies []models.Movie
	for _, e := range entries {
		if e.IsDir() || !IsVideo(e.Name()) {
			continue
		}
		name := e.Name()
		base := name[:len(name)-len(path.Ext(name))]
		movies = append(movies, models.Movie{
			ID:        contentid.Encode(contentid.KindMovie, name),
			Title:     DeriveTitle(name),
			Filename:  name,
			Path:      filepath.Join(s.moviesRoot, name),
			Subtitles: SubtitlesFor(siblings, base),
		})
	}

	s.attachMoviePosters(movies)
	return movies
}

// ScanSeries lists top-level directories under the series root and builds
// one Series per readable directory. A failure inside one series subtree
// drops only that series; siblings still scan.
func (s *Scanner) ScanSeries() []models.Series {
	entries, err := fs.ReadDir(s.seriesFS, ".")
	if err != nil {
		log.Printf("scan: series root unreadable: %v", err)
		return nil
	}

	var series []models.Series
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sr, err := s.scanOneSeries(e.Name())
		if err != nil {
			log.Printf("scan: skipping series %q: %v", e.Name(), err)
			continue
		}
		series = append(series, sr)
	}

	s.attachSeriesPosters(series)
	return series
}

func (s *Scanner) scanOneSeries(dirName string) (models.Series, error) {
	sr := models.Series{
		ID:    contentid.Encode(contentid.KindEpisode, dirName),
		Title: cleanName(dirName),
		Path:  filepath.Join(s.seriesRoot, dirName),
	}

	children, err := fs.ReadDir(s.seriesFS, dirName)
	if err != nil {
		return models.Series{}, err
	}

	seasons := make(map[int]*models.Season)
	season := func(n int) *models.Season {
		if seasons[n] == nil {
			seasons[n] = &models.Season{Number: n}
		}
		return seasons[n]
	}

	for _, child := range children {
		switch {
		case child.IsDir() && seasonDirPattern.MatchString(child.Name()):
			num := SeasonNumber(child.Name())
			if err := s.scanSeasonDir(&sr, season(num), dirName, child.Name()); err != nil {
				return models.Series{}, err
			}
		case !child.IsDir() && IsVideo(child.Name()):
			// Loose episode files live in the implicit season 1.
			s.addEpisode(&sr, season(1), dirName, "", child.Name(), childNames(children))
		}
	}

	for _, sn := range seasons {
		sort.Slice(sn.Episodes, func(i, j int) bool {
			return sn.Episodes[i].EpisodeNumber < sn.Episodes[j].EpisodeNumber
		})
		sr.Seasons = append(sr.Seasons, *sn)
	}
	sort.Slice(sr.Seasons, func(i, j int) bool {
		return sr.Seasons[i].Number < sr.Seasons[j].Number
	})

	return sr, nil
}

func (s *Scanner) scanSeasonDir(sr *models.Series, sn *models.Season, seriesDir, seasonDir string) error {
	files, err := fs.ReadDir(s.seriesFS, path.Join(seriesDir, seasonDir))
	if err != nil {
		return err
	}
	names := childNames(files)
	for _, f := range files {
		if f.IsDir() || !IsVideo(f.Name()) {
			continue
		}
		s.addEpisode(sr, sn, seriesDir, seasonDir, f.Name(), names)
	}
	return nil
}

// addEpisode appends one episode to a season. The fallback ordinal for
// episode numbering is the count of video files already placed in the
// season, so it follows directory listing order.
func (s *Scanner) addEpisode(sr *models.Series, sn *models.Season, seriesDir, seasonDir, name string, siblings []string) {
	rel := path.Join(seriesDir, seasonDir, name)
	base := name[:len(name)-len(path.Ext(name))]
	sn.Episodes = append(sn.Episodes, models.Episode{
		ID:            contentid.Encode(contentid.KindEpisode, rel),
		Title:         DeriveTitle(name),
		Filename:      name,
		Path:          filepath.Join(s.seriesRoot, filepath.FromSlash(rel)),
		SeriesTitle:   sr.Title,
		SeasonNumber:  sn.Number,
		EpisodeNumber: EpisodeNumber(name, len(sn.Episodes)+1),
		Subtitles:     SubtitlesFor(siblings, base),
	})
}

func childNames(entries []fs.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// Poster lookups are independent per title, so one scan issues them
// concurrently. A failed lookup just leaves the thumbnail empty.

func (s *Scanner) attachMoviePosters(movies []models.Movie) {
	if s.posters == nil {
		return
	}
	var wg sync.WaitGroup
	for i := range movies {
		wg.Add(1)
		go func(m *models.Movie) {
			defer wg.Done()
			m.Thumbnail = s.posters.MoviePoster(m.Title)
		}(&movies[i])
	}
	wg.Wait()
}

func (s *Scanner) attachSeriesPosters(series []models.Series) {
	if s.posters == nil {
		return
	}
	var wg sync.WaitGroup
	for i := range series {
		wg.Add(1)
		go func(sr *models.Series) {
			defer wg.Done()
			sr.Thumbnail = s.posters.SeriesPoster(sr.Title)
		}(&series[i])
	}
	wg.Wait()
}
