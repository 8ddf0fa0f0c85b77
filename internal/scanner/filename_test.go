package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVideo(t *testing.T) {
	assert.True(t, IsVideo("movie.mp4"))
	assert.True(t, IsVideo("movie.MKV"))
	assert.True(t, IsVideo("clip.webm"))
	assert.False(t, IsVideo("poster.jpg"))
	assert.False(t, IsVideo("notes.txt"))
	assert.False(t, IsVideo("noext"))
}

func TestDeriveTitle(t *testing.T) {
	cases := map[string]string{
		"Inception.2010.1080p.mkv":     "Inception 2010 1080p",
		"The_Matrix-1999.mp4":          "The Matrix 1999",
		"Plain Title.avi":              "Plain Title",
		"double..dots__under--dash.mkv": "double dots under dash",
	}
	for in, want := range cases {
		assert.Equal(t, want, DeriveTitle(in), "input %q", in)
	}
}

func TestSeasonNumber(t *testing.T) {
	assert.Equal(t, 1, SeasonNumber("Season 1"))
	assert.Equal(t, 2, SeasonNumber("season02"))
	assert.Equal(t, 10, SeasonNumber("SEASON 10"))
	assert.Equal(t, 1, SeasonNumber("Season"))
	assert.Equal(t, 1, SeasonNumber("Extras"))
}

func TestEpisodeNumber(t *testing.T) {
	assert.Equal(t, 3, EpisodeNumber("Show S01E03.mkv", 7))
	assert.Equal(t, 12, EpisodeNumber("show e12 finale.mp4", 1))
	assert.Equal(t, 7, EpisodeNumber("no marker here.mkv", 7))
}

func TestSubtitlesFor(t *testing.T) {
	siblings := []string{
		"Movie.mkv",
		"Movie.srt",
		"Movie.en.vtt",
		"Movie.jpg",
		"Other.srt",
	}
	assert.Equal(t, []string{"Movie.srt", "Movie.en.vtt"}, SubtitlesFor(siblings, "Movie"))
	assert.Empty(t, SubtitlesFor(siblings, "Missing"))
}
