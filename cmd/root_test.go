package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

func TestResolveGenre(t *testing.T) {
	genres := tmdb.NewGenres([]tmdb.Genre{
		{Name: "Action", ID: 28},
		{Name: "Science Fiction", ID: 878},
	})

	tests := []struct {
		name    string
		arg     string
		want    int
		wantErr string
	}{
		{name: "by id", arg: "878", want: 878},
		{name: "by name", arg: "Action", want: 28},
		{name: "case-insensitive name", arg: "science fiction", want: 878},
		{name: "unknown id", arg: "99", wantErr: "genre id 99 not found"},
		{name: "unknown name", arg: "Western", wantErr: "genre 'Western' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			genre, err := resolveGenre(genres, tt.arg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, genre.ID)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	setupLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "WARN", Format: "console"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "unknown"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "2026-10-18")
	assert.Equal(t, "1.2.3 (built 2026-10-18)", rootCmd.Version)
}

func TestMatchBatchKeepsAccumulatedIndices(t *testing.T) {
	f, err := filter.NewCompiler(4).Compile(`ID % 2 == 0`)
	require.NoError(t, err)

	batch := make([]tmdb.MovieSummary, 6)
	for i := range batch {
		batch[i] = tmdb.MovieSummary{ID: 21 + i, Title: "Movie"}
	}

	matches, indices, err := matchBatch(f, batch, 20)
	require.NoError(t, err)

	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{22, 24, 26}, ids)
	assert.Equal(t, []int{21, 23, 25}, indices)
}
