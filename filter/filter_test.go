package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testCompiler(size int) *Compiler {
	c := NewCompiler(size)
	c.now = func() time.Time {
		return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	}
	return c
}

var testMovies = []tmdb.MovieSummary{
	{ID: 238, Title: "The Godfather", ReleaseYear: intPtr(1972), Rating: floatPtr(8.7), PosterPath: "/a.jpg"},
	{ID: 155, Title: "The Dark Knight", ReleaseYear: intPtr(2008), Rating: floatPtr(8.5), PosterPath: "/b.jpg"},
	{ID: 680, Title: "Pulp Fiction", ReleaseYear: intPtr(1994), Rating: floatPtr(8.5)},
	{ID: 999, Title: "Mystery Reel"},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Rating >= 8.5`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `hasText(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "non-boolean result",
			expression: `Year + 1`,
			wantErr:    true,
		},
		{
			name:       "unknown variable",
			expression: `Watched == true`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `HasPoster and Year > 2000 and hasPrefix(Title, "the")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := testCompiler(8).Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, filter.Expression())
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		expected   []int
	}{
		{"rating threshold", `Rating >= 8.6`, []int{238}},
		{"year range", `HasYear && Year >= 1990`, []int{155, 680}},
		{"poster required", `HasPoster`, []int{238, 155}},
		{"missing metadata", `!HasRating && !HasYear`, []int{999}},
		{"title helper", `hasText(Title, "dark")`, []int{155}},
		{"suffix helper", `hasSuffix(Title, "FICTION")`, []int{680}},
		{"contains operator", `Title contains "Dark"`, []int{155}},
		{"age", `HasYear && Age > 40`, []int{238}},
		{"match all", `true`, []int{238, 155, 680, 999}},
	}

	compiler := testCompiler(8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			matches, err := filter.Apply(testMovies)
			require.NoError(t, err)

			ids := make([]int, 0, len(matches))
			for _, m := range matches {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := testCompiler(2)

	a, err := compiler.Compile(`Rating > 1`)
	require.NoError(t, err)
	again, err := compiler.Compile(` Rating > 1 `)
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = compiler.Compile(`Rating > 2`)
	require.NoError(t, err)
	_, err = compiler.Compile(`Rating > 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.cache.len())

	evicted, err := compiler.Compile(`Rating > 1`)
	require.NoError(t, err)
	assert.NotSame(t, a, evicted)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(testCompiler(8))

	err := registry.RegisterFilters(map[string]string{
		"classics": `HasYear && Year < 1980`,
		"modern":   `Year >= 2000`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"classics", "modern"}, registry.Names())

	t.Run("invalid preset registers nothing", func(t *testing.T) {
		err := registry.RegisterFilters(map[string]string{
			"fine":   `Rating > 5`,
			"broken": `Rating >`,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
		_, ok := registry.Get("fine")
		assert.False(t, ok)
	})

	t.Run("resolve priority", func(t *testing.T) {
		f, err := registry.Resolve(`Rating > 8.6`, "classics")
		require.NoError(t, err)
		assert.Equal(t, `Rating > 8.6`, f.Expression())

		f, err = registry.Resolve("", "classics")
		require.NoError(t, err)
		assert.Equal(t, `HasYear && Year < 1980`, f.Expression())

		f, err = registry.Resolve("", "")
		require.NoError(t, err)
		assert.Nil(t, f)

		_, err = registry.Resolve("", "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
