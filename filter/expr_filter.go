package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/tmdb"
)

// DefaultCacheSize is the number of compiled expressions a Compiler keeps
const DefaultCacheSize = 64

// ExprFilter is a compiled display filter over movie summaries
type ExprFilter struct {
	program    *vm.Program
	expression string
	now        func() time.Time
}

// Compiler compiles filter expressions and caches recent programs
type Compiler struct {
	cache *programCache
	now   func() time.Time
}

// NewCompiler creates a compiler keeping up to cacheSize programs
func NewCompiler(cacheSize int) *Compiler {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Compiler{
		cache: newProgramCache(cacheSize),
		now:   time.Now,
	}
}

// Compile type-checks an expression against the movie environment.
// The expression must evaluate to a boolean.
func (c *Compiler) Compile(expression string) (*ExprFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if cached, ok := c.cache.get(expression); ok {
		return cached, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(movieEnv(tmdb.MovieSummary{}, c.now())),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	filter := &ExprFilter{
		program:    program,
		expression: expression,
		now:        c.now,
	}
	c.cache.put(expression, filter)

	return filter, nil
}

// Expression returns the source expression
func (f *ExprFilter) Expression() string {
	return f.expression
}

// Evaluate reports whether a movie matches the filter
func (f *ExprFilter) Evaluate(movie tmdb.MovieSummary) (bool, error) {
	out, err := vm.Run(f.program, movieEnv(movie, f.now()))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, MovieTitle: movie.Title, Err: err}
	}
	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: movie.Title,
			Err:        fmt.Errorf("expected bool result, got %T", out),
		}
	}
	return matched, nil
}

// Apply returns the matching movies in their original order
func (f *ExprFilter) Apply(movies []tmdb.MovieSummary) ([]tmdb.MovieSummary, error) {
	matches := make([]tmdb.MovieSummary, 0, len(movies))
	for _, movie := range movies {
		ok, err := f.Evaluate(movie)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, movie)
		}
	}
	return matches, nil
}

// movieEnv builds the variables and helpers an expression can use.
// Unknown year and rating read as 0; HasYear and HasRating tell them apart.
func movieEnv(movie tmdb.MovieSummary, now time.Time) map[string]any {
	year, rating := 0, 0.0
	if movie.ReleaseYear != nil {
		year = *movie.ReleaseYear
	}
	if movie.Rating != nil {
		rating = *movie.Rating
	}
	age := 0
	if year > 0 {
		age = now.Year() - year
	}

	return map[string]any{
		"ID":          movie.ID,
		"Title":       movie.Title,
		"Year":        year,
		"Rating":      rating,
		"Age":         age,
		"HasYear":     movie.ReleaseYear != nil,
		"HasRating":   movie.Rating != nil,
		"HasPoster":   movie.HasPoster(),
		"CurrentYear": now.Year(),

		"hasText": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
