package tmdb

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxPosterChecks bounds concurrent HEAD requests against the image host
const maxPosterChecks = 8

// PosterStatus reports poster availability per movie id
type PosterStatus map[int]bool

// CheckPosters probes the poster URL of every movie with a HEAD request.
// Movies without a poster reference, and posters that fail to respond, are reported
// as unavailable; a probe failure never fails the whole check.
func (c *Client) CheckPosters(ctx context.Context, movies []MovieSummary) (PosterStatus, error) {
	status := make(PosterStatus, len(movies))
	if len(movies) == 0 {
		return status, nil
	}

	// posterless entries are recorded before any probe starts writing
	probes := make(map[int]string, len(movies))
	for _, movie := range movies {
		posterURL, ok := c.PosterURL(movie)
		if !ok {
			status[movie.ID] = false
			continue
		}
		probes[movie.ID] = posterURL
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPosterChecks)

	var mu sync.Mutex

	for movieID, posterURL := range probes {
		g.Go(func() error {
			available := c.probe(gctx, posterURL)
			if !available {
				c.logger.Debug().
					Int("movie_id", movieID).
					Str("poster", posterURL).
					Msg("Poster not reachable")
			}

			mu.Lock()
			status[movieID] = available
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return status, err
	}
	return status, ctx.Err()
}

func (c *Client) probe(ctx context.Context, posterURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, posterURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
