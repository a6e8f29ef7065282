// Package tmdb provides a read-only client for The Movie Database (TMDb) v3 API.
//
// Only the two queries needed to browse movies by genre are implemented:
//
//   - ListGenres: the full movie genre list, in the order the service returns it
//   - ListMoviesByGenre: one page of discover results for a genre, sorted by
//     descending rating and restricted to titles with at least MinVoteCount votes
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		"your-api-key",
//		logger,
//		tmdb.WithTimeout(10*time.Second),
//		tmdb.WithLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	genres, err := client.ListGenres(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	action, _ := genres.Lookup("Action")
//	movies, err := client.ListMoviesByGenre(ctx, action.ID, 1, 20)
//
// # Error Handling
//
// Every failure wraps one of two sentinels:
//
//   - ErrServiceUnavailable: transport failure or a non-success HTTP status
//     (status failures are additionally an *APIError)
//   - ErrMalformedResponse: the payload could not be decoded into the expected shape
//
// Nothing is retried and nothing is cached; every call goes to the network.
package tmdb
