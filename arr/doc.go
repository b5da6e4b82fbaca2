// Package arr provides a client for the manual import API shared by Sonarr and Radarr.
//
// Both servers expose the same v3 endpoints for manual imports: a scan of a folder that
// returns import candidates, and a command endpoint that accepts a ManualImport command.
// The candidates differ only in how they reference library items (series and episodes for
// Sonarr, a movie for Radarr), which is captured by the Variant type.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := arr.NewClient(
//		"http://sonarr:8989",
//		"your-api-key",
//		logger,
//		arr.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	candidates, err := client.GetManualImport(ctx, "/downloads/complete", true)
//
// # Error Handling
//
// Requests that complete with an unexpected status return an *APIError carrying the
// status code and the response body:
//
//	var apiErr *arr.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package arr
