package http

import (
	"fmt"
	"net/url"
)

// BuildURL assembles a URL from a base, a path, and query parameters. The
// base may be empty, which yields a relative URL such as a dispatcher path
// ("query?q=..."). Query values are form-encoded, so spaces become '+'.
func BuildURL(baseURL, path string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}

	parsedURL.Path = path

	q := url.Values{}
	for key, value := range queryParams {
		q.Set(key, value)
	}
	parsedURL.RawQuery = q.Encode()

	return parsedURL.String(), nil
}
