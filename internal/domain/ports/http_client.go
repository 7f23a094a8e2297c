package ports

import "net/http"

// HTTPClient defines the interface for making HTTP requests.
// Lets tests swap in a recording client and keeps the provider adapter off
// the package-level default client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
