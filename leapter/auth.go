package leapter

import "net/http"

// AuthStrategy applies authentication to an outgoing HTTP request.
type AuthStrategy interface {
	Apply(req *http.Request)
}

// HeaderAuth sends the API key via a header (X-API-Key for Leapter).
// The key is only ever written onto requests, never logged.
type HeaderAuth struct {
	Header string
	Key    string
}

func (a *HeaderAuth) Apply(req *http.Request) {
	req.Header.Set(a.Header, a.Key)
}
