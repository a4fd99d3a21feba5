package httputil

import "net/http"

// UserAgent is sent on every upstream request.
const UserAgent = "Mozilla/5.0"

// APIHeaders returns the headers expected by the catalog JSON endpoints.
func APIHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.8")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("Connection", "keep-alive")
	return h
}
