package httputil

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Transport is an http.RoundTripper that applies the request pipeline shared
// by every upstream call: UserAgent + API headers → robots.txt gate → rate
// limiter token → send.
type Transport struct {
	Base        http.RoundTripper
	Robots      *RobotsChecker
	RateLimiter *rate.Limiter
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	for key, vals := range APIHeaders() {
		if req.Header.Get(key) == "" {
			for _, v := range vals {
				req.Header.Add(key, v)
			}
		}
	}

	if t.Robots != nil {
		allowed, err := t.Robots.IsAllowed(UserAgent, req.URL.String())
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
		}
	}

	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
