package httputil

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker caches and checks robots.txt rules per domain.
type RobotsChecker struct {
	rules    map[string]*robotstxt.RobotsData
	expiry   map[string]time.Time
	mu       sync.Mutex
	client   *http.Client
	cacheTTL time.Duration
	enabled  bool
}

// NewRobotsChecker creates a new robots.txt checker. When disabled it allows
// everything without any network traffic.
func NewRobotsChecker(client *http.Client, enabled bool) *RobotsChecker {
	return &RobotsChecker{
		rules:    make(map[string]*robotstxt.RobotsData),
		expiry:   make(map[string]time.Time),
		client:   client,
		cacheTTL: 1 * time.Hour,
		enabled:  enabled,
	}
}

// IsAllowed checks if the given URL is allowed by robots.txt.
func (r *RobotsChecker) IsAllowed(userAgent, rawURL string) (bool, error) {
	if !r.enabled {
		return true, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false, err
	}

	data, err := r.getRobots(u.Scheme + "://" + u.Host)
	if err != nil {
		// Unfetchable robots.txt never blocks the crawl.
		return true, nil
	}

	return data.FindGroup(userAgent).Test(u.Path), nil
}

func (r *RobotsChecker) getRobots(origin string) (*robotstxt.RobotsData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data, ok := r.rules[origin]; ok {
		if exp, ok := r.expiry[origin]; ok && time.Now().Before(exp) {
			return data, nil
		}
	}

	resp, err := r.client.Get(origin + "/robots.txt")
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.rules[origin] = data
	r.expiry[origin] = time.Now().Add(r.cacheTTL)
	return data, nil
}
