package util

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// NewHTTPClient builds an outbound client honoring the shared proxy
// settings. A zero timeout leaves deadlines to the request context;
// maxRedirects <= 0 keeps the default redirect policy.
func NewHTTPClient(cfg model.HTTPConfig, timeout time.Duration, maxRedirects int) *http.Client {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: proxyFunc(cfg),
		},
	}
	if maxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	}
	return client
}

// proxyFunc resolves the proxy per request: explicit scheme-specific
// settings first, the process environment otherwise
func proxyFunc(cfg model.HTTPConfig) func(*http.Request) (*url.URL, error) {
	if cfg.HTTPProxy == "" && cfg.HTTPSProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && cfg.HTTPSProxy != "":
			return url.Parse(cfg.HTTPSProxy)
		case cfg.HTTPProxy != "":
			return url.Parse(cfg.HTTPProxy)
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}
