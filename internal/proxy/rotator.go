package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

const maxConcurrentChecks = 50

// Supplier hands out proxy URLs for the category source
type Supplier interface {
	Get() string
}

// Rotator cycles through the proxies that passed validation
type Rotator struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewRotator checks every proxy against testURL in parallel and keeps the
// working ones in their configured order. An empty testURL skips the check.
func NewRotator(ctx context.Context, proxies []string, testURL string) (*Rotator, error) {
	if len(proxies) == 0 || testURL == "" {
		return &Rotator{proxies: append([]string(nil), proxies...)}, nil
	}

	log.Infof("🔄 Testing %d proxies in parallel...", len(proxies))

	working := make([]bool, len(proxies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)
	for i, proxyURL := range proxies {
		g.Go(func() error {
			log.Debugf("🔄 Testing proxy %d/%d: %s", i+1, len(proxies), proxyURL)
			if isProxyValid(gctx, proxyURL, testURL) {
				working[i] = true
				log.Infof("✅ Proxy %s is working", proxyURL)
			} else {
				log.Infof("❌ Proxy %s is not working, skipping", proxyURL)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	valid := make([]string, 0, len(proxies))
	for i, ok := range working {
		if ok {
			valid = append(valid, proxies[i])
		}
	}

	log.Infof("✅ Proxy rotator initialized with %d working proxies out of %d tested", len(valid), len(proxies))
	return &Rotator{proxies: valid}, nil
}

// Get returns the next proxy URL in round-robin fashion, or "" when there are none
func (r *Rotator) Get() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.proxies) == 0 {
		return ""
	}

	proxy := r.proxies[r.current]
	r.current = (r.current + 1) % len(r.proxies)
	return proxy
}

func (r *Rotator) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.proxies)
}

// isProxyValid tests if a proxy can successfully make a request to the test URL
func isProxyValid(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL)

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)
	if err != nil {
		log.Infof("Proxy test failed for %s: %v", proxyURL, err)
		return false
	}

	if resp.IsError() {
		log.Infof("Proxy test failed for %s with status: %s", proxyURL, resp.Status())
		return false
	}

	return true
}
