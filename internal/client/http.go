package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"catalog/navigator/internal/config"
	"catalog/navigator/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// HTTPSource fetches the category payload from the category service
type HTTPSource struct {
	rl         ratelimit.Limiter
	url        string
	format     Format
	httpClient *resty.Client
	proxies    proxy.Supplier

	// Circuit breaker for quota exceeded
	circuitBreakerMutex sync.RWMutex
	quotaExceededUntil  time.Time
	circuitBreakerDelay time.Duration
}

func NewHTTPSource(cfg config.SourceConfig, proxies proxy.Supplier) *HTTPSource {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("User-Agent", "catalog-navigator/1.0").
		SetHeader("Accept", "application/json, text/html;q=0.9, */*;q=0.5")

	if proxies != nil {
		if proxyURL := proxies.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	delay := time.Duration(cfg.CircuitBreakerDelay) * time.Second
	if delay <= 0 {
		delay = 5 * time.Minute
	}

	format := Format(cfg.Format)
	if format == "" {
		format = FormatJSON
	}

	return &HTTPSource{
		rl:                  rl,
		url:                 cfg.URL,
		format:              format,
		httpClient:          client,
		proxies:             proxies,
		circuitBreakerDelay: delay,
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) (*Payload, error) {
	if s.isCircuitBreakerOpen() {
		remaining := s.getRemainingCircuitBreakerTime()
		log.Debugf("🚫 Request blocked by circuit breaker. Remaining time: %v", remaining.Round(time.Second))
		return nil, fmt.Errorf("%w: requests disabled for %v more", ErrCircuitOpen, remaining.Round(time.Second))
	}

	s.rl.Take()

	resp, err := s.httpClient.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		log.Warnf("🚫 Rate limit exceeded for URL: %s", s.url)
		resp, err = s.retryWithNextProxy(ctx)
		if err != nil {
			s.triggerCircuitBreaker()
			return nil, err
		}
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	body := []byte(resp.String())
	log.Debugf("Fetched %d bytes of categories from %s", len(body), s.url)
	return &Payload{Source: s.url, Format: s.format, Body: body}, nil
}

func (s *HTTPSource) retryWithNextProxy(ctx context.Context) (*resty.Response, error) {
	if s.proxies == nil {
		return nil, fmt.Errorf("quota exceeded - circuit breaker activated for %v", s.circuitBreakerDelay)
	}
	newProxy := s.proxies.Get()
	if newProxy == "" {
		return nil, fmt.Errorf("quota exceeded - circuit breaker activated for %v", s.circuitBreakerDelay)
	}

	log.Infof("🔄 Switching to new proxy: %s", newProxy)
	s.httpClient.SetProxy(newProxy)

	resp, err := s.httpClient.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil || resp.StatusCode() == http.StatusTooManyRequests {
		return nil, fmt.Errorf("quota exceeded with proxy %s - circuit breaker activated for %v", newProxy, s.circuitBreakerDelay)
	}

	log.Infof("✅ Retry successful with new proxy")
	return resp, nil
}

func (s *HTTPSource) isCircuitBreakerOpen() bool {
	s.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(s.quotaExceededUntil)
	wasTriggered := !s.quotaExceededUntil.IsZero()
	s.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		s.circuitBreakerMutex.Lock()
		if !s.quotaExceededUntil.IsZero() && now.After(s.quotaExceededUntil) {
			s.quotaExceededUntil = time.Time{}
			log.Infof("✅ Circuit breaker automatically re-enabled - requests are now allowed")
		}
		s.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (s *HTTPSource) triggerCircuitBreaker() {
	s.circuitBreakerMutex.Lock()
	defer s.circuitBreakerMutex.Unlock()

	s.quotaExceededUntil = time.Now().Add(s.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker activated! Category requests disabled until %v",
		s.quotaExceededUntil.Format("15:04:05"))
}

func (s *HTTPSource) getRemainingCircuitBreakerTime() time.Duration {
	s.circuitBreakerMutex.RLock()
	defer s.circuitBreakerMutex.RUnlock()

	remaining := time.Until(s.quotaExceededUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}
