// Package breach looks passwords up in breach corpora without disclosing
// them: a built-in list of very common passwords, a k-anonymity range query
// against a remote service, and the local cache of past discoveries.
package breach

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	gocache "github.com/patrickmn/go-cache"

	"github.com/pwaudit/pwaudit/denylist"
	"github.com/pwaudit/pwaudit/net"
)

const (
	DefaultAPIURL     = "https://api.pwnedpasswords.com"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
	DefaultUserAgent  = "pwaudit"
)

type Config struct {
	APIURL     string
	UserAgent  string
	Timeout    time.Duration
	UseRemote  bool
	MaxRetries int
	AddPadding bool

	// ResponseCacheTTL keeps range responses in memory so that passwords
	// sharing a prefix cost one request. Zero disables the memo.
	ResponseCacheTTL time.Duration
}

type Client struct {
	config     Config
	httpClient net.Client
	cache      *denylist.Cache
	backoff    BackoffPolicy
	sleeper    Sleeper
	pacer      net.Pacer
	responses  *gocache.Cache
}

type Option func(*Client)

func WithBackoffPolicy(policy BackoffPolicy) Option {
	return func(c *Client) {
		c.backoff = policy
	}
}

// WithPacer spaces range requests out. Each wait completes before the
// request timeout starts.
func WithPacer(pacer net.Pacer) Option {
	return func(c *Client) {
		c.pacer = pacer
	}
}

func WithSleeper(sleeper Sleeper) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient builds a Client. cache may be nil, in which case connection
// failures cannot fall back to past discoveries.
func NewClient(config Config, httpClient net.Client, cache *denylist.Cache, opts ...Option) *Client {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	c := &Client{
		config:     config,
		httpClient: httpClient,
		cache:      cache,
		backoff:    DefaultBackoffPolicy(),
		sleeper:    clock.NewClock(),
	}

	if config.ResponseCacheTTL > 0 {
		c.responses = gocache.New(config.ResponseCacheTTL, 0)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check looks password up using the configured remote and retry settings.
func (c *Client) Check(logger lager.Logger, password string) Result {
	return c.CheckWith(logger, password, c.config.UseRemote, c.config.MaxRetries)
}

// CheckWith looks password up. It never fails: network problems are retried
// and then reported through Result.Source.
func (c *Client) CheckWith(logger lager.Logger, password string, useRemote bool, maxRetries int) Result {
	logger = logger.Session("check-breach", lager.Data{
		"password-length": utf8.RuneCountInString(password),
		"use-remote":      useRemote,
	})
	logger.Debug("starting")
	defer logger.Debug("done")

	if denylist.IsCommon(password) {
		return Result{
			Breached: true,
			Count:    denylist.VeryCommonCount,
			Source:   SourceLocalDenylist,
			Message:  "password is on the list of the most common passwords",
		}
	}

	if !useRemote {
		return Result{
			Source:  SourceDisabled,
			Message: "remote breach lookup is disabled",
		}
	}

	if maxRetries < 0 {
		maxRetries = 0
	}

	prefix, suffix := HashPrefix(password)
	body, outcome := c.queryRange(logger, prefix, maxRetries)

	switch outcome.source {
	case SourceRemoteAPI:
		count, found := findSuffix(logger, body, suffix)
		if !found {
			return Result{
				Source:  SourceRemoteAPI,
				Message: "password was not found in known breaches",
			}
		}

		c.remember(logger, password)

		return Result{
			Breached: true,
			Count:    count,
			Source:   SourceRemoteAPI,
			Message:  fmt.Sprintf("password appeared %d times in known breaches", count),
		}

	case SourceConnectionError:
		if c.cache != nil && c.cache.Contains(logger, password) {
			c.remember(logger, password)

			return Result{
				Breached: true,
				Count:    1,
				Source:   SourceLocalDenylist,
				Message:  "breach lookup service unreachable; password was found in the local breach cache",
			}
		}
	}

	return Result{
		Source:  outcome.source,
		Message: outcome.message,
	}
}

func (c *Client) remember(logger lager.Logger, password string) {
	if c.cache == nil {
		return
	}

	if err := c.cache.Add(logger, password); err != nil {
		logger.Error("persist-failed", err, lager.Data{"store": c.cache.Path()})
	}
}

type rangeOutcome struct {
	source  Source
	message string
}

func (c *Client) queryRange(logger lager.Logger, prefix string, maxRetries int) (string, rangeOutcome) {
	logger = logger.Session("query-range", lager.Data{"prefix": prefix})

	if c.responses != nil {
		if body, found := c.responses.Get(prefix); found {
			logger.Debug("memoised")
			return body.(string), rangeOutcome{source: SourceRemoteAPI}
		}
	}

	timedOut := false

	for attempt := 0; ; attempt++ {
		canRetry := attempt < maxRetries
		logger.Debug("attempt", lager.Data{"attempt": attempt + 1, "max-attempts": maxRetries + 1})

		c.pace(logger)
		body, status, err := c.get(prefix)

		switch {
		case err != nil && isTimeout(err):
			logger.Info("timed-out", lager.Data{"attempt": attempt + 1})
			if !canRetry || timedOut {
				return "", rangeOutcome{
					source:  SourceTimeout,
					message: "breach lookup timed out; breach status unknown",
				}
			}
			timedOut = true
			c.wait(logger, c.backoff.Timeout())

		case err != nil:
			logger.Info("connection-failed", lager.Data{"attempt": attempt + 1, "error": err.Error()})
			if !canRetry {
				return "", rangeOutcome{
					source:  SourceConnectionError,
					message: fmt.Sprintf("could not reach the breach lookup service (%s); breach status unknown", describe(err)),
				}
			}
			c.wait(logger, c.backoff.ConnectionFailed(attempt))

		case status == http.StatusOK:
			if c.responses != nil {
				c.responses.SetDefault(prefix, body)
			}
			return body, rangeOutcome{source: SourceRemoteAPI}

		case status == http.StatusTooManyRequests:
			logger.Info("rate-limited", lager.Data{"attempt": attempt + 1})
			if !canRetry {
				return "", rangeOutcome{
					source:  SourceRateLimited,
					message: "breach lookup service is rate limiting requests; breach status unknown",
				}
			}
			c.wait(logger, c.backoff.RateLimited(attempt))

		default:
			logger.Info("unexpected-status", lager.Data{"status": status})
			return "", rangeOutcome{
				source:  SourceHTTPError,
				message: fmt.Sprintf("breach lookup service answered %d %s; breach status unknown", status, http.StatusText(status)),
			}
		}
	}
}

// Ping fetches one range through the same transport, pacing and timeout as a
// lookup, without retries, memo or cache.
func (c *Client) Ping(logger lager.Logger, prefix string) error {
	logger = logger.Session("ping", lager.Data{"prefix": prefix})

	c.pace(logger)
	_, status, err := c.get(prefix)
	if err != nil {
		logger.Error("failed", err)
		return err
	}

	if status != http.StatusOK {
		return fmt.Errorf("answered %d %s", status, http.StatusText(status))
	}

	return nil
}

func (c *Client) pace(logger lager.Logger) {
	if c.pacer == nil {
		return
	}

	if err := c.pacer.Wait(context.Background()); err != nil {
		logger.Error("pacing-failed", err)
	}
}

func (c *Client) wait(logger lager.Logger, delay time.Duration) {
	logger.Debug("backing-off", lager.Data{"delay": delay.String()})
	c.sleeper.Sleep(delay)
}

func (c *Client) get(prefix string) (string, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	url := strings.TrimRight(c.config.APIURL, "/") + "/range/" + prefix
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}

	request.Header.Set("User-Agent", c.config.UserAgent)
	request.Header.Set("Accept", "text/plain")
	if c.config.AddPadding {
		request.Header.Set("Add-Padding", "true")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", 0, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		io.Copy(ioutil.Discard, response.Body)
		return "", response.StatusCode, nil
	}

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return "", 0, err
	}

	return string(body), response.StatusCode, nil
}

// findSuffix scans SUFFIX:COUNT records. Padding records carry a zero count
// and never count as a hit.
func findSuffix(logger lager.Logger, body, suffix string) (int, bool) {
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		hash, rawCount, ok := strings.Cut(line, ":")
		if !ok {
			logger.Debug("malformed-record")
			continue
		}

		if hash != suffix {
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(rawCount))
		if err != nil {
			logger.Debug("malformed-count")
			continue
		}

		if count > 0 {
			return count, true
		}
	}

	return 0, false
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

func describe(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "x509") || strings.Contains(msg, "tls"):
		return "TLS certificate problem"
	case strings.Contains(strings.ToLower(msg), "proxy"):
		return "proxy problem"
	default:
		return "connection failed"
	}
}
