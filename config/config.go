// Package config holds the settings of the breach lookup. Values come from
// built-in defaults, an optional YAML file and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"reflect"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/pwaudit/pwaudit/breach"
)

const (
	DefaultRequestsPerSecond = 10
	DefaultResponseCacheTTL  = time.Hour

	// MaxRetriesLimit bounds max_retries so a misconfiguration cannot stall a
	// check for minutes.
	MaxRetriesLimit = 10
)

type Config struct {
	APIURL            string        `long:"api-url" description:"base URL of the range lookup service" value-name:"URL" yaml:"api_url"`
	UserAgent         string        `long:"user-agent" description:"User-Agent sent with lookups" value-name:"AGENT" yaml:"user_agent"`
	Timeout           time.Duration `long:"timeout" description:"timeout for a single lookup attempt" value-name:"DURATION" yaml:"timeout"`
	MaxRetries        *int          `long:"max-retries" description:"extra attempts after a failed lookup" value-name:"N" yaml:"max_retries"`
	RateLimitBase     time.Duration `long:"rate-limit-delay" description:"first delay after being rate limited, doubled on every retry" value-name:"DURATION" yaml:"rate_limit_base"`
	TimeoutDelay      time.Duration `long:"timeout-delay" description:"delay before retrying a timed out lookup" value-name:"DURATION" yaml:"timeout_delay"`
	ConnectionDelay   time.Duration `long:"connection-delay" description:"delay before retrying a failed connection, multiplied by the attempt number" value-name:"DURATION" yaml:"connection_delay"`
	RequestsPerSecond float64       `long:"requests-per-second" description:"pace lookups to at most this rate; negative disables pacing" value-name:"RATE" yaml:"requests_per_second"`
	AddPadding        bool          `long:"add-padding" description:"ask the service to pad responses" yaml:"add_padding"`
	DenylistPath      string        `long:"denylist" description:"file recording passwords found in breaches" value-name:"PATH" yaml:"denylist_path"`
	ResponseCacheTTL  time.Duration `long:"response-cache-ttl" description:"how long to reuse range responses; negative disables reuse" value-name:"DURATION" yaml:"response_cache_ttl"`
}

func Default() Config {
	backoff := breach.DefaultBackoffPolicy()
	maxRetries := breach.DefaultMaxRetries

	return Config{
		APIURL:            breach.DefaultAPIURL,
		UserAgent:         breach.DefaultUserAgent,
		Timeout:           breach.DefaultTimeout,
		MaxRetries:        &maxRetries,
		RateLimitBase:     backoff.RateLimitBase,
		TimeoutDelay:      backoff.TimeoutDelay,
		ConnectionDelay:   backoff.ConnectionDelay,
		RequestsPerSecond: DefaultRequestsPerSecond,
		ResponseCacheTTL:  DefaultResponseCacheTTL,
	}
}

func Parse(bs []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(bs, c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func Load(path string) (*Config, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return c, nil
}

func (c *Config) Validate() []error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("no api url specified"))
	} else if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api url %q must be an absolute http or https URL", c.APIURL))
	}

	if c.UserAgent == "" {
		errs = append(errs, errors.New("no user agent specified"))
	}

	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}

	if c.MaxRetries != nil && (*c.MaxRetries < 0 || *c.MaxRetries > MaxRetriesLimit) {
		errs = append(errs, fmt.Errorf("max retries must be between 0 and %d", MaxRetriesLimit))
	}

	if c.RateLimitBase < 0 || c.TimeoutDelay < 0 || c.ConnectionDelay < 0 {
		errs = append(errs, errors.New("retry delays must not be negative"))
	}

	return errs
}

// Merge copies every non-zero value of other onto c. MaxRetries is a pointer
// so that an explicit zero still overrides.
func (c *Config) Merge(other *Config) error {
	src := reflect.ValueOf(other).Elem()
	dst := reflect.ValueOf(c).Elem()

	return merge(dst, src)
}

func (c *Config) Retries() int {
	if c.MaxRetries == nil {
		return breach.DefaultMaxRetries
	}
	return *c.MaxRetries
}

func (c *Config) BreachConfig(useRemote bool) breach.Config {
	return breach.Config{
		APIURL:           c.APIURL,
		UserAgent:        c.UserAgent,
		Timeout:          c.Timeout,
		UseRemote:        useRemote,
		MaxRetries:       c.Retries(),
		AddPadding:       c.AddPadding,
		ResponseCacheTTL: c.ResponseCacheTTL,
	}
}

func (c *Config) BackoffPolicy() breach.BackoffPolicy {
	return breach.BackoffPolicy{
		RateLimitBase:   c.RateLimitBase,
		TimeoutDelay:    c.TimeoutDelay,
		ConnectionDelay: c.ConnectionDelay,
	}
}
