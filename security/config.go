package security

import (
	"fmt"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
)

// Default policy values. An explicit zero value in Config means "use the
// default" for the non-boolean fields; see Normalized.
const (
	// DefaultMaxTransactionAmount is the transfer ceiling in base units
	// (10^12, i.e. 10,000 whole coins at 8 decimals).
	DefaultMaxTransactionAmount = "1000000000000"
	// DefaultRateLimitWindow is the fixed rate-limit window length.
	DefaultRateLimitWindow = 60 * time.Second
	// DefaultMaxRequestsPerWindow caps guarded calls per operation per
	// window.
	DefaultMaxRequestsPerWindow = 30
)

// Config is the security policy applied by a mediator instance.
type Config struct {
	// MaxTransactionAmount is the decimal base-unit ceiling applied to
	// transfer amounts. Compared with arbitrary precision.
	MaxTransactionAmount string `json:"max_transaction_amount" yaml:"max_transaction_amount" mapstructure:"max_transaction_amount"`

	// AllowedOrigins restricts which host origins may connect. Entries
	// are exact origins or patterns with a single * wildcard. Empty
	// means no origin restriction.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`

	// RateLimitWindow is the fixed window length for rate limiting.
	RateLimitWindow time.Duration `json:"rate_limit_window" yaml:"rate_limit_window" mapstructure:"rate_limit_window"`

	// MaxRequestsPerWindow is the per-operation request budget within
	// one window.
	MaxRequestsPerWindow int `json:"max_requests_per_window" yaml:"max_requests_per_window" mapstructure:"max_requests_per_window"`

	// EnableCSP controls whether ContentSecurityPolicy produces a
	// policy.
	EnableCSP bool `json:"enable_csp" yaml:"enable_csp" mapstructure:"enable_csp"`

	// StrictMode wires security events into the diagnostic log.
	StrictMode bool `json:"strict_mode" yaml:"strict_mode" mapstructure:"strict_mode"`
}

// DefaultConfig returns the default security policy: 10^12 base-unit
// transfer ceiling, 30 requests per 60s window, CSP and strict mode on,
// no origin restriction.
func DefaultConfig() Config {
	return Config{
		MaxTransactionAmount: DefaultMaxTransactionAmount,
		RateLimitWindow:      DefaultRateLimitWindow,
		MaxRequestsPerWindow: DefaultMaxRequestsPerWindow,
		EnableCSP:            true,
		StrictMode:           true,
	}
}

// Normalized returns a copy with zero-valued non-boolean fields replaced
// by defaults. Booleans are kept as given: a bare struct cannot tell
// unset from false, so boolean defaulting happens at the config-file
// layer.
func (c Config) Normalized() Config {
	if c.MaxTransactionAmount == "" {
		c.MaxTransactionAmount = DefaultMaxTransactionAmount
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = DefaultRateLimitWindow
	}
	if c.MaxRequestsPerWindow <= 0 {
		c.MaxRequestsPerWindow = DefaultMaxRequestsPerWindow
	}
	return c
}

// Validate checks the policy for internal consistency.
func (c Config) Validate() error {
	if c.MaxTransactionAmount != "" {
		if _, ok := sdkmath.NewIntFromString(c.MaxTransactionAmount); !ok {
			return NewConfigError(fmt.Sprintf("max_transaction_amount %q is not an integer", c.MaxTransactionAmount))
		}
	}
	if c.RateLimitWindow < 0 {
		return NewConfigError("rate_limit_window must not be negative")
	}
	if c.MaxRequestsPerWindow < 0 {
		return NewConfigError("max_requests_per_window must not be negative")
	}
	for _, pattern := range c.AllowedOrigins {
		if pattern == "" {
			return NewConfigError("allowed_origins must not contain empty entries")
		}
		if strings.Count(pattern, "*") > 1 {
			return NewConfigError(fmt.Sprintf("allowed origin pattern %q has more than one wildcard", pattern))
		}
	}
	return nil
}

// OriginAllowed reports whether the host origin passes the allow-list.
// An empty allow-list admits every origin. Matching is case-sensitive:
// entries are exact origins or single-* glob patterns.
func (c Config) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, pattern := range c.AllowedOrigins {
		if matchOriginPattern(pattern, origin) {
			return true
		}
	}
	return false
}

func matchOriginPattern(pattern, origin string) bool {
	i := strings.IndexByte(pattern, '*')
	if i < 0 {
		return pattern == origin
	}
	prefix, suffix := pattern[:i], pattern[i+1:]
	return len(origin) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(origin, prefix) &&
		strings.HasSuffix(origin, suffix)
}
