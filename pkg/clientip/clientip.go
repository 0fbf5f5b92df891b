package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when no valid address can be found.
const Unknown = "unknown"

// ProxyHeaders lists the common proxy headers, highest priority first. None
// are trusted unless passed to WithHeaders.
var ProxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Config lists the proxy headers to trust. Empty means RemoteAddr only.
type Config struct {
	TrustedHeaders []string `env:"TRUSTED_PROXY_HEADERS" envSeparator:","`
}

// Resolver extracts the client IP from requests.
type Resolver struct {
	headers []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders sets the trusted proxy headers, highest priority first.
// Blank names are skipped.
func WithHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = r.headers[:0]
		for _, h := range headers {
			if h = strings.TrimSpace(h); h != "" {
				r.headers = append(r.headers, h)
			}
		}
	}
}

// New returns a Resolver that keys on RemoteAddr unless headers are
// trusted with WithHeaders.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the normalized client IP, or Unknown.
func (res *Resolver) Resolve(r *http.Request) string {
	for _, h := range res.headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		// X-Forwarded-For is a list: client, proxy1, proxy2.
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := normalize(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return Unknown
}

// NewFromConfig returns a Resolver trusting cfg.TrustedHeaders.
func NewFromConfig(cfg Config) *Resolver {
	return New(WithHeaders(cfg.TrustedHeaders...))
}

// GetIP resolves the client IP using the default resolver.
func GetIP(r *http.Request) string {
	return defaultResolver.Resolve(r)
}

var defaultResolver = New()

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
