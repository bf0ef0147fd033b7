package ratelimit

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

// KeyFunc extracts the client identity from a request.
type KeyFunc func(r *http.Request) string

// ClientIP keys requests by the host part of RemoteAddr. Behind a proxy,
// put RealIP with the proxy's address in front.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// IsLoopback reports whether the request came from the local machine.
func IsLoopback(r *http.Request) bool {
	ip := net.ParseIP(ClientIP(r))
	return ip != nil && ip.IsLoopback()
}

// MiddlewareConfig wires a limiter into the HTTP stack.
type MiddlewareConfig struct {
	KeyFunc KeyFunc
	// Skip exempts matching requests from counting.
	Skip func(r *http.Request) bool
	// OnLimited writes the response for a rejected request.
	OnLimited func(w http.ResponseWriter, r *http.Request, result *Result)
	// OnError writes the response when the store fails. With FailOpen it is
	// only notified and must not write; the request proceeds uncounted.
	OnError  func(w http.ResponseWriter, r *http.Request, err error)
	FailOpen bool
}

// Middleware enforces l on every request passing through it.
func Middleware(l *Limiter, cfg MiddlewareConfig) func(http.Handler) http.Handler {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ClientIP
	}
	if cfg.OnLimited == nil {
		cfg.OnLimited = func(w http.ResponseWriter, r *http.Request, _ *Result) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		}
	}
	if cfg.OnError == nil {
		cfg.OnError = func(w http.ResponseWriter, r *http.Request, _ error) {
			if !cfg.FailOpen {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			result, err := l.Allow(r.Context(), cfg.KeyFunc(r))
			if err != nil {
				cfg.OnError(w, r, err)
				if cfg.FailOpen {
					next.ServeHTTP(w, r)
				}
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				if secs := int(math.Ceil(result.RetryAfter.Seconds())); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				cfg.OnLimited(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
