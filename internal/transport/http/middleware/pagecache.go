package middleware

import (
	"bytes"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Izrekatel/Yatube/internal/cache"
)

// CachePage caches successful GET responses keyed by the request URI for
// ttl. Stale content within the window is an accepted trade-off; callers
// that need fresh reads clear the cache explicitly.
func CachePage(pages cache.PageCache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.RequestURI()

			page, found, err := pages.Get(r.Context(), key)
			if err != nil {
				log.WithError(err).WithField("key", key).Warn("page cache read failed")
			}
			if found {
				if page.ContentType != "" {
					w.Header().Set("Content-Type", page.ContentType)
				}
				w.WriteHeader(page.Status)
				w.Write(page.Body)
				return
			}

			rec := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				cached := &cache.CachedPage{
					Status:      rec.status,
					ContentType: rec.Header().Get("Content-Type"),
					Body:        rec.body.Bytes(),
				}
				if err := pages.Set(r.Context(), key, cached, ttl); err != nil {
					log.WithError(err).WithField("key", key).Warn("page cache write failed")
				}
			}
		})
	}
}

// captureWriter tees the response body so it can be cached after serving.
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}
