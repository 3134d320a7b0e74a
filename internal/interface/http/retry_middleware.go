package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/ai-wardrobe/internal/infra/config"
)

const retryBodyLimit = 1 << 20 // 1 MiB

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// retryStatuses lists the outcomes worth replaying. 502 is absent: the weather
// client already failed behind its breaker and a replay would only feed it more failures.
var retryStatuses = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// withRetry replays small JSON POSTs that fail with a transient status.
// Uploads are excluded by config since a replay would re-run classification.
func withRetry(next http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return next
	}
	excluded := make(map[string]bool, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		excluded[path] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || excluded[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		body, err := bufferBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		var rec *bufferedResponse
		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 && !sleepCtx(r, backoff(cfg.BaseBackoff, attempt)) {
				break
			}
			rec = newBufferedResponse()
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))

			next.ServeHTTP(rec, replay)
			if !retryStatuses[rec.status] {
				break
			}
			if attempt < cfg.MaxAttempts {
				logger.Warn("retrying request", "path", r.URL.Path, "status", rec.status, "attempt", attempt)
			}
		}
		rec.flushTo(w)
	})
}

func backoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-2))
}

// sleepCtx waits for d and reports false if the client went away first.
func sleepCtx(r *http.Request, d time.Duration) bool {
	if d <= 0 {
		return r.Context().Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds one attempt's response until it is known to be final.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
	sealed bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.sealed {
		return
	}
	b.status = status
	b.sealed = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.sealed = true
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, v := range b.header {
		dst[k] = append([]string(nil), v...)
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
