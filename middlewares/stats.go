package middlewares

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strconv"
	"time"

	"github.com/notionviews/relay/session"
	"github.com/notionviews/relay/views"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "relay",
	Name:      "http_requests_total",
	Help:      "HTTP requests by method, path and status",
}, []string{"method", "path", "status"})

// Stats buffers the request body so error reports can include it, replays
// the response through a recorder to stamp runtime headers, and feeds the
// request counters.
func Stats(handler http.Handler, buildVersion string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startAt := time.Now()

		if r.ContentLength > 0 && r.Body != nil {
			p, err := io.ReadAll(r.Body)
			if err != nil {
				views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
				return
			}
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewBuffer(p))
			r = r.WithContext(session.WithRequestBody(r.Context(), string(p)))
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		spent := time.Since(startAt)
		w.Header().Set("X-Build-Info", buildVersion+"-"+runtime.Version())
		w.Header().Set("X-Request-Id", r.Header.Get("X-Request-Id"))
		w.Header().Set("X-Runtime", fmt.Sprintf("%f", spent.Seconds()))
		w.WriteHeader(rec.Code)
		contentLength, _ := rec.Body.WriteTo(w)

		requestsCounter.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.Code)).Inc()
		if logger := session.Logger(r.Context()); logger != nil {
			logger.FillResponse(rec.Code, contentLength, spent)
			logger.Infof("{%s %s RESPOND %d bytes FINISHED %d IN %f seconds}", r.Method, r.URL, contentLength, rec.Code, spent.Seconds())
		}
	})
}
