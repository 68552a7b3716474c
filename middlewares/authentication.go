package middlewares

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/notionviews/relay/models"
	"github.com/notionviews/relay/session"
	"github.com/notionviews/relay/views"
)

// whitelist lists the routes that work without an issued API key. The
// increment and debug routes appear here because they carry their own
// legacy raw token fallback, their handlers reject the request when
// neither credential is present.
var whitelist = [][2]string{
	{"GET", "^/$"},
	{"GET", "^/_hc$"},
	{"GET", "^/health$"},
	{"GET", "^/stats$"},
	{"GET", "^/metrics$"},
	{"POST", "^/register$"},
	{"POST", "^/increment_views$"},
	{"GET", "^/debug/page_meta$"},
}

type contextValueKey struct{ int }

var keyCurrentTenant = contextValueKey{1000}

func CurrentTenant(r *http.Request) *models.Tenant {
	tenant, _ := r.Context().Value(keyCurrentTenant).(*models.Tenant)
	return tenant
}

// APIKey extracts the caller's key from the X-API-Key header or a bearer
// Authorization header.
func APIKey(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("X-API-Key")); key != "" {
		return key
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func Authenticate(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := APIKey(r)
		if key == "" {
			handleUnauthorized(handler, w, r)
			return
		}

		tenant, err := models.AuthenticateTenant(r.Context(), key)
		if err != nil {
			handleUnauthorized(handler, w, r)
			return
		}
		ctx := context.WithValue(r.Context(), keyCurrentTenant, tenant)
		handler.ServeHTTP(w, r.WithContext(ctx))
	})
}

func handleUnauthorized(handler http.Handler, w http.ResponseWriter, r *http.Request) {
	for _, pp := range whitelist {
		if pp[0] != r.Method {
			continue
		}
		if matched, _ := regexp.MatchString(pp[1], strings.ToLower(r.URL.Path)); matched {
			handler.ServeHTTP(w, r)
			return
		}
	}

	views.RenderErrorResponse(w, r, session.AuthorizationError(r.Context()))
}
