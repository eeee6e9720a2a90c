package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/utiming/internal/locale"
)

type localizerKey struct{}

// withLocalizer picks the request language from ?lang= or Accept-Language
// and stores the localizer in the request context.
func (s *Server) withLocalizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.translator.Localizer(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", l.Lang())
		ctx := context.WithValue(r.Context(), localizerKey{}, l)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// localizerFrom returns the request localizer, or one for the default
// language when the middleware did not run.
func (s *Server) localizerFrom(ctx context.Context) *locale.Localizer {
	if l, ok := ctx.Value(localizerKey{}).(*locale.Localizer); ok {
		return l
	}
	return s.translator.Localizer()
}
