// internal/app/bootstrap/static.go
package bootstrap

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// mountClient serves the built single-page client from dir. Hashed assets
// under /static go through WAFFLE's fileserver (pre-compressed variants);
// any other existing file is served as-is, and every remaining non-API GET
// falls back to index.html so client-side routes resolve.
func mountClient(r chi.Router, dir string, apiNotFound http.HandlerFunc, logger *zap.Logger) {
	logger.Info("serving client build", zap.String("dir", dir))

	r.Handle("/static/*", fileserver.Handler("/static", filepath.Join(dir, "static")))
	r.NotFound(clientFallback(dir, apiNotFound))
}

func clientFallback(dir string, apiNotFound http.HandlerFunc) http.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			apiNotFound(w, r)
			return
		}
		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" {
			p := filepath.Join(dir, filepath.FromSlash(clean))
			if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
				http.ServeFile(w, r, p)
				return
			}
		}
		http.ServeFile(w, r, index)
	}
}
