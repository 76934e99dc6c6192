package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/geopull/eefetch/service/log"
)

const shutdownGrace = 5 * time.Second

// NewHandler serves the page at / and the rendered previews under /layers/.
func (m *Map) NewHandler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", m.pageHandler).Methods("GET")
	r.HandleFunc("/layers/{file}", m.layerHandler).Methods("GET")
	return r
}

// Serve publishes the map at addr until the context is cancelled.
func (m *Map) Serve(ctx context.Context, addr string) error {
	headersOk := handlers.AllowedHeaders([]string{"*"})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "OPTIONS"})
	router := handlers.LoggingHandler(os.Stdout, m.NewHandler())
	s := http.Server{
		Addr:    addr,
		Handler: handlers.CORS(originsOk, headersOk, methodsOk)(router),
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.Shutdown(sctx); err != nil {
			log.Logger(ctx).Sugar().Warnf("[Preview] shutdown: %v", err)
		}
	}()

	log.Logger(ctx).Sugar().Debugf("[Preview] map on %s", addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Serve: %w", err)
	}
	return nil
}

func (m *Map) pageHandler(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := m.HTML(w); err != nil {
		log.Logger(req.Context()).Sugar().Warnf("[Preview] page: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (m *Map) layerHandler(w http.ResponseWriter, req *http.Request) {
	file := mux.Vars(req)["file"]

	m.mu.Lock()
	scratch := m.scratch
	m.mu.Unlock()
	if scratch == "" || file != filepath.Base(file) {
		http.NotFound(w, req)
		return
	}
	http.ServeFile(w, req, filepath.Join(scratch, file))
}
