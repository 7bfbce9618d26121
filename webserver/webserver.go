// Package webserver serves the static landing pages.
package webserver

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/stevemurr/simple-items-server/middleware"
)

const (
	welcomePage  = "<h1>Welcome</h1>"
	notFoundPage = "<h1>404-Page not found</h1>"
)

// Server answers / with a greeting and /index.html with the contents of a
// file on disk. Every other path is a 404 page. Methods are not checked.
type Server struct {
	indexFile string
	log       *slog.Logger
	router    chi.Router
}

// New creates a Server that serves indexFile at /index.html. A nil logger
// discards output.
func New(indexFile string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{indexFile: indexFile, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.HandleFunc("/", s.welcome)
	r.HandleFunc("/index.html", s.index)
	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.notFound)
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) welcome(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, http.StatusOK, welcomePage)
}

// index reads the file on every request so edits show up without a restart.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.indexFile)
	if err != nil {
		s.log.Error("could not read index file",
			"path", s.indexFile,
			"err", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "Server error")
		return
	}
	writeHTML(w, http.StatusOK, string(data))
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, http.StatusNotFound, notFoundPage)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	io.WriteString(w, body)
}
