// Package webtui serves the interactive picker host in a browser: each
// WebSocket session runs the datewheel TUI in a server-side PTY.
package webtui

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"datewheel/internal/debuglog"
	"datewheel/internal/locale"
	"datewheel/internal/web"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

type ServerConfig struct {
	Addr string
	// Locale is the default for sessions that do not pick one.
	Locale     string
	ConfigPath string
	// Command overrides the spawned argv (default: this executable).
	Command []string
	Logger  *slog.Logger
}

type Server struct {
	cfg   ServerConfig
	tmpl  *template.Template
	pages *web.Pages
	log   *slog.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	if !locale.Known(cfg.Locale) {
		cfg.Locale = locale.Base
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = debuglog.Discard()
	}
	pages, err := web.New(web.Config{Locale: cfg.Locale, Logger: log})
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, tmpl: tmpl, pages: pages, log: log.With("component", "webtui")}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/terminal", http.StatusFound)
	})
	mux.HandleFunc("GET /terminal", s.handleTerminal)
	mux.HandleFunc("GET /ws", s.handleWS)
	s.pages.Register(mux)

	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/app.js", s.handleStatic("static/app.js", "text/javascript; charset=utf-8"))

	return mux
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

type localeOption struct {
	Code     string
	Name     string
	Selected bool
}

type terminalVM struct {
	Locale  string
	Title   string
	Locales []localeOption
}

// sessionLocale is the ?locale= value when it is a registry key, else the
// server default.
func (s *Server) sessionLocale(r *http.Request) string {
	if code := strings.TrimSpace(r.URL.Query().Get("locale")); locale.Known(code) {
		return code
	}
	return s.cfg.Locale
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	current := s.sessionLocale(r)
	vm := terminalVM{
		Locale: current,
		Title:  locale.DialogStrings(current).Title,
	}
	for _, c := range locale.Codes() {
		vm.Locales = append(vm.Locales, localeOption{
			Code:     c,
			Name:     locale.DisplayName(c),
			Selected: c == current,
		})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "terminal.html", vm); err != nil {
		s.log.Error("render terminal page", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
