// Package web serves the HTML pages next to the browser terminal: the
// embedded docs and a live preview of one date in every locale.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"datewheel/internal/debuglog"
	"datewheel/internal/docs"
	"datewheel/internal/locale"
	"datewheel/internal/picker"

	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html
var assetsFS embed.FS

type Config struct {
	// Locale is highlighted in the preview table.
	Locale string
	Now    func() time.Time
	Logger *slog.Logger
}

type Pages struct {
	cfg  Config
	tmpl *template.Template
	log  *slog.Logger
}

func New(cfg Config) (*Pages, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
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
	return &Pages{cfg: cfg, tmpl: tmpl, log: log.With("component", "web")}, nil
}

// Register adds the page routes to mux.
func (p *Pages) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /docs", p.handleDocsIndex)
	mux.HandleFunc("GET /docs/{topic}", p.handleDoc)
	mux.HandleFunc("GET /preview", p.handlePreview)
	mux.HandleFunc("GET /preview/rows", p.handlePreviewRows)
}

type docsVM struct {
	Topics []docs.Topic
	Topic  string
	Body   template.HTML
}

func (p *Pages) handleDocsIndex(w http.ResponseWriter, r *http.Request) {
	p.writeHTMLTemplate(w, "docs.html", docsVM{Topics: docs.Topics()})
}

func (p *Pages) handleDoc(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")
	body, ok := docs.Get(topic)
	if !ok {
		http.NotFound(w, r)
		return
	}
	p.writeHTMLTemplate(w, "docs.html", docsVM{
		Topics: docs.Topics(),
		Topic:  strings.ToLower(strings.TrimSpace(topic)),
		Body:   renderMarkdownHTML(body),
	})
}

type previewRow struct {
	Code      string
	Name      string
	Formatted string
	YearMonth string
	Current   bool
}

type previewVM struct {
	Date  string
	Error string
	Rows  []previewRow
}

func (p *Pages) previewRows(d picker.Date) []previewRow {
	codes := locale.Codes()
	rows := make([]previewRow, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, previewRow{
			Code:      c,
			Name:      locale.DisplayName(c),
			Formatted: locale.FormatYMD(d.Year, d.Month, d.Day, c),
			YearMonth: locale.FormatYearMonth(d.Year, d.Month, c),
			Current:   c == p.cfg.Locale,
		})
	}
	return rows
}

// previewModel parses raw (YYYY-MM-DD); empty means today. On a parse
// error the table keeps showing today.
func (p *Pages) previewModel(raw string) previewVM {
	today := picker.DateOf(p.cfg.Now())
	vm := previewVM{Date: today.String()}
	d := today
	if raw = strings.TrimSpace(raw); raw != "" {
		parsed, err := picker.ParseDate(raw)
		if err != nil {
			vm.Error = err.Error()
		} else {
			d = parsed
			vm.Date = d.String()
		}
	}
	vm.Rows = p.previewRows(d)
	return vm
}

func (p *Pages) handlePreview(w http.ResponseWriter, r *http.Request) {
	p.writeHTMLTemplate(w, "preview.html", p.previewModel(r.URL.Query().Get("date")))
}

type previewSignals struct {
	Date string `json:"date"`
}

// handlePreviewRows answers datastar requests by patching the table body.
func (p *Pages) handlePreviewRows(w http.ResponseWriter, r *http.Request) {
	var sig previewSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		p.log.Debug("preview signals", "err", err)
	}
	vm := p.previewModel(sig.Date)

	var b bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&b, "preview_rows", vm); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElements(b.String(), datastar.WithSelector("#preview-rows"), datastar.WithMode(datastar.ElementPatchModeInner))
	_ = sse.MarshalAndPatchSignals(map[string]any{"error": vm.Error})
}

func (p *Pages) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	var b bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		p.log.Error("render page", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(b.Bytes())
}
