// Package debugserver exposes read-only introspection over a registered
// Spec: a JSON dump at OpenAPIPath and a Stoplight Elements viewer at
// DocsPath, adapted from Talav-zorya's own docs/OpenAPI endpoints — this is
// the one ambient concern from the teacher's HTTP-framework surface that
// still has a natural home here, since a mock registry benefits from the
// same "what did I register" introspection a real API does.
package debugserver

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/autostub-go/autostub"
)

// Config configures the introspection endpoints. Unlike the teacher's
// Config, there is no SchemasPath or format negotiation: a mock registry
// only ever serves the one Spec it was built from, as JSON (Non-goal:
// non-JSON content types are out of scope).
type Config struct {
	OpenAPIPath string
	DocsPath    string
}

// DefaultConfig mirrors the teacher's DefaultConfig, narrowed to the two
// paths this package actually serves.
func DefaultConfig() *Config {
	return &Config{OpenAPIPath: "/openapi.json", DocsPath: "/docs"}
}

// Server serves introspection endpoints for one registered Spec.
type Server struct {
	config *Config
	spec   *autostub.Spec
	title  string
}

// New builds a Server. config may be nil to accept DefaultConfig.
func New(spec *autostub.Spec, title string, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	return &Server{config: config, spec: spec, title: title}
}

// Handler returns an http.Handler serving this Server's configured paths.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.config.OpenAPIPath != "" {
		mux.HandleFunc("GET "+s.config.OpenAPIPath, s.serveSpec)
	}
	if s.config.DocsPath != "" {
		mux.HandleFunc("GET "+s.config.DocsPath, s.serveDocs)
	}

	return mux
}

func (s *Server) serveSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s.spec)
}

func (s *Server) serveDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(generateDocsHTML(s.config.OpenAPIPath, s.title)))
}

// generateDocsHTML is Talav-zorya's Stoplight Elements page, unchanged
// beyond taking its two inputs as plain arguments instead of reading them
// off an *api.
func generateDocsHTML(openAPIPath, title string) string {
	escapedTitle := html.EscapeString(title)
	escapedPath := html.EscapeString(openAPIPath)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
	<link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
</head>
<body>
	<elements-api
		apiDescriptionUrl="%s"
		router="hash"
		layout="sidebar"
	/>
	<script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</body>
</html>`, escapedTitle, escapedPath)
}
