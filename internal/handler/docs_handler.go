package handler

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"gopkg.in/yaml.v3"
)

type DocsHandler struct {
	spec     []byte
	specJSON []byte
	title    string
}

// NewDocsHandler parses the OpenAPI document once so /openapi.json can be
// served without converting on every request.
func NewDocsHandler(spec []byte, title string) (*DocsHandler, error) {
	var doc any
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi spec: %w", err)
	}

	specJSON, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("encode openapi spec: %w", err)
	}

	return &DocsHandler{spec: spec, specJSON: specJSON, title: title}, nil
}

func (h *DocsHandler) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.spec)
}

func (h *DocsHandler) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.specJSON)
}

var swaggerPage = template.Must(template.New("swagger").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>{{.}} API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>body{margin:0;background:#fafafa;}#swagger-ui{max-width:1200px;margin:0 auto;}</style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.json',
        dom_id: '#swagger-ui',
        deepLinking: true,
        displayRequestDuration: true,
        persistAuthorization: true
      });
    </script>
  </body>
</html>`))

func (h *DocsHandler) SwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'; connect-src 'self' https://unpkg.com; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data: https://validator.swagger.io")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = swaggerPage.Execute(w, h.title)
}

// normalizeYAML rewrites map[any]any nodes, which encoding/json rejects, into
// map[string]any.
func normalizeYAML(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			v[key] = normalizeYAML(value)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = normalizeYAML(value)
		}
		return out
	case []any:
		for i, value := range v {
			v[i] = normalizeYAML(value)
		}
		return v
	default:
		return v
	}
}
