// Package handler provides HTTP request handlers for FormSeal.
package handler

import (
	"html/template"
	"net/http"

	"github.com/yndnr/formseal-go/pkg/csrfhttp"
)

// formPage is the demo submission form. The hidden anti-forgery fields
// are injected per request by the guard middleware.
const formPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>FormSeal demo</title>
</head>
<body>
  <h1>Leave a message</h1>
  <form method="POST" action="/submit">
    {{.GuardFields}}
    <p><label>Name <input type="text" name="name"></label></p>
    <p><label>Message <textarea name="message"></textarea></label></p>
    <p><button type="submit">Send</button></p>
  </form>
</body>
</html>
`

var formTemplate = template.Must(template.New("form").Parse(formPage))

// handleFormPage handles GET /.
//
// @design DS-0301
func (h *Handler) handleFormPage(w http.ResponseWriter, r *http.Request) {
	fields := csrfhttp.TemplateField(r.Context())
	if fields != "" && h.metrics != nil {
		h.metrics.RecordTokenIssued()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, map[string]any{"GuardFields": fields}); err != nil {
		h.logger.Error("failed to render form page", "error", err)
	}
}

// handleSubmit handles POST /submit. The guard middleware has already
// validated the token and parsed the form body.
//
// @design DS-0301
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, SubmitResponse{
		Accepted: true,
		Name:     r.PostFormValue("name"),
		Message:  r.PostFormValue("message"),
	})
}
