// Package handler provides HTTP request handlers for FormSeal.
package handler

import (
	"net/http"

	"github.com/yndnr/formseal-go/pkg/csrfhttp"
)

// handleToken handles GET /token, issuing a token for clients that
// deliver it out of band instead of through the form page.
//
// @design DS-0301
func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	tok, ok := csrfhttp.IssuedToken(r.Context())
	if !ok {
		// The route is mounted behind the guard middleware; reaching
		// this branch means the wiring is broken.
		h.writeError(w, r, http.StatusInternalServerError, "FS-SYS-5000", "token issuance unavailable", nil)
		return
	}
	tokenField, timeField, _ := csrfhttp.FieldNames(r.Context())

	if h.metrics != nil {
		h.metrics.RecordTokenIssued()
	}

	h.writeJSON(w, r, http.StatusOK, TokenResponse{
		Token:      tok.Value,
		Time:       tok.Time,
		TokenField: tokenField,
		TimeField:  timeField,
	})
}
