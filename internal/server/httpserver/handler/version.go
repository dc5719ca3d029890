// Package handler provides HTTP request handlers for FormSeal.
package handler

import (
	"net/http"

	"github.com/yndnr/formseal-go/internal/infra/buildinfo"
)

// handleVersion handles GET /version.
//
// @design DS-0301
func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, buildinfo.Get())
}
