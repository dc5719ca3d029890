package csrfhttp

import (
	"context"
	"html/template"

	"github.com/yndnr/formseal-go/pkg/csrf"
)

// TemplateField returns the hidden input fields for the request behind
// the Protect middleware, ready for interpolation into an HTML form.
// Outside the middleware it returns the empty string.
//
// The markup is trusted: field names are validated at guard
// construction and the values are hex and decimal digits.
func TemplateField(ctx context.Context) template.HTML {
	iss, ok := issuerFrom(ctx)
	if !ok {
		return ""
	}
	return template.HTML(iss.guard.Render(iss.req))
}

// IssuedToken mints a token for the request behind the Protect
// middleware, for callers that deliver the token out of band (JSON
// clients, custom templates). The second return is false outside the
// middleware.
func IssuedToken(ctx context.Context) (csrf.Token, bool) {
	iss, ok := issuerFrom(ctx)
	if !ok {
		return csrf.Token{}, false
	}
	return iss.guard.Issue(iss.req), true
}

// FieldNames reports the form field names the guard behind the Protect
// middleware expects, for clients that assemble requests by hand. The
// third return is false outside the middleware.
func FieldNames(ctx context.Context) (tokenField, timeField string, ok bool) {
	iss, ok := issuerFrom(ctx)
	if !ok {
		return "", "", false
	}
	return iss.guard.TokenField(), iss.guard.TimeField(), true
}
