// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/ctxutil"
	"github.com/mm--/fatcat/internal/platform/sec"
	"github.com/mm--/fatcat/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Editor extracts the acting editor claims from the request context.

Returns nil if no identity was resolved for the request.
*/
func Editor(request *http.Request) *sec.EditorClaims {
	return ctxutil.GetEditor(request.Context())
}

/*
RequiredEditor ensures the request carries an editor identity and returns it.

Returns:
  - *sec.EditorClaims: The acting editor claims
  - error: apperr.Unauthorized when no identity was resolved
*/
func RequiredEditor(request *http.Request) (*sec.EditorClaims, error) {

	// Get editor claims
	claims := ctxutil.GetEditor(request.Context())

	// Identity middleware always injects claims; a nil here means the
	// route was mounted outside the chain.
	if claims == nil {
		return nil, apperr.Unauthorized("Editor identity required")
	}

	return claims, nil
}
