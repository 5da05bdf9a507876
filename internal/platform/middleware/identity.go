// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the catalog API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, Identity, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/ctxkey"
	"github.com/mm--/fatcat/internal/platform/respond"
	"github.com/mm--/fatcat/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token
// service implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.EditorClaims, error)
}

// Identity resolves the acting editor for every request.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, the request is attributed to the configured default editor.
//  3. If present, parse and verify the JWT via [TokenVerifier]; a missing
//     verifier (no AUTH_SECRET configured) rejects any presented token.
//  4. Inject [*sec.EditorClaims] into the request context for downstream use.
//
// Credential issuance is out of scope for this service; the default-editor
// fallback is what keeps unauthenticated deployments usable while the
// verification path stays wired for production.
func Identity(verifier TokenVerifier, defaultEditor *sec.EditorClaims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				ctx := context.WithValue(request.Context(), ctxkey.KeyEditor, defaultEditor)
				next.ServeHTTP(writer, request.WithContext(ctx))
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			if verifier == nil {
				respond.Error(writer, request, apperr.Unauthorized("Token authentication is not enabled"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyEditor, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin blocks requests whose editor claims lack the admin flag.
//
// # Usage
//
// Must be registered in the router AFTER [Identity].
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := GetEditor(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Editor identity required"))
			return
		}
		if !claims.IsAdmin {
			respond.Error(writer, request, apperr.Forbidden("Admin privileges required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetEditor retrieves the [*sec.EditorClaims] from the [context.Context].
//
// # Returns
//   - A pointer to [*sec.EditorClaims] when an identity was resolved.
//   - nil when the middleware did not run.
func GetEditor(ctx context.Context) *sec.EditorClaims {
	claims, ok := ctx.Value(ctxkey.KeyEditor).(*sec.EditorClaims)
	if !ok {
		return nil
	}
	return claims
}
