// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token management for the editing boundary.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT signing and
// verification) from the domain logic. Credential issuance lives outside
// this service; the API only needs to verify that a presented token was
// signed with the shared secret and to read the editor identity from it.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EditorClaims represents the payload embedded inside an editor bearer token.
//
// # Why custom claims?
//
// By embedding the editor identifier and admin flag directly inside the JWT,
// the identity middleware can attribute edits WITHOUT querying the database
// on every single API request.
type EditorClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	EditorID string `json:"eid"`
	Username string `json:"unm"`
	IsAdmin  bool   `json:"adm"`
}

// TokenService handles generation and verification of editor tokens using
// HS256 with a shared secret.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService around the shared secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: empty signing secret")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateToken creates a signed bearer token for an editor. Used by
// operational tooling and tests; the API itself only verifies.
func (service *TokenService) GenerateToken(editorID, username string, isAdmin bool, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := EditorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   editorID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		EditorID: editorID,
		Username: username,
		IsAdmin:  isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*EditorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EditorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*EditorClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	return claims, nil
}
