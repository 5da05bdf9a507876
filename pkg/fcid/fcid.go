// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fcid converts between UUIDs and their public catalog rendering.

A catalog identifier ("fcid") is the RFC 4648 base32 encoding of a 128-bit
UUID, unpadded and always rendered lowercase: exactly 26 characters drawn
from [a-z2-7]. Decoding accepts either letter case; encoding never varies.

Identifiers are used for idents, editors and editgroups. Revision IDs stay
plain UUIDs on the wire and are not encoded by this package.
*/
package fcid

import (
	"encoding/base32"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Length is the exact size of an encoded identifier.
const Length = 26

// ErrInvalid reports a string that is not a well-formed identifier.
var ErrInvalid = errors.New("fcid: invalid identifier")

// codec is the unpadded RFC 4648 alphabet. Sixteen bytes encode to exactly
// 26 characters under it.
var codec = base32.StdEncoding.WithPadding(base32.NoPadding)

// # Encoding

// FromUUID renders a UUID as a 26-character lowercase identifier.
func FromUUID(id uuid.UUID) string {
	return strings.ToLower(codec.EncodeToString(id[:]))
}

// # Decoding

// ToUUID parses an identifier back into a UUID.
//
// Letter case is ignored. Any other deviation (wrong length, characters
// outside the base32 alphabet) fails with [ErrInvalid].
func ToUUID(value string) (uuid.UUID, error) {
	if len(value) != Length {
		return uuid.Nil, ErrInvalid
	}

	raw, err := codec.DecodeString(strings.ToUpper(value))
	if err != nil {
		return uuid.Nil, ErrInvalid
	}

	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, ErrInvalid
	}

	return id, nil
}

// IsValid reports whether value decodes as an identifier.
func IsValid(value string) bool {
	_, err := ToUUID(value)
	return err == nil
}
