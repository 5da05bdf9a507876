// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fcid_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm--/fatcat/pkg/fcid"
)

var encodedForm = regexp.MustCompile(`^[a-z2-7]{26}$`)

/*
TestRoundTrip checks that encoding followed by decoding is identity for
arbitrary 128-bit values and that the rendered form is 26 lowercase
base32 characters.
*/
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"zero", "00000000-0000-0000-0000-000000000000"},
		{"sparse_middle_bits", "00000000-0000-0000-aaaa-000000000001"},
		{"all_bits_set", "ffffffff-ffff-ffff-ffff-ffffffffffff"},
		{"arbitrary", "86daea5b-1b6b-432a-bb67-ea97795f80fe"},
		{"arbitrary_2", "0197beed-28b4-75f1-b23a-3c65831b6a5f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.MustParse(tt.id)

			encoded := fcid.FromUUID(id)
			assert.Len(t, encoded, fcid.Length)
			assert.Regexp(t, encodedForm, encoded)

			decoded, err := fcid.ToUUID(encoded)
			require.NoError(t, err)
			assert.Equal(t, id, decoded)
		})
	}
}

/*
TestKnownVectors pins the canonical renderings of two fixed UUIDs: the
reference vector for the codec, and the bootstrap editor row seeded by
the initial migration.
*/
func TestKnownVectors(t *testing.T) {
	reference := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaae", fcid.FromUUID(reference))

	decoded, err := fcid.ToUUID("aaaaaaaaaaaaaaaaaaaaaaaaae")
	require.NoError(t, err)
	assert.Equal(t, reference, decoded)

	bootstrap := uuid.MustParse("00000000-0000-0000-aaaa-000000000001")
	assert.Equal(t, "aaaaaaaaaaaabkvkaaaaaaaaae", fcid.FromUUID(bootstrap))

	decoded, err = fcid.ToUUID("aaaaaaaaaaaabkvkaaaaaaaaae")
	require.NoError(t, err)
	assert.Equal(t, bootstrap, decoded)
}

/*
TestDecodeCaseInsensitive verifies that decoding accepts uppercase and
mixed-case input while encoding always emits lowercase.
*/
func TestDecodeCaseInsensitive(t *testing.T) {
	id := uuid.MustParse("86daea5b-1b6b-432a-bb67-ea97795f80fe")
	lower := fcid.FromUUID(id)

	tests := []struct {
		name  string
		input string
	}{
		{"lowercase", lower},
		{"uppercase", strings.ToUpper(lower)},
		{"mixed_case", strings.ToUpper(lower[:13]) + lower[13:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := fcid.ToUUID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, id, decoded)
		})
	}
}

/*
TestDecodeRejectsMalformed covers the failure cases: any length other
than 26 and any character outside the RFC 4648 alphabet.
*/
func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too_short", "aaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"too_long", "aaaaaaaaaaaaaaaaaaaaaaaaaae"},
		{"digit_zero", "0aaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"digit_one", "1aaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"digit_eight", "8aaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"digit_nine", "9aaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"punctuation", "aaaaaaaaaaaa!aaaaaaaaaaaaa"},
		{"whitespace", "aaaaaaaaaaaaaaaaaaaaaaaaa "},
		{"plain_uuid", "86daea5b-1b6b-432a-bb67-ea97795f80fe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fcid.ToUUID(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, fcid.ErrInvalid)
			assert.False(t, fcid.IsValid(tt.input))
		})
	}
}
