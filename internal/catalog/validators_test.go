// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm--/fatcat/internal/catalog"
	"github.com/mm--/fatcat/internal/platform/apperr"
)

/*
TestCheckDOI covers the DOI syntax rule: a "10." prefix, a 3-6 digit
registrant code and a non-empty suffix.
*/
func TestCheckDOI(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"journal_article", "10.1234/aksjdfh", true},
		{"long_registrant", "10.588392/xyz", true},
		{"unicode_suffix", "10.1234/%%%", true},
		{"empty", "", false},
		{"no_prefix", "1234/aksjdfh", false},
		{"registrant_too_short", "10.12/aksjdfh", false},
		{"registrant_too_long", "10.1234567/abc", false},
		{"missing_suffix", "10.1234/", false},
		{"bare_prefix", "10.1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.CheckDOI(tt.value)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				requireCode(t, err, "MALFORMED_EXTERNAL_ID")
			}
		})
	}
}

/*
TestCheckORCID verifies the four dash-separated groups with an optional
trailing X check character.
*/
func TestCheckORCID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"plain", "0123-4567-3456-6789", true},
		{"x_check_char", "0000-0002-1825-009X", true},
		{"lowercase_x", "0000-0002-1825-009x", false},
		{"no_dashes", "0123456734566789", false},
		{"too_short", "0123-4567-3456-678", false},
		{"letters", "0123-4567-3456-678a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.CheckORCID(tt.value)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				requireCode(t, err, "MALFORMED_EXTERNAL_ID")
			}
		})
	}
}

/*
TestCheckExternalIDs sweeps the remaining syntax-only identifier rules.
*/
func TestCheckExternalIDs(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		value   string
		isValid bool
	}{
		{"pmid_digits", catalog.CheckPMID, "1234", true},
		{"pmid_letters", catalog.CheckPMID, "PMC1234", false},
		{"pmid_empty", catalog.CheckPMID, "", false},
		{"pmcid_plain", catalog.CheckPMCID, "PMC12345", true},
		{"pmcid_lowercase", catalog.CheckPMCID, "pmc12345", false},
		{"pmcid_digits_only", catalog.CheckPMCID, "12345", false},
		{"qid_plain", catalog.CheckWikidataQID, "Q1234", true},
		{"qid_lowercase", catalog.CheckWikidataQID, "q1234", false},
		{"qid_property", catalog.CheckWikidataQID, "P1234", false},
		{"issn_plain", catalog.CheckISSN, "1234-5678", true},
		{"issn_x_check", catalog.CheckISSN, "2162-805X", true},
		{"issn_no_dash", catalog.CheckISSN, "12345678", false},
		{"issn_lowercase_x", catalog.CheckISSN, "2162-805x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.value)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				requireCode(t, err, "MALFORMED_EXTERNAL_ID")
			}
		})
	}
}

/*
TestCheckHashes verifies the lowercase hex digest rules for all three hash
columns: exact length, lowercase only.
*/
func TestCheckHashes(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		value   string
		isValid bool
	}{
		{"md5_valid", catalog.CheckMD5, "1b39813549077b2347c0f370c3864b40", true},
		{"md5_uppercase", catalog.CheckMD5, "1B39813549077B2347C0F370C3864B40", false},
		{"md5_short", catalog.CheckMD5, "1b39813549077b2347c0f370c3864b4", false},
		{"sha1_valid", catalog.CheckSHA1, "e9dd75237c94b209dc3ccd52722de6931a310ba3", true},
		{"sha1_md5_length", catalog.CheckSHA1, "1b39813549077b2347c0f370c3864b40", false},
		{"sha256_valid", catalog.CheckSHA256, "cb1c378f464d5935ddaa8de28446d82638396c61f042295d7fb85e3cccc9e452", true},
		{"sha256_nonhex", catalog.CheckSHA256, "zb1c378f464d5935ddaa8de28446d82638396c61f042295d7fb85e3cccc9e452", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.value)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				requireCode(t, err, "MALFORMED_CHECKSUM")
			}
		})
	}
}

/*
TestCheckISBN13 covers both the syntax rule and the weighted modulo-10
check digit, which the other identifier checks do not have.
*/
func TestCheckISBN13(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		isValid  bool
		wantCode string
	}{
		{"hyphenated", "978-3161484100", true, ""},
		{"plain", "9783161484100", true, ""},
		{"valid_979", "979-8886451740", true, ""},
		{"bad_check_digit", "978-3161484101", false, "MALFORMED_CHECKSUM"},
		{"too_short", "978-316148410", false, "MALFORMED_EXTERNAL_ID"},
		{"isbn10", "3-16-148410-X", false, "MALFORMED_EXTERNAL_ID"},
		{"fully_hyphenated", "978-3-16-148410-0", false, "MALFORMED_EXTERNAL_ID"},
		{"empty", "", false, "MALFORMED_EXTERNAL_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.CheckISBN13(tt.value)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				requireCode(t, err, tt.wantCode)
			}
		})
	}
}

/*
TestVocabularies checks membership of the release type and contrib role
controlled vocabularies.
*/
func TestVocabularies(t *testing.T) {
	t.Run("release_type", func(t *testing.T) {
		for _, value := range []string{"article-journal", "book", "dataset", "peer_review", "software", "standard", "webpage"} {
			assert.NoError(t, catalog.CheckReleaseType(value), value)
		}
		for _, value := range []string{"", "journal-article", "Article-Journal", "blog-post"} {
			requireCode(t, catalog.CheckReleaseType(value), "NOT_IN_CONTROLLED_VOCABULARY")
		}
	})

	t.Run("contrib_role", func(t *testing.T) {
		for _, value := range []string{"author", "editor", "translator", "illustrator"} {
			assert.NoError(t, catalog.CheckContribRole(value), value)
		}
		for _, value := range []string{"", "Author", "chair", "performer"} {
			requireCode(t, catalog.CheckContribRole(value), "NOT_IN_CONTROLLED_VOCABULARY")
		}
	})
}

// requireCode asserts that err is an AppError carrying the given code.
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, code, appError.Code)
}
