// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/pkg/fcid"
)

// # External Identifier Validators
//
// Pure functions: they never touch the database and are deterministic for a
// given input. Patterns are compiled once at package init; per-call
// compilation is disallowed on the hot path. All matching is case-sensitive
// and anchored, so uppercase hex and trailing whitespace both fail.

var (
	doiRegex    = regexp.MustCompile(`^10\.\d{3,6}/.+$`)
	pmidRegex   = regexp.MustCompile(`^\d+$`)
	pmcidRegex  = regexp.MustCompile(`^PMC\d+$`)
	qidRegex    = regexp.MustCompile(`^Q\d+$`)
	issnRegex   = regexp.MustCompile(`^\d{4}-\d{3}[0-9X]$`)
	orcidRegex  = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	isbn13Regex = regexp.MustCompile(`^\d{3}-?\d{10}$`)
	md5Regex    = regexp.MustCompile(`^[a-f0-9]{32}$`)
	sha1Regex   = regexp.MustCompile(`^[a-f0-9]{40}$`)
	sha256Regex = regexp.MustCompile(`^[a-f0-9]{64}$`)
)

// CheckDOI validates a DOI ("10.1234/something").
func CheckDOI(raw string) error {
	if doiRegex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedExternalID(fmt.Sprintf("not a valid DOI: %q (expected, eg, '10.1234/aksjdfh')", raw))
}

// CheckPMID validates a PubMed ID (decimal digits).
func CheckPMID(raw string) error {
	if pmidRegex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedExternalID(fmt.Sprintf("not a valid PubMed ID (PMID): %q (expected, eg, '1234')", raw))
}

// CheckPMCID validates a PubMed Central ID ("PMC12345").
func CheckPMCID(raw string) error {
	if pmcidRegex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedExternalID(fmt.Sprintf("not a valid PubMed Central ID (PMCID): %q (expected, eg, 'PMC12345')", raw))
}

// CheckWikidataQID validates a Wikidata entity ID ("Q1234").
func CheckWikidataQID(raw string) error {
	if qidRegex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedExternalID(fmt.Sprintf("not a valid Wikidata QID: %q (expected, eg, 'Q1234')", raw))
}

// CheckISSN validates an ISSN-L ("1234-567X").
func CheckISSN(raw string) error {
	if issnRegex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedExternalID(fmt.Sprintf("not a valid ISSN: %q (expected, eg, '1234-5678')", raw))
}

// CheckORCID validates an ORCID ("0000-0002-1825-0097").
func CheckORCID(raw string) error {
	if orcidRegex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedExternalID(fmt.Sprintf("not a valid ORCID: %q (expected, eg, '0123-4567-3456-6789')", raw))
}

// CheckISBN13 validates an ISBN-13, with or without hyphenation between the
// prefix and the body ("978-3161484100" or "9783161484100").
//
// Unlike the other identifier checks this one verifies a check digit: the
// weighted modulo-10 sum over all thirteen digits must be zero.
func CheckISBN13(raw string) error {
	if !isbn13Regex.MatchString(raw) {
		return apperr.MalformedExternalID(fmt.Sprintf("not a valid ISBN-13: %q (expected, eg, '978-3161484100')", raw))
	}

	digits := strings.ReplaceAll(raw, "-", "")

	// Alternating weights 1,3,1,3,... over all 13 digits.
	sum := 0
	for position, digit := range digits {
		value := int(digit - '0')
		if position%2 == 1 {
			value *= 3
		}
		sum += value
	}
	if sum%10 != 0 {
		return apperr.MalformedChecksum(fmt.Sprintf("ISBN-13 check digit does not verify: %q", raw))
	}
	return nil
}

// CheckMD5 validates a lowercase hex MD5 digest.
func CheckMD5(raw string) error {
	if md5Regex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedChecksum(fmt.Sprintf("not a valid MD5: %q (expected lower-case hex, eg, '1b39813549077b2347c0f370c3864b40')", raw))
}

// CheckSHA1 validates a lowercase hex SHA-1 digest.
func CheckSHA1(raw string) error {
	if sha1Regex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedChecksum(fmt.Sprintf("not a valid SHA-1: %q (expected lower-case hex, eg, 'e9dd75237c94b209dc3ccd52722de6931a310ba3')", raw))
}

// CheckSHA256 validates a lowercase hex SHA-256 digest.
func CheckSHA256(raw string) error {
	if sha256Regex.MatchString(raw) {
		return nil
	}
	return apperr.MalformedChecksum(fmt.Sprintf("not a valid SHA-256: %q (expected lower-case hex, eg, 'cb1c378f464d5935ddaa8de28446d82638396c61f042295d7fb85e3cccc9e452')", raw))
}

// # Vocabulary Validators

// CheckReleaseType validates membership in the release_type vocabulary.
func CheckReleaseType(raw string) error {
	if _, ok := releaseTypes[raw]; ok {
		return nil
	}
	return apperr.NotInControlledVocabulary(fmt.Sprintf("not a valid release_type: %q (expected a CSL type, eg, 'article-journal', 'book')", raw))
}

// CheckContribRole validates membership in the contrib role vocabulary.
func CheckContribRole(raw string) error {
	if _, ok := contribRoles[raw]; ok {
		return nil
	}
	return apperr.NotInControlledVocabulary(fmt.Sprintf("not a valid contrib.role: %q (expected a CSL role, eg, 'author', 'editor')", raw))
}

// # Identifier Reference Checks

// checkIdent validates a referenced catalog identifier's syntax.
func checkIdent(value string) error {
	if fcid.IsValid(value) {
		return nil
	}
	return apperr.InvalidFatcatID(value)
}

// checkIdentList validates every referenced catalog identifier in a list.
func checkIdentList(values []string) error {
	for _, value := range values {
		if err := checkIdent(value); err != nil {
			return err
		}
	}
	return nil
}
