// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

// # Controlled Vocabularies
//
// Membership checks are case-sensitive and exact; "BOOK" and "book " both
// fail. The sets are fixed at compile time.

// releaseTypes is the Citation Style Language type vocabulary plus the
// catalog-specific extensions peer_review, software and standard.
var releaseTypes = map[string]struct{}{
	"article":                {},
	"article-magazine":       {},
	"article-newspaper":      {},
	"article-journal":        {},
	"bill":                   {},
	"book":                   {},
	"broadcast":              {},
	"chapter":                {},
	"dataset":                {},
	"entry":                  {},
	"entry-dictionary":       {},
	"entry-encyclopedia":     {},
	"figure":                 {},
	"graphic":                {},
	"interview":              {},
	"legislation":            {},
	"legal_case":             {},
	"manuscript":             {},
	"map":                    {},
	"motion_picture":         {},
	"musical_score":          {},
	"pamphlet":               {},
	"paper-conference":       {},
	"patent":                 {},
	"post":                   {},
	"post-weblog":            {},
	"personal_communication": {},
	"report":                 {},
	"review":                 {},
	"review-book":            {},
	"song":                   {},
	"speech":                 {},
	"thesis":                 {},
	"treaty":                 {},
	"webpage":                {},

	// catalog extensions beyond CSL
	"peer_review": {},
	"software":    {},
	"standard":    {},
}

// contribRoles is the Citation Style Language contributor role vocabulary.
var contribRoles = map[string]struct{}{
	"author":             {},
	"collection-editor":  {},
	"composer":           {},
	"container-author":   {},
	"director":           {},
	"editor":             {},
	"editorial-director": {},
	"editortranslator":   {},
	"illustrator":        {},
	"interviewer":        {},
	"original-author":    {},
	"recipient":          {},
	"reviewed-author":    {},
	"translator":         {},
}
