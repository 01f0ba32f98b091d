// Package normalizer turns messy release filenames into the bracketed tag
// convention used for renamed torrents, e.g.
//
//	"Serie [HDTV][Cap.101][Castellano][Subs]" -> "Serie [HDTV][480p][Cap 101][Esp]"
package normalizer

import (
	"path/filepath"
	"regexp"
	"strings"
)

// LanguageTag marks the end of a canonical name. Anything after it is
// subtitle or alternate audio noise.
const LanguageTag = "[Esp]"

// Pre-compiled regexes
var (
	leadingParenRegex *regexp.Regexp
	parenGroupRegex   *regexp.Regexp
	digitsOnlyRegex   *regexp.Regexp
)

func init() {
	leadingParenRegex = regexp.MustCompile(`^\(([^)]*)\)`)
	parenGroupRegex = regexp.MustCompile(`\([^)]*\)`)
	digitsOnlyRegex = regexp.MustCompile(`^\(\d+\)$`)
}

// Normalize returns the canonical form of a raw filename (extension already
// removed). It never fails.
func Normalize(raw string) string {
	name := ApplyRules(raw, Rules)
	name = strings.TrimSpace(name)
	name = unwrapLeadingParens(name)
	name = removeParentheticals(name)
	name = collapseWhitespace(name)
	name = trimOpenBracket(name)
	name = strings.TrimLeft(name, ". ")
	return truncateAtLanguageTag(name)
}

// StripExt removes the final extension from a filename
func StripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// unwrapLeadingParens keeps the contents of a group that opens the name:
// "(Serie) Temporada 1" -> "Serie Temporada 1"
func unwrapLeadingParens(s string) string {
	return leadingParenRegex.ReplaceAllString(s, "$1")
}

// removeParentheticals drops commentary like "(Version Extendida)" but keeps
// a bare number such as a year: "(2019)".
func removeParentheticals(s string) string {
	return parenGroupRegex.ReplaceAllStringFunc(s, func(group string) string {
		if digitsOnlyRegex.MatchString(group) {
			return group
		}
		return ""
	})
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// trimOpenBracket drops a dangling "[" left after the last tag
func trimOpenBracket(s string) string {
	if strings.HasSuffix(s, "][") {
		return s[:len(s)-1]
	}
	return s
}

func truncateAtLanguageTag(s string) string {
	if idx := strings.Index(s, LanguageTag); idx != -1 {
		return s[:idx+len(LanguageTag)]
	}
	return s
}
