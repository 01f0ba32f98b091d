package normalizer

import "strings"

// Rule is a literal substring replacement applied to every occurrence.
type Rule struct {
	Pattern     string
	Replacement string
}

// Apply replaces every occurrence of the rule's pattern in s
func (r Rule) Apply(s string) string {
	return strings.ReplaceAll(s, r.Pattern, r.Replacement)
}

// Rules is the ordered replacement table. Later rules see the output of
// earlier ones: tags are bracketed first, then the bracket cleanup rules
// repair the doubled or spaced brackets that bracketing produced.
var Rules = []Rule{
	// Delimiters
	{".", " "},

	// Resolution noise, site and uploader tags
	{"4k", ""},
	{"4K", ""},
	{"www atomohd care", ""},
	{"[Wolfmax4k com]", ""},
	{"[Wolfmax com]", ""},
	{"(wolfmax com]", ""},
	{"(wolfmax COM]", ""},
	{"[depechemode13]", ""},
	{"CartmanGold", ""},
	{"-Bryan_122", ""},
	{"yamil", ""},

	// Spelling fixes
	{" anos ", " años "},
	{" ano ", " año "},
	{"2032", "2023"},
	{"Caap", "Cap"},

	// Language
	{"Castellano", "Esp"},

	// Audio/distribution/codec tags
	{"DUAL", "[Dual]"},
	{"A3P", "[A3P]"},
	{"DSNP", "[DSNP]"},
	{"AVC", "[AVC]"},
	{"H 264", "[H264]"},
	{"AAC 2 0", "[AAC 2.0]"},
	{"DDP5 1", "[DDP 5.1]"},

	// Resolution, including OCR typos seen in the wild
	{"720", "[720p]"},
	{"m1080p", "[1080p]"},
	{"1080", "[1080p]"},
	{"2160", "[2160p]"},
	{"20160p", "[2160p]"},
	{"2106p", "[2160p]"},
	{"2016p", "[2160p]"},

	// Source
	{"HDTV", "[HDTV]"},
	{"[Blurayrip]", "[Bluray]"},
	{"Bluray", "[Bluray]"},
	{"BLuray", "[Bluray]"},
	{"[[Bluray]rip]", "[Bluray]"},
	{" rip[", " ["},
	{"WEB-DL", "[WEB-DL]"},
	{"WEBDL", "[WEB-DL]"},

	// Bracket cleanup
	{"]p]", "]"},
	{"] [", "]["},
	{"[ ", "["},
	{"] ", "]"},
	{"[[", "["},
	{"]]", "]"},
	{"pp", ""},

	// Releases without a resolution tag are SD
	{"[Bluray][Esp]", "[Bluray][480p][Esp]"},
	{"[HDTV][Cap", "[HDTV][480p][Cap"},
	{"[HDTC][Cap", "[HDTC][480p][Cap"},
}

// ApplyRules runs every rule of the table over s in order
func ApplyRules(s string, rules []Rule) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}
