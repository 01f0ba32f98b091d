package normalizer

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "dot delimited with audio tags",
			input:    "Serie.S01E01.1080.Castellano.AAC 2 0.DDP5 1",
			expected: "Serie S01E01 [1080p]Esp [AAC 2.0][DDP 5.1]",
		},
		{
			name:     "HDTV chapter gets SD tag and subs are dropped",
			input:    "Serie [HDTV][Cap.101][Castellano][Subs]",
			expected: "Serie [HDTV][480p][Cap 101][Esp]",
		},
		{
			name:     "bluray with resolution keeps year",
			input:    "Pelicula (2019) (Version Extendida) [Bluray 1080p][Castellano]",
			expected: "Pelicula (2019) [Bluray][1080p][Esp]",
		},
		{
			name:     "bluray without resolution",
			input:    "Pelicula [Bluray][Castellano]",
			expected: "Pelicula [Bluray][480p][Esp]",
		},
		{
			name:     "leading parenthetical unwrapped",
			input:    "(Serie) Temporada 1",
			expected: "Serie Temporada 1",
		},
		{
			name:     "commentary removed, numbers kept",
			input:    "(Intro) Film (Comentario) (2020) (1)",
			expected: "Intro Film (2020) (1)",
		},
		{
			name:     "dangling bracket dropped",
			input:    "Serie [HDTV][",
			expected: "Serie [HDTV]",
		},
		{
			name:     "locale correction",
			input:    "Hace 10 anos despues",
			expected: "Hace 10 años despues",
		},
		{
			name:     "year and word typos",
			input:    "Serie.2032.Caap.5",
			expected: "Serie 2023 Cap 5",
		},
		{
			name:     "4K removed and web tags bracketed",
			input:    "Movie.4K.WEBDL.H 264",
			expected: "Movie [WEB-DL][H264]",
		},
		{
			name:     "dual audio and 720",
			input:    "Serie DUAL 720",
			expected: "Serie [Dual][720p]",
		},
		{
			name:     "OCR typo resolution",
			input:    "Film m1080p",
			expected: "Film [1080p]",
		},
		{
			name:     "leading separators stripped",
			input:    "  .Serie",
			expected: "Serie",
		},
		{
			name:     "everything after language tag dropped",
			input:    "Serie [Castellano][Dual][Subs]",
			expected: "Serie [Esp]",
		},
		{
			name:     "pp is removed wherever it appears",
			input:    "Happy",
			expected: "Hay",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotentOnCanonicalNames(t *testing.T) {
	canonical := []string{
		"Serie [HDTV][480p][Cap 101][Esp]",
		"Pelicula (2019) [Bluray][1080p][Esp]",
		"Pelicula [Bluray][480p][Esp]",
		"Movie [WEB-DL][H264]",
		"Serie [Dual][720p]",
		"Serie Temporada 1",
	}

	for _, name := range canonical {
		once := Normalize(name)
		twice := Normalize(once)
		if once != name {
			t.Errorf("Normalize(%q) = %q, expected canonical name unchanged", name, once)
		}
		if twice != once {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", name, once, twice)
		}
	}
}

var propertyInputs = []string{
	"Serie.S01E01.1080.Castellano.AAC 2 0.DDP5 1",
	"Serie [HDTV][Cap.101][Castellano][Subs]",
	"..Serie.Castellano",
	" . . Serie [Bluray][",
	"(Serie)[HDTV][",
	"[Castellano] Serie [HDTV]",
	"Serie [HDTC][Cap.203][Castellano][AC3 5.1]",
	"Serie  [Dual]\t[",
	"][",
	".",
	"(((",
	")))",
	"Castellano",
}

func TestNormalizeInvariants(t *testing.T) {
	for _, input := range propertyInputs {
		result := Normalize(input)

		if strings.HasPrefix(result, ".") || strings.HasPrefix(result, " ") {
			t.Errorf("Normalize(%q) = %q starts with separator", input, result)
		}
		if strings.HasSuffix(result, "][") {
			t.Errorf("Normalize(%q) = %q ends with ][", input, result)
		}
		if strings.Contains(result, LanguageTag) && !strings.HasSuffix(result, LanguageTag) {
			t.Errorf("Normalize(%q) = %q has content after %s", input, result, LanguageTag)
		}
	}
}

func TestNormalizeCastellanoBecomesEsp(t *testing.T) {
	for _, input := range propertyInputs {
		if !strings.Contains(input, "Castellano") {
			continue
		}
		result := Normalize(input)
		if strings.Contains(result, "Castellano") {
			t.Errorf("Normalize(%q) = %q still contains Castellano", input, result)
		}
		if !strings.Contains(result, "Esp") {
			t.Errorf("Normalize(%q) = %q missing Esp", input, result)
		}
	}
}

func TestRuleOrder(t *testing.T) {
	index := func(pattern string) int {
		for i, r := range Rules {
			if r.Pattern == pattern {
				return i
			}
		}
		t.Fatalf("rule %q not found", pattern)
		return -1
	}

	before := [][2]string{
		{".", "AAC 2 0"},
		{"4K", "2160"},
		{"m1080p", "1080"},
		{"Castellano", "[Bluray][Esp]"},
		{"HDTV", "[HDTV][Cap"},
		{"Bluray", "]]"},
		{"1080", "]p]"},
		{"[[", "[Bluray][Esp]"},
		{"pp", "[Bluray][Esp]"},
	}

	for _, pair := range before {
		if index(pair[0]) >= index(pair[1]) {
			t.Errorf("rule %q must run before %q", pair[0], pair[1])
		}
	}
}

func TestRuleApply(t *testing.T) {
	tests := []struct {
		rule     Rule
		input    string
		expected string
	}{
		{Rule{".", " "}, "a.b.c", "a b c"},
		{Rule{" anos ", " años "}, "10 anos y 2 anos ", "10 años y 2 años "},
		{Rule{" anos ", " años "}, "anos", "anos"},
		{Rule{"1080", "[1080p]"}, "1080p", "[1080p]p"},
		{Rule{"]p]", "]"}, "[[1080p]p]", "[[1080p]"},
		{Rule{"] ", "]"}, "[HDTV] [Esp] x", "[HDTV][Esp]x"},
		{Rule{"[HDTV][Cap", "[HDTV][480p][Cap"}, "[HDTV][Cap 1]", "[HDTV][480p][Cap 1]"},
	}

	for _, tt := range tests {
		result := tt.rule.Apply(tt.input)
		if result != tt.expected {
			t.Errorf("Rule{%q, %q}.Apply(%q) = %q, want %q",
				tt.rule.Pattern, tt.rule.Replacement, tt.input, result, tt.expected)
		}
	}
}

func TestApplyRulesSequential(t *testing.T) {
	rules := []Rule{{"a", "b"}, {"b", "c"}}
	if got := ApplyRules("a", rules); got != "c" {
		t.Errorf("later rules should see earlier output, got %q", got)
	}

	reversed := []Rule{{"b", "c"}, {"a", "b"}}
	if got := ApplyRules("a", reversed); got != "b" {
		t.Errorf("reordered rules got %q, want %q", got, "b")
	}
}

func TestStripExt(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Serie.S01E01.mkv", "Serie.S01E01"},
		{"movie.AVI", "movie"},
		{"noext", "noext"},
		{"archive.tar.gz", "archive.tar"},
	}

	for _, tt := range tests {
		if got := StripExt(tt.input); got != tt.expected {
			t.Errorf("StripExt(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
