package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// yearPattern matches a plausible 4-digit calendar year anywhere in the text.
var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// amountStrip removes everything that is not a digit, dot or comma.
var amountStrip = regexp.MustCompile(`[^\d.,]`)

var affirmatives = map[string]bool{
	"si": true, "sí": true, "sip": true, "claro": true, "ok": true,
	"okay": true, "va": true, "vale": true, "dale": true, "acepto": true,
	"de acuerdo": true, "por supuesto": true, "yes": true, "sure": true,
	"agreed": true,
}

var negatives = map[string]bool{
	"no": true, "nel": true, "nop": true, "nope": true, "para nada": true,
	"no acepto": true, "negativo": true,
}

// Answer is the result of classifying a free-text yes/no reply.
type Answer int

const (
	// AnswerUnknown means the text is neither clearly affirmative nor
	// negative and the question must be re-asked.
	AnswerUnknown Answer = iota
	AnswerYes
	AnswerNo
)

// ParseAmount canonicalizes free text into a positive monetary amount.
// Currency symbols and stray characters are stripped; thousands separators
// are tolerated in either convention ("150,000" and "150.000" both parse).
func ParseAmount(raw string) (float64, bool) {
	cleaned := amountStrip.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}

	// When both separators appear, the last one is the decimal point.
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// A single comma followed by exactly two digits reads as decimals;
		// anything else reads as a thousands separator.
		if len(cleaned)-lastComma-1 == 2 && strings.Count(cleaned, ",") == 1 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastDot >= 0:
		// Three digits after a dot reads as "150.000" style grouping.
		if len(cleaned)-lastDot-1 == 3 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value <= 0 {
		return 0, false
	}
	return value, true
}

// ParseYear extracts the first plausible 4-digit calendar year from the text.
func ParseYear(raw string) (int, bool) {
	match := yearPattern.FindString(raw)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// MatchChoice resolves free text against a fixed catalog, case-insensitively.
// The 1-based menu ordinal is accepted as well. First match wins.
func MatchChoice(raw string, catalog []string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return "", false
	}

	if ordinal, err := strconv.Atoi(text); err == nil {
		if ordinal >= 1 && ordinal <= len(catalog) {
			return catalog[ordinal-1], true
		}
		return "", false
	}

	for _, entry := range catalog {
		if strings.ToLower(entry) == text {
			return entry, true
		}
	}
	return "", false
}

// ValidName accepts text with at least two whitespace-separated tokens,
// each at least two runes long.
func ValidName(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 {
		return "", false
	}
	for _, token := range tokens {
		if len([]rune(token)) < 2 {
			return "", false
		}
	}
	return strings.Join(tokens, " "), true
}

// ValidLocation accepts text of at least three runes containing at least one
// token of length four or more with a letter in it.
func ValidLocation(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if len([]rune(trimmed)) < 3 {
		return "", false
	}
	for _, token := range strings.Fields(trimmed) {
		if len([]rune(token)) < 4 {
			continue
		}
		for _, r := range token {
			if unicode.IsLetter(r) {
				return trimmed, true
			}
		}
	}
	return "", false
}

// ClassifyYesNo classifies a free-text reply against fixed keyword sets.
// Ambiguous text returns AnswerUnknown and must be re-asked.
func ClassifyYesNo(raw string) Answer {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = strings.TrimRight(text, ".!¡¿?")
	if affirmatives[text] {
		return AnswerYes
	}
	if negatives[text] {
		return AnswerNo
	}
	return AnswerUnknown
}
