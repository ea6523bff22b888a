// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "MX"

// channelPrefixes are transport prefixes the messaging provider attaches to
// the sender field, e.g. "whatsapp:+5215512345678".
var channelPrefixes = []string{"whatsapp:", "tel:", "sms:"}

// NormalizeSender turns a raw webhook sender field into the canonical
// identity key: channel prefix stripped, formatted to E.164 when the number
// parses, otherwise the trimmed input.
func NormalizeSender(input string) string {
	trimmed := strings.TrimSpace(input)
	lowered := strings.ToLower(trimmed)
	for _, prefix := range channelPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			trimmed = strings.TrimSpace(trimmed[len(prefix):])
			break
		}
	}

	return NormalizeE164(trimmed)
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
