package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field", "min" or "max"); placeholders are written as {key}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{}

var messages = map[string]string{
	"invalid_type":    "{field} must be a number",
	"required":        "{field} is a required field",
	"too_small":       "{field} must be greater than or equal to {min}",
	"too_big":         "{field} must be less than or equal to {max}",
	"not_positive":    "{field} must be a positive number",
	"pattern":         "{field} has an invalid format",
	"unknown_key":     "unknown key",
	"unknown_service": "{name} is not offered for {category}",
	"parse_error":     "parse error",
}

func (dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := messages[code]
	if !ok {
		return code
	}
	return Expand(tmpl, data)
}

// Expand replaces {key} placeholders in tmpl with values from data. Unknown
// placeholders are left as-is.
func Expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{}
)

// SetTranslator replaces the process-wide Translator; nil restores the
// built-in dictionary.
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// Current returns the process-wide Translator.
func Current() Translator {
	mu.RLock()
	defer mu.RUnlock()
	return currentTranslator
}
