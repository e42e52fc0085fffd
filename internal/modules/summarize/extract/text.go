package extract

import (
	"net/http"
	"strings"
)

// Text validates pasted text. Whitespace-only input counts as empty.
func Text(raw string) (string, *Error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", newError(CodeEmptyInput, http.StatusBadRequest, "Text is required.", nil)
	}
	return text, nil
}
