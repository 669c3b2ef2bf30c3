package document

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// extractText decodes the file as UTF-8 and falls back to GBK when the bytes are not valid UTF-8.
// The GBK decoder substitutes U+FFFD for bytes it cannot map, so any replacement character
// in its output means the file is neither encoding.
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return strings.TrimSpace(string(data)), nil
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUndecodable, path, err)
	}
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("%w: %s", ErrUndecodable, path)
	}

	return strings.TrimSpace(string(decoded)), nil
}
