package flatpak

import (
	"encoding/json"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// DataURL embeds payload in a data: URI. Every byte except ASCII letters,
// digits, '_', '.', '-', '~' and '/' is percent-encoded.
func DataURL(payload []byte) string {
	var b strings.Builder
	b.Grow(len("data:") + 3*len(payload))
	b.WriteString("data:")
	for _, c := range payload {
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// JSONDataURL marshals v and embeds it with [DataURL].
func JSONDataURL(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return DataURL(data), nil
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~', c == '/':
		return true
	}
	return false
}
