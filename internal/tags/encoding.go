package tags

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding is named.
const DefaultEncoding = "utf-8"

// encodingAliases maps common spellings that neither index knows.
var encodingAliases = map[string]string{
	"latin-1": "latin1",
	"utf8":    "utf-8",
	"utf_8":   "utf-8",
	"ascii":   "us-ascii",
}

// LookupEncoding resolves an encoding name. WHATWG labels are tried first,
// then IANA names. Decoders returned here replace invalid input with U+FFFD.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultEncoding
	}
	if alias, ok := encodingAliases[key]; ok {
		key = alias
	}
	if key == DefaultEncoding {
		return unicode.UTF8, nil
	}

	if enc, err := htmlindex.Get(key); err == nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(strings.ReplaceAll(key, "_", "-")); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}
