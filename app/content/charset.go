package content

import (
	"fmt"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

func decodeWithEncoding(body []byte, charset string) ([]byte, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q body: %w", charset, err)
	}

	return decoded, nil
}
