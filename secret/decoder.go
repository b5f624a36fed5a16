package secret

import "encoding/base64"

// Decoder is one candidate strategy for turning a cleaned base64 value into
// bytes. Strategies are tried in order; the first success wins.
//
// This replaces the original scripts' fallback between `base64 -d` and
// `base64 -D`: divergent encodings in the wild (padded vs. unpadded,
// standard vs. URL-safe alphabet) are modeled as an ordered strategy list
// rather than two hardcoded subprocess invocations.
type Decoder interface {
	Name() string
	Decode(value string) ([]byte, error)
}

type encodingDecoder struct {
	name string
	enc  *base64.Encoding
}

func (d encodingDecoder) Name() string { return d.name }

func (d encodingDecoder) Decode(value string) ([]byte, error) {
	return d.enc.DecodeString(value)
}

// Strategies returns the default ordered decode strategies.
//
// Standard padded base64 is by far the common case and goes first; the
// remaining variants cover producers that omit padding or use the URL-safe
// alphabet.
func Strategies() []Decoder {
	return []Decoder{
		encodingDecoder{name: "base64", enc: base64.StdEncoding},
		encodingDecoder{name: "base64-raw", enc: base64.RawStdEncoding},
		encodingDecoder{name: "base64-url", enc: base64.URLEncoding},
		encodingDecoder{name: "base64-url-raw", enc: base64.RawURLEncoding},
	}
}
