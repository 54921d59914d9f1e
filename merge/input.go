// SPDX-License-Identifier: EPL-2.0

package merge

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

type inputKind uint8

const (
	kindBytes inputKind = iota
	kindEncoded
	kindDetect
)

// Input is one clip as handed over by a caller: raw bytes or text in some
// encoding. It is resolved to bytes once, before any parsing.
type Input struct {
	kind inputKind
	raw  []byte
	text string
	enc  Encoding
}

func Bytes(b []byte) Input {
	return Input{kind: kindBytes, raw: b}
}

// Encoded is text in a known encoding.
func Encoded(s string, enc Encoding) Input {
	return Input{kind: kindEncoded, text: s, enc: enc}
}

func Base64(s string) Input { return Encoded(s, EncodingBase64) }
func Hex(s string) Input    { return Encoded(s, EncodingHex) }

// Detect is text whose encoding is guessed at resolve time: a data URL
// prefix is stripped, an even-length string of hex digits is hex, anything
// else is base64.
func Detect(s string) Input {
	return Input{kind: kindDetect, text: s}
}

// Resolve returns the clip bytes. Errors wrap ErrInvalidInput.
func (in Input) Resolve() ([]byte, error) {
	switch in.kind {
	case kindBytes:
		return in.raw, nil
	case kindEncoded:
		return decodeText(in.text, in.enc)
	default:
		text := stripDataURL(strings.TrimSpace(in.text))
		if looksHex(text) {
			return decodeText(text, EncodingHex)
		}
		return decodeText(text, EncodingBase64)
	}
}

func decodeText(s string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingBase64:
		return decodeBase64(s)
	case EncodingHex:
		b, err := hex.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: hex: %w", ErrInvalidInput, err)
		}
		return b, nil
	case EncodingBinary:
		return decodeLatin1(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

// decodeBase64 accepts standard and URL alphabets, with or without padding,
// and ignores embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	var lastErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: base64: %w", ErrInvalidInput, lastErr)
}

func decodeLatin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("%w: binary: rune %U out of range", ErrInvalidInput, r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

func encodeLatin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// stripDataURL drops a "data:<mime>;base64," prefix.
func stripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

func looksHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
