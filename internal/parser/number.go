package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/templexxx/xhex"
)

// DecodeHex decodes a hex string with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid length for hex: %d", len(s))
	}
	buf := make([]byte, len(s)/2)
	if err := xhex.Decode(buf, []byte(s)); err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return buf, nil
}

// EncodeHex returns the lower-case hex encoding of b.
func EncodeHex(b []byte) string {
	dst := make([]byte, len(b)*2)
	xhex.Encode(dst, b)
	return string(dst)
}

// parseInt parses an integer from a JSON or CSV value.
//
// Strings with a 0x prefix or any hex letter are read as hex, other strings
// as decimal.  JSON numbers must have been decoded with UseNumber so that
// large values keep their precision.
func parseInt(val any) (*bn.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") ||
			strings.ContainsAny(s, "abcdefABCDEF") {
			buf, err := DecodeHex(evenHex(s))
			if err != nil {
				return nil, err
			}
			return bn.FromBuffer(buf, bn.BigEndian), nil
		}
		x, err := bn.FromString(s, 10)
		if err != nil {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return x, nil

	case json.Number:
		x, err := bn.FromString(string(v), 10)
		if err != nil {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return x, nil

	case int64:
		return bn.FromInt64(v), nil

	case int:
		return bn.FromInt64(int64(v)), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}

// evenHex left-pads odd-length hex digits with a zero.
func evenHex(s string) string {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(digits)%2 == 1 {
		return "0" + digits
	}
	return digits
}
