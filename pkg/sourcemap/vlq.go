package sourcemap

import "fmt"

// Base-64 VLQ encoding as used by the Source Map v3 "mappings" field.
// Each base-64 digit carries 5 data bits plus a continuation bit; the
// least significant bit of the decoded value holds the sign.

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqBaseShift    = 5
	vlqBase         = 1 << vlqBaseShift
	vlqBaseMask     = vlqBase - 1
	vlqContinuation = vlqBase
)

// base64Reverse maps an ASCII byte to its base-64 digit, or -1.
var base64Reverse = func() [128]int8 {
	var rev [128]int8
	for i := range rev {
		rev[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		rev[base64Alphabet[i]] = int8(i)
	}
	return rev
}()

// appendVLQ appends the VLQ encoding of value to dst.
func appendVLQ(dst []byte, value int) []byte {
	v := value << 1
	if value < 0 {
		v = (-value << 1) | 1
	}
	for {
		digit := v & vlqBaseMask
		v >>= vlqBaseShift
		if v > 0 {
			digit |= vlqContinuation
		}
		dst = append(dst, base64Alphabet[digit])
		if v == 0 {
			return dst
		}
	}
}

// decodeVLQ decodes a single VLQ value from the start of s, returning the
// value and the number of bytes consumed.
func decodeVLQ(s string) (value, n int, err error) {
	result := 0
	shift := uint(0)

	for n < len(s) {
		c := s[n]
		if c >= 128 || base64Reverse[c] < 0 {
			return 0, 0, fmt.Errorf("%w: invalid base64 digit %q", ErrBadMappings, c)
		}
		digit := int(base64Reverse[c])
		n++

		result |= (digit & vlqBaseMask) << shift
		if digit&vlqContinuation == 0 {
			negative := result&1 == 1
			result >>= 1
			if negative {
				result = -result
			}
			return result, n, nil
		}
		shift += vlqBaseShift
	}

	return 0, 0, fmt.Errorf("%w: truncated VLQ sequence", ErrBadMappings)
}
