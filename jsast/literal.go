package jsast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrInvalidEscape = errors.New("invalid escape sequence")

// UnquoteString cooks a quoted string literal, such as 'a\nb', into its value.
func UnquoteString(raw string) (string, error) {
	if len(raw) < 2 || (raw[0] != '\'' && raw[0] != '"') || raw[len(raw)-1] != raw[0] {
		return "", fmt.Errorf("%w: %s is not a quoted string", ErrInvalidEscape, raw)
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("%w: trailing backslash in %s", ErrInvalidEscape, raw)
		}

		switch e := body[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\r':
			// line continuation, \r\n counts as one
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("%w: short \\x escape in %s", ErrInvalidEscape, raw)
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("%w: %s", ErrInvalidEscape, body[i-1:i+3])
			}
			sb.WriteRune(rune(v))
			i += 2
		case 'u':
			r, width, err := readUnicodeEscape(body[i+1:])
			if err != nil {
				return "", fmt.Errorf("%w in %s", err, raw)
			}
			sb.WriteRune(r)
			i += width
		default:
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}

// readUnicodeEscape reads the part after \u, either XXXX or {X...}.
func readUnicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, fmt.Errorf("%w: \\u%s", ErrInvalidEscape, s)
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, fmt.Errorf("%w: \\u%s", ErrInvalidEscape, s[:end+1])
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("%w: short \\u escape", ErrInvalidEscape)
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: \\u%s", ErrInvalidEscape, s[:4])
	}
	return rune(v), 4, nil
}

// QuoteString renders value as a string literal using quote (' or ").
func QuoteString(value string, quote byte) string {
	if quote != '"' {
		quote = '\''
	}

	var sb strings.Builder
	sb.Grow(len(value) + 2)
	sb.WriteByte(quote)
	for _, r := range value {
		switch r {
		case rune(quote):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}
