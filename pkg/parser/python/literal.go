package python

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	maxStringRunes  = 20
	keepStringRunes = 17
)

// stringLiteral renders a string as its double-quoted value, cut to 17 runes
// plus "..." when longer than 20. f-strings show as "JoinedStr".
func (p printer) stringLiteral(n *sitter.Node) string {
	prefix, body := splitString(p.text(n))
	switch {
	case strings.ContainsAny(prefix, "fF") || hasChild(n, "interpolation"):
		return "JoinedStr"
	case strings.ContainsAny(prefix, "bB"):
		return "b'" + body + "'"
	}
	if !strings.ContainsAny(prefix, "rR") {
		body = unescape(body)
	}
	return quote(body)
}

// concatenated renders implicitly joined literals like "a" "b" as one value.
func (p printer) concatenated(n *sitter.Node) string {
	var (
		sb    strings.Builder
		bytes bool
	)
	for _, part := range namedChildren(n) {
		prefix, body := splitString(p.text(part))
		if strings.ContainsAny(prefix, "fF") || hasChild(part, "interpolation") {
			return "JoinedStr"
		}
		if strings.ContainsAny(prefix, "bB") {
			bytes = true
		} else if !strings.ContainsAny(prefix, "rR") {
			body = unescape(body)
		}
		sb.WriteString(body)
	}
	if bytes {
		return "b'" + sb.String() + "'"
	}
	return quote(sb.String())
}

func quote(s string) string {
	if utf8.RuneCountInString(s) > maxStringRunes {
		s = string([]rune(s)[:keepStringRunes]) + "..."
	}
	return `"` + s + `"`
}

// splitString separates the prefix letters of a literal from the text
// between its quotes.
func splitString(raw string) (prefix, body string) {
	i := strings.IndexAny(raw, `"'`)
	if i < 0 {
		return "", raw
	}
	prefix, rest := raw[:i], raw[i:]
	q := 1
	if strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, `'''`) {
		q = 3
	}
	if len(rest) < 2*q {
		return prefix, ""
	}
	return prefix, rest[q : len(rest)-q]
}

var simpleEscapes = map[byte]string{
	'\\': `\`,
	'\'': `'`,
	'"':  `"`,
	'n':  "\n",
	't':  "\t",
	'r':  "\r",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'v':  "\v",
	'\n': "",
}

// unescape decodes backslash escapes. Unknown escapes and \N{...} are kept
// verbatim.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		c := s[i+1]
		if rep, ok := simpleEscapes[c]; ok {
			sb.WriteString(rep)
			i++
			continue
		}
		switch {
		case c >= '0' && c <= '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i+1:j], 8, 32)
			sb.WriteRune(rune(v))
			i = j - 1
		case c == 'x' || c == 'u' || c == 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
			end := i + 2 + width
			if end > len(s) {
				sb.WriteByte(s[i])
				continue
			}
			v, err := strconv.ParseUint(s[i+2:end], 16, 32)
			if err != nil {
				sb.WriteByte(s[i])
				continue
			}
			sb.WriteRune(rune(v))
			i = end - 1
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// intLiteral renders an integer in decimal. Imaginary literals are kept as
// written.
func intLiteral(raw string) string {
	s := strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(s, "j") || strings.HasSuffix(s, "J") {
		return strings.ToLower(s)
	}
	s = strings.TrimRight(s, "lL")
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return raw
	}
	return v.String()
}

// floatLiteral renders a float the way Python's repr does.
func floatLiteral(raw string) string {
	s := strings.ReplaceAll(raw, "_", "")
	if strings.HasSuffix(s, "j") || strings.HasSuffix(s, "J") {
		return strings.ToLower(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return raw
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
