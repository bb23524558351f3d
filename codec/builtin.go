package codec

import (
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// value builds a value-wise codec.
func value(name, desc string, needsArg bool, f ValueFunc) Codec {
	return Codec{Name: name, Desc: desc, Kind: KindValue, NeedsArg: needsArg, value: f}
}

// reduce builds a reducing codec.
func reduce(name, desc string, needsArg bool, f ListFunc) Codec {
	return Codec{Name: name, Desc: desc, Kind: KindList, NeedsArg: needsArg, list: f}
}

//nolint:gochecknoglobals
var builtin = []Codec{
	value("add", "add the argument to the value (numeric or concatenation)",
		true, codecAdd),
	value("addslashes", "backslash-escape quotes and backslashes",
		false, codecAddslashes),
	value("b64", "encode the value as base64",
		false, codecB64),
	value("basename", "strip the directory portion of a path",
		false, codecBasename),
	value("capfirst", "capitalize the first character",
		false, codecCapfirst),
	value("center", "center the value in a field of the given width",
		true, codecCenter),
	value("date", "format a unix timestamp with a strftime layout",
		true, codecDate),
	value("dquote", "surround the value with double quotes",
		false, codecDquote),
	reduce("first", "keep only the first value",
		false, codecFirst),
	reduce("join", "join all values with the given separator",
		true, codecJoin),
	reduce("last", "keep only the last value",
		false, codecLast),
	{
		Name:  "length",
		Desc:  "length of the value, or count of a repeatable's values",
		Kind:  KindWhole,
		value: codecLength,
		list:  codecLengthList,
	},
	value("ljust", "left-align the value in a field of the given width",
		true, codecLjust),
	value("lower", "convert the value to lower case",
		false, codecLower),
	value("md5", "MD5 digest of the value in hex",
		false, codecMD5),
	value("rjust", "right-align the value in a field of the given width",
		true, codecRjust),
	value("safename", "replace non-alphanumeric characters with underscores",
		false, codecSafename),
	value("sha1", "SHA-1 digest of the value in hex",
		false, codecSHA1),
	value("sha256", "SHA-256 digest of the value in hex",
		false, codecSHA256),
	value("sha512", "SHA-512 digest of the value in hex",
		false, codecSHA512),
	value("squote", "surround the value with single quotes",
		false, codecSquote),
	value("title", "convert the value to title case",
		false, codecTitle),
	value("truncatechars", "truncate the value after N characters",
		true, codecTruncatechars),
	value("truncatewords", "truncate the value after N words",
		true, codecTruncatewords),
	value("upper", "convert the value to upper case",
		false, codecUpper),
	value("url", "percent-encode the value for use in a URL",
		false, codecURL),
	value("urlplus", "percent-encode the value, spaces as plus signs",
		false, codecURLPlus),
	value("wordcount", "count the words in the value",
		false, codecWordcount),
}

func codecAdd(v, arg string) (string, error) {
	a, errA := strconv.Atoi(v)

	b, errB := strconv.Atoi(arg)
	if errA == nil && errB == nil {
		return strconv.Itoa(a + b), nil
	}

	return v + arg, nil
}

func codecAddslashes(v, _ string) (string, error) {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

	return r.Replace(v), nil
}

func codecB64(v, _ string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(v)), nil
}

func codecBasename(v, _ string) (string, error) {
	return v[strings.LastIndexByte(v, '/')+1:], nil
}

func codecCapfirst(v, _ string) (string, error) {
	r, size := utf8.DecodeRuneInString(v)
	if size == 0 {
		return v, nil
	}

	return string(unicode.ToUpper(r)) + v[size:], nil
}

func codecCenter(v, arg string) (string, error) {
	width, err := fieldWidth(arg)
	if err != nil {
		return "", err
	}

	margin := width - utf8.RuneCountInString(v)
	if margin <= 0 {
		return v, nil
	}

	left := margin/2 + (margin & width & 1)

	return strings.Repeat(" ", left) + v +
		strings.Repeat(" ", margin-left), nil
}

func codecDate(v, arg string) (string, error) {
	sec, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", fmt.Errorf("timestamp %q: %w", v, err)
	}

	layout, err := strftimeLayout(arg)
	if err != nil {
		return "", err
	}

	return time.Unix(int64(sec), 0).Format(layout), nil
}

func codecDquote(v, _ string) (string, error) {
	return `"` + v + `"`, nil
}

func codecFirst(vs []string, _ string) ([]string, error) {
	if len(vs) == 0 {
		return []string{""}, nil
	}

	return vs[:1], nil
}

func codecJoin(vs []string, arg string) ([]string, error) {
	return []string{strings.Join(vs, arg)}, nil
}

func codecLast(vs []string, _ string) ([]string, error) {
	if len(vs) == 0 {
		return []string{""}, nil
	}

	return vs[len(vs)-1:], nil
}

func codecLength(v, _ string) (string, error) {
	return strconv.Itoa(utf8.RuneCountInString(v)), nil
}

func codecLengthList(vs []string, _ string) ([]string, error) {
	return []string{strconv.Itoa(len(vs))}, nil
}

func codecLjust(v, arg string) (string, error) {
	width, err := fieldWidth(arg)
	if err != nil {
		return "", err
	}

	if pad := width - utf8.RuneCountInString(v); pad > 0 {
		return v + strings.Repeat(" ", pad), nil
	}

	return v, nil
}

func codecLower(v, _ string) (string, error) {
	return strings.ToLower(v), nil
}

func codecMD5(v, _ string) (string, error) {
	sum := md5.Sum([]byte(v)) //nolint:gosec

	return hex.EncodeToString(sum[:]), nil
}

func codecRjust(v, arg string) (string, error) {
	width, err := fieldWidth(arg)
	if err != nil {
		return "", err
	}

	if pad := width - utf8.RuneCountInString(v); pad > 0 {
		return strings.Repeat(" ", pad) + v, nil
	}

	return v, nil
}

func codecSafename(v, _ string) (string, error) {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) {
			return r
		}

		return '_'
	}, v), nil
}

func codecSHA1(v, _ string) (string, error) {
	sum := sha1.Sum([]byte(v)) //nolint:gosec

	return hex.EncodeToString(sum[:]), nil
}

func codecSHA256(v, _ string) (string, error) {
	sum := sha256.Sum256([]byte(v))

	return hex.EncodeToString(sum[:]), nil
}

func codecSHA512(v, _ string) (string, error) {
	sum := sha512.Sum512([]byte(v))

	return hex.EncodeToString(sum[:]), nil
}

func codecSquote(v, _ string) (string, error) {
	return "'" + v + "'", nil
}

// codecTitle capitalizes the first letter of each word. Letters after an
// intra-word apostrophe or after a digit stay lower case, so "it's 3rd"
// becomes "It's 3rd" rather than "It'S 3Rd".
func codecTitle(v, _ string) (string, error) {
	out := make([]rune, 0, utf8.RuneCountInString(v))

	var prev, prevPrev rune

	for _, r := range v {
		switch {
		case !unicode.IsLetter(r):
			out = append(out, r)
		case unicode.IsLetter(prev),
			unicode.IsDigit(prev),
			prev == '\'' && unicode.IsLetter(prevPrev):
			out = append(out, unicode.ToLower(r))
		default:
			out = append(out, unicode.ToUpper(r))
		}

		prevPrev, prev = prev, r
	}

	return string(out), nil
}

func codecTruncatechars(v, arg string) (string, error) {
	n, err := fieldWidth(arg)
	if err != nil {
		return "", err
	}

	runes := []rune(v)
	if len(runes) <= n {
		return v, nil
	}

	return string(runes[:n]), nil
}

func codecTruncatewords(v, arg string) (string, error) {
	n, err := fieldWidth(arg)
	if err != nil {
		return "", err
	}

	words := strings.Fields(v)
	if len(words) <= n {
		return v, nil
	}

	return strings.Join(words[:n], " "), nil
}

func codecUpper(v, _ string) (string, error) {
	return strings.ToUpper(v), nil
}

func codecURL(v, _ string) (string, error) {
	return pctEncode(v, "/.-_", false), nil
}

func codecURLPlus(v, _ string) (string, error) {
	return pctEncode(v, ".-_", true), nil
}

func codecWordcount(v, _ string) (string, error) {
	return strconv.Itoa(len(strings.Fields(v))), nil
}

func fieldWidth(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid width %q", arg)
	}

	return n, nil
}

const upperhex = "0123456789ABCDEF"

// pctEncode percent-encodes every byte of s except ASCII alphanumerics and
// the bytes in safe. With plusSpace, spaces encode as '+'.
func pctEncode(s, safe string, plusSpace bool) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == ' ' && plusSpace:
			b.WriteByte('+')
		case 'a' <= c && c <= 'z',
			'A' <= c && c <= 'Z',
			'0' <= c && c <= '9',
			strings.IndexByte(safe, c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}

	return b.String()
}

// strftimeLayout translates the strftime directives the date codec accepts
// into a Go reference-time layout.
func strftimeLayout(format string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteByte(format[i])

			continue
		}

		i++
		if i >= len(format) {
			return "", fmt.Errorf("trailing %% in layout %q", format)
		}

		repl, ok := strftimeTable[format[i]]
		if !ok {
			return "", fmt.Errorf(
				"unsupported directive %%%c in layout %q", format[i], format)
		}

		b.WriteString(repl)
	}

	return b.String(), nil
}

//nolint:gochecknoglobals
var strftimeTable = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'Z': "MST",
	'z': "-0700",
	'%': "%",
}
