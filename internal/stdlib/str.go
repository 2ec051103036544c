package stdlib

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hersac/umbral/internal/interp"
)

// strDict is Std.str, grounded on umbral-runtime/src/runtime/stdlib's
// string module, with normalize/collate/sortLocale/toUTF16/fromUTF16 added
// per SPEC_FULL.md's DOMAIN STACK to give golang.org/x/text a home.
func strDict() *interp.DictValue {
	return dictOf(
		entry{"len", strLen},
		entry{"upper", strUpper},
		entry{"lower", strLower},
		entry{"trim", strTrim},
		entry{"split", strSplit},
		entry{"join", strJoin},
		entry{"replace", strReplace},
		entry{"contains", strContains},
		entry{"startsWith", strStartsWith},
		entry{"endsWith", strEndsWith},
		entry{"slice", strSlice},
		entry{"indexOf", strIndexOf},
		entry{"repeat", strRepeat},
		entry{"normalize", strNormalize},
		entry{"collate", strCollate},
		entry{"sortLocale", strSortLocale},
		entry{"toUTF16", strToUTF16},
		entry{"fromUTF16", strFromUTF16},
	)
}

func strLen(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return integer(int64(len([]rune(s)))), nil
}

func strUpper(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return text(strings.ToUpper(s)), nil
}

func strLower(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return text(strings.ToLower(s)), nil
}

func strTrim(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return text(strings.TrimSpace(s)), nil
}

func strSplit(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	sep, ok := asText(arg(args, 1))
	if !ok {
		return interp.Null, nil
	}
	parts := strings.Split(s, sep)
	elems := make([]interp.Value, len(parts))
	for i, p := range parts {
		elems[i] = text(p)
	}
	return &interp.ListValue{Elements: elems}, nil
}

func strJoin(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	sep, _ := asText(arg(args, 1))
	parts := make([]string, len(list.Elements))
	for i, e := range list.Elements {
		parts[i] = e.String()
	}
	return text(strings.Join(parts, sep)), nil
}

func strReplace(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	old, ok := asText(arg(args, 1))
	if !ok {
		return interp.Null, nil
	}
	newS, ok := asText(arg(args, 2))
	if !ok {
		return interp.Null, nil
	}
	return text(strings.ReplaceAll(s, old, newS)), nil
}

func strContains(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok1 := asText(arg(args, 0))
	sub, ok2 := asText(arg(args, 1))
	if !ok1 || !ok2 {
		return interp.Null, nil
	}
	return boolean(strings.Contains(s, sub)), nil
}

func strStartsWith(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok1 := asText(arg(args, 0))
	pre, ok2 := asText(arg(args, 1))
	if !ok1 || !ok2 {
		return interp.Null, nil
	}
	return boolean(strings.HasPrefix(s, pre)), nil
}

func strEndsWith(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok1 := asText(arg(args, 0))
	suf, ok2 := asText(arg(args, 1))
	if !ok1 || !ok2 {
		return interp.Null, nil
	}
	return boolean(strings.HasSuffix(s, suf)), nil
}

func strSlice(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	runes := []rune(s)
	start, ok := asInt(arg(args, 1))
	if !ok {
		return interp.Null, nil
	}
	end := int64(len(runes))
	if len(args) > 2 {
		end, ok = asInt(args[2])
		if !ok {
			return interp.Null, nil
		}
	}
	if start < 0 || end > int64(len(runes)) || start > end {
		return interp.Null, nil
	}
	return text(string(runes[start:end])), nil
}

func strIndexOf(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok1 := asText(arg(args, 0))
	sub, ok2 := asText(arg(args, 1))
	if !ok1 || !ok2 {
		return interp.Null, nil
	}
	return integer(int64(strings.Index(s, sub))), nil
}

func strRepeat(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	n, ok := asInt(arg(args, 1))
	if !ok || n < 0 {
		return interp.Null, nil
	}
	return text(strings.Repeat(s, int(n))), nil
}

// strNormalize applies Unicode NFC normalisation.
func strNormalize(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	return text(norm.NFC.String(s)), nil
}

// strCollate reports -1/0/1 for locale-aware comparison.
func strCollate(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	a, ok1 := asText(arg(args, 0))
	b, ok2 := asText(arg(args, 1))
	if !ok1 || !ok2 {
		return interp.Null, nil
	}
	c := collate.New(language.Und)
	return integer(int64(c.CompareString(a, b))), nil
}

// strSortLocale returns a new list of Text values sorted by locale collation.
func strSortLocale(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	out := make([]string, 0, len(list.Elements))
	for _, e := range list.Elements {
		s, ok := asText(e)
		if !ok {
			return interp.Null, nil
		}
		out = append(out, s)
	}
	c := collate.New(language.Und)
	c.SortStrings(out)
	elems := make([]interp.Value, len(out))
	for i, s := range out {
		elems[i] = text(s)
	}
	return &interp.ListValue{Elements: elems}, nil
}

// strToUTF16 encodes s as UTF-16LE bytes, surfaced as a List of Integer
// byte values.
func strToUTF16(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	s, ok := asText(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	out, _, err := transform.String(enc.NewEncoder(), s)
	if err != nil {
		return interp.Null, nil
	}
	elems := make([]interp.Value, len(out))
	for i := 0; i < len(out); i++ {
		elems[i] = integer(int64(out[i]))
	}
	return &interp.ListValue{Elements: elems}, nil
}

// strFromUTF16 is toUTF16's inverse: a List of Integer byte values in, Text out.
func strFromUTF16(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
	list, ok := asList(arg(args, 0))
	if !ok {
		return interp.Null, nil
	}
	raw := make([]byte, len(list.Elements))
	for i, e := range list.Elements {
		n, ok := asInt(e)
		if !ok {
			return interp.Null, nil
		}
		raw[i] = byte(n)
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return interp.Null, nil
	}
	return text(string(out)), nil
}
