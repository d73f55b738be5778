package cast

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/wecisecode/rbtree/merrs"
)

// RangeSep separates the bounds of an inclusive key range such as 1..15.
const RangeSep = ".."

func ToStr(v any) (rets string) {
	if v == nil {
		return ""
	}
	switch r := v.(type) {
	case []any:
		for _, v := range r {
			rets += ToStr(v)
		}
	case []byte:
		return string(r)
	case string:
		return r
	default:
		return cast.ToString(r)
	}
	return
}

func ToStrs(v any) (rets []string) {
	switch r := v.(type) {
	case nil:
		return nil
	case []any:
		for _, v := range r {
			rets = append(rets, ToStr(v))
		}
	case []byte:
		return []string{string(r)}
	case string:
		return []string{r}
	case []string:
		return r
	default:
		return []string{cast.ToString(r)}
	}
	return
}

// ToKeyE converts a single key. Text is read as a base 10 integer; leading
// zeros do not switch to octal.
func ToKeyE(v any) (int, error) {
	switch r := v.(type) {
	case []byte:
		return ToKeyE(string(r))
	case string:
		s := normalizeDecimal(r)
		if s == "" {
			return 0, merrs.ErrParam.New("empty key", merrs.Module("cast"))
		}
		k, err := cast.ToIntE(s)
		if err != nil {
			return 0, merrs.ErrParam.New("invalid key %q", r, merrs.Module("cast"))
		}
		return k, nil
	case float32, float64:
		f := cast.ToFloat64(r)
		if f != float64(int(f)) {
			return 0, merrs.ErrParam.New("key %v is not an integer", r, merrs.Module("cast"))
		}
		return int(f), nil
	}
	k, err := cast.ToIntE(v)
	if err != nil {
		return 0, merrs.ErrParam.New("invalid key %v", v, merrs.Module("cast"))
	}
	return k, nil
}

func normalizeDecimal(s string) string {
	s = strings.TrimSpace(s)
	sign := ""
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = "-", s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return ""
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			// let cast report it
			return sign + s
		}
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return sign + s
}

// MaxRangeKeys caps how many keys a single from..to range may expand to.
const MaxRangeKeys = 1 << 20

// ParseRangeE reads "from..to". Both bounds are inclusive and from may be
// greater than to. Ranges of more than MaxRangeKeys keys are rejected.
func ParseRangeE(s string) (from, to int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), RangeSep, 2)
	if len(parts) != 2 {
		return 0, 0, merrs.ErrParam.New("invalid range %q", s, merrs.Module("cast"))
	}
	if from, err = ToKeyE(parts[0]); err != nil {
		return 0, 0, merrs.ErrParam.New(err, merrs.Map{"range": s})
	}
	if to, err = ToKeyE(parts[1]); err != nil {
		return 0, 0, merrs.ErrParam.New(err, merrs.Map{"range": s})
	}
	if err = CheckRangeE(from, to); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// RangeSpan returns the distance between from and to. It is one less than
// the number of keys in the range and never overflows.
func RangeSpan(from, to int) uint64 {
	if from <= to {
		return uint64(to) - uint64(from)
	}
	return uint64(from) - uint64(to)
}

// CheckRangeE fails when from..to holds more than MaxRangeKeys keys.
func CheckRangeE(from, to int) error {
	if RangeSpan(from, to) >= MaxRangeKeys {
		return merrs.ErrParam.New("range %d..%d holds more than %d keys", from, to, MaxRangeKeys, merrs.Module("cast"))
	}
	return nil
}

// RangeE lists the keys from..to inclusive, stepping toward to.
func RangeE(from, to int) ([]int, error) {
	if err := CheckRangeE(from, to); err != nil {
		return nil, err
	}
	step := 1
	if from > to {
		step = -1
	}
	keys := make([]int, 0, RangeSpan(from, to)+1)
	for k := from; ; k += step {
		keys = append(keys, k)
		if k == to {
			break
		}
	}
	return keys, nil
}

// ToKeysE converts a list of keys. Text may separate keys with commas or
// whitespace, and any token may be a range such as 1..15.
func ToKeysE(v any) (keys []int, err error) {
	switch r := v.(type) {
	case nil:
		return nil, nil
	case []int:
		return r, nil
	case string, []byte:
		return tokensToKeys(strings.FieldsFunc(ToStr(r), func(c rune) bool {
			return c == ',' || c == ';' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
		}))
	case []string:
		return tokensToKeys(r)
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		k, kerr := ToKeyE(v)
		if kerr != nil {
			return nil, kerr
		}
		return []int{k}, nil
	}
	for _, item := range items {
		more, err := ToKeysE(item)
		if err != nil {
			return nil, err
		}
		keys = append(keys, more...)
	}
	return keys, nil
}

func tokensToKeys(tokens []string) (keys []int, err error) {
	for _, tk := range tokens {
		tk = strings.TrimSpace(tk)
		if tk == "" {
			continue
		}
		if strings.Contains(tk, RangeSep) {
			from, to, err := ParseRangeE(tk)
			if err != nil {
				return nil, err
			}
			more, err := RangeE(from, to)
			if err != nil {
				return nil, err
			}
			keys = append(keys, more...)
			continue
		}
		k, err := ToKeyE(tk)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
