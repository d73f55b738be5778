package parser

import (
	"regexp"
	"strings"
)

// ArgsKey collects the arguments that carry no key.
const ArgsKey = "args"

var (
	regxLongKV  = regexp.MustCompile(`^--[^=]+=.*$`)
	regxLongK   = regexp.MustCompile(`^--[^=]+$`)
	regxShortKV = regexp.MustCompile(`^-[^=\d][^=]*=.*$`)
	regxShortK  = regexp.MustCompile(`^-[^=\d][^=]*$`)
)

// KVmParse reads command line style arguments: --k=v, --k v, -k=v, -k v
// and k=v. A bare --k at the end becomes "true".
func KVmParse(kvs ...string) (m map[string]any, err error) {
	m = map[string]any{}
	positional := []string{}
	for _, kv := range ArgsParse(kvs) {
		if kv.Key == "" {
			positional = append(positional, kv.Val)
			continue
		}
		m[kv.Key] = kv.Val
	}
	if len(positional) > 0 {
		m[ArgsKey] = positional
	}
	return m, nil
}

type KV struct{ Key, Val string }

func ArgsParse(args []string) (kvs []*KV) {
	argk := ""
	argv := ""
	for _, arg := range args {
		switch {
		case argk != "":
			argv = arg
		case regxLongKV.MatchString(arg):
			kv := strings.SplitN(arg[2:], "=", 2)
			argk, argv = kv[0], kv[1]
		case regxLongK.MatchString(arg):
			argk = arg[2:]
			continue
		case regxShortKV.MatchString(arg):
			kv := strings.SplitN(arg[1:], "=", 2)
			argk, argv = kv[0], kv[1]
		case regxShortK.MatchString(arg):
			argk = arg[1:]
			continue
		default:
			kv := strings.SplitN(arg, "=", 2)
			if len(kv) == 2 {
				argk, argv = kv[0], kv[1]
			} else {
				argk, argv = "", arg
			}
		}
		kvs = append(kvs, &KV{argk, argv})
		argk, argv = "", ""
	}
	if argk != "" {
		kvs = append(kvs, &KV{argk, "true"})
	}
	return
}
