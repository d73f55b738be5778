package parser

import (
	"gopkg.in/ini.v1"
)

// IniParse flattens every section into "section.key". Keys of the default
// section keep their bare name. Repeated keys become a []string.
func IniParse(ini_format_str ...string) (m map[string]any, err error) {
	m = map[string]any{}
	for _, ini_str := range ini_format_str {
		fcfg, err := ini.ShadowLoad([]byte(ini_str))
		if err != nil {
			return nil, err
		}
		for _, section := range fcfg.Sections() {
			prefix := ""
			if section.Name() != ini.DefaultSection {
				prefix = section.Name() + "."
			}
			for _, key := range section.Keys() {
				values := key.ValueWithShadows()
				if len(values) == 1 {
					m[prefix+key.Name()] = values[0]
				} else {
					m[prefix+key.Name()] = values
				}
			}
		}
	}
	return m, nil
}
