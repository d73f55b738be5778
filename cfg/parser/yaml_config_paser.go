package parser

import (
	"gopkg.in/yaml.v3"
)

func YamlParse(yaml_format_str ...string) (m map[string]any, err error) {
	m = map[string]any{}
	for _, yaml_str := range yaml_format_str {
		doc := map[string]any{}
		if err = yaml.Unmarshal([]byte(yaml_str), &doc); err != nil {
			return nil, err
		}
		Flatten(m, "", doc)
	}
	return m, nil
}
