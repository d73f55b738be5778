package cfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/wecisecode/rbtree/cfg/parser"
	"github.com/wecisecode/rbtree/merrs"
)

type CfgType int

const (
	UserDefined CfgType = iota
	KVS_TEXT            // 主要用于命令行参数的解析
	INI_TEXT
	INI_FILE
	JSON_TEXT
	JSON_FILE
	YAML_TEXT
	YAML_FILE
)

type CfgParser func(values ...string) (m map[string]any, err error)

type CfgOption struct {
	Name   string
	Type   CfgType
	Values []string
	Parser CfgParser
}

func (co *CfgOption) String() string {
	if len(co.Values) == 1 && co.isFile() {
		return co.Name + ":/" + co.Values[0]
	}
	return co.Name
}

func (co *CfgOption) isFile() bool {
	switch co.Type {
	case INI_FILE, JSON_FILE, YAML_FILE:
		return true
	}
	return false
}

func (co *CfgOption) parser() (CfgParser, error) {
	if co.Parser != nil {
		return co.Parser, nil
	}
	switch co.Type {
	case KVS_TEXT:
		return parser.KVmParse, nil
	case INI_TEXT, INI_FILE:
		return parser.IniParse, nil
	case JSON_TEXT, JSON_FILE:
		return parser.JsonParse, nil
	case YAML_TEXT, YAML_FILE:
		return parser.YamlParse, nil
	}
	return nil, merrs.ErrConfig.New("no parser for config %s", co.Name)
}

// FileCfgOption picks the file type from the extension: .yaml/.yml, .json,
// anything else is read as ini.
func FileCfgOption(filename string) *CfgOption {
	co := &CfgOption{Name: "m:file", Values: []string{filename}}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		co.Type = YAML_FILE
	case ".json":
		co.Type = JSON_FILE
	default:
		co.Type = INI_FILE
	}
	return co
}

func argsOption() *CfgOption {
	args := []string{}
	if len(os.Args) > 1 {
		args = os.Args[1:]
	}
	return &CfgOption{Name: "m:args", Type: KVS_TEXT, Values: args}
}

var CFGOPTION_ARGS = argsOption()

type Configure interface {
	Name() string
	// 配置加载完成的时间
	Stamp() time.Time
	// 通过程序设置改变配置信息，优先于所有配置来源
	Set(key string, value interface{})
	Get(key string, defaultvalue ...interface{}) interface{}
	GetStrings(key string, defaultvalue ...string) []string
	GetString(key string, defaultvalue ...string) string
	GetInt(key string, defaultvalue ...int) int
	GetBool(key string, defaultvalue ...bool) bool
	// 数值不带单位时按毫秒处理
	GetDuration(key string, defaultvalue ...interface{}) time.Duration
	Has(key string) bool
	Keys() []string
	Map() map[string]interface{}
	// 所有配置信息
	Info() string
}

type mConfig struct {
	mu     sync.RWMutex
	name   string
	stamp  time.Time
	values map[string]interface{}
	setcfg map[string]interface{}
}

// MConfig loads every option in order; a key defined by a later option
// overrides the same key from an earlier one. A missing file is treated
// as empty.
func MConfig(option ...*CfgOption) (Configure, error) {
	mc := &mConfig{
		values: map[string]interface{}{},
		setcfg: map[string]interface{}{},
	}
	names := []string{}
	for _, co := range option {
		m, err := load(co)
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			mc.values[k] = v
		}
		names = append(names, co.String())
	}
	mc.name = strings.Join(names, ",")
	mc.stamp = time.Now()
	return mc, nil
}

func load(co *CfgOption) (map[string]any, error) {
	parserf, err := co.parser()
	if err != nil {
		return nil, err
	}
	values := co.Values
	if co.isFile() {
		values = make([]string, 0, len(co.Values))
		for _, filename := range co.Values {
			bs, err := os.ReadFile(filename)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return nil, merrs.ErrConfig.New(err, merrs.Map{"file": filename})
			}
			values = append(values, string(bs))
		}
	}
	m, err := parserf(values...)
	if err != nil {
		return nil, merrs.ErrConfig.New(err, merrs.Map{"source": co.String()})
	}
	return m, nil
}

func (mc *mConfig) Name() string {
	return mc.name
}

func (mc *mConfig) Stamp() time.Time {
	return mc.stamp
}

func (mc *mConfig) Set(key string, value interface{}) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.setcfg[key] = value
}

func (mc *mConfig) lookup(key string) (interface{}, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	if v, ok := mc.setcfg[key]; ok {
		return v, true
	}
	v, ok := mc.values[key]
	return v, ok
}

func (mc *mConfig) Has(key string) bool {
	_, ok := mc.lookup(key)
	return ok
}

func (mc *mConfig) Get(key string, defaultvalue ...interface{}) interface{} {
	if v, ok := mc.lookup(key); ok {
		return v
	}
	if len(defaultvalue) > 0 {
		return defaultvalue[0]
	}
	return nil
}

func (mc *mConfig) GetStrings(key string, defaultvalue ...string) []string {
	v, ok := mc.lookup(key)
	if !ok {
		return defaultvalue
	}
	switch vs := v.(type) {
	case string:
		ss := []string{}
		for _, s := range strings.Split(vs, ",") {
			if s = strings.TrimSpace(s); s != "" {
				ss = append(ss, s)
			}
		}
		return ss
	case []string:
		return vs
	}
	ss, err := cast.ToStringSliceE(v)
	if err != nil {
		return defaultvalue
	}
	return ss
}

func (mc *mConfig) GetString(key string, defaultvalue ...string) string {
	if v, ok := mc.lookup(key); ok {
		if vs, ok := v.([]string); ok && len(vs) > 0 {
			// 重复定义时取最后一个
			return vs[len(vs)-1]
		}
		if s, err := cast.ToStringE(v); err == nil {
			return s
		}
	}
	if len(defaultvalue) > 0 {
		return defaultvalue[0]
	}
	return ""
}

func (mc *mConfig) GetInt(key string, defaultvalue ...int) int {
	if v, ok := mc.lookup(key); ok {
		if i, err := cast.ToIntE(strings.TrimSpace(mc.GetString(key))); err == nil {
			return i
		}
		if i, err := cast.ToIntE(v); err == nil {
			return i
		}
	}
	if len(defaultvalue) > 0 {
		return defaultvalue[0]
	}
	return 0
}

func (mc *mConfig) GetBool(key string, defaultvalue ...bool) bool {
	if v, ok := mc.lookup(key); ok {
		if b, err := cast.ToBoolE(v); err == nil {
			return b
		}
		if b, err := cast.ToBoolE(strings.TrimSpace(mc.GetString(key))); err == nil {
			return b
		}
	}
	if len(defaultvalue) > 0 {
		return defaultvalue[0]
	}
	return false
}

func (mc *mConfig) GetDuration(key string, defaultvalue ...interface{}) time.Duration {
	if _, ok := mc.lookup(key); ok {
		if d, err := toDuration(mc.GetString(key)); err == nil {
			return d
		}
	}
	if len(defaultvalue) > 0 {
		if d, err := toDuration(defaultvalue[0]); err == nil {
			return d
		}
	}
	return 0
}

func toDuration(v interface{}) (time.Duration, error) {
	if d, ok := v.(time.Duration); ok {
		return d, nil
	}
	s := strings.TrimSpace(cast.ToString(v))
	if ms, err := cast.ToInt64E(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return cast.ToDurationE(s)
}

func (mc *mConfig) Keys() []string {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	seen := map[string]bool{}
	keys := []string{}
	for _, m := range []map[string]interface{}{mc.values, mc.setcfg} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func (mc *mConfig) Map() map[string]interface{} {
	m := map[string]interface{}{}
	for _, k := range mc.Keys() {
		m[k] = mc.Get(k)
	}
	return m
}

func (mc *mConfig) Info() string {
	lines := []string{}
	for _, k := range mc.Keys() {
		lines = append(lines, fmt.Sprintf("%s=%v", k, mc.Get(k)))
	}
	return strings.Join(lines, "\n")
}
