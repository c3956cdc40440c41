package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding thresholds,
// e.g. CODEMETRICS_CYCLOMATICMAX=12.
const EnvPrefix = "CODEMETRICS_"

// LoadPolicy builds a ThresholdPolicy from the defaults, the policy file
// at path (skipped when path is empty) and CODEMETRICS_* environment
// variables, in that order. Keys absent from every layer keep their
// default. Unknown keys are rejected.
func LoadPolicy(path string) (ThresholdPolicy, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{}
	for key, v := range DefaultPolicy().AsMap() {
		defaults[key] = v
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return ThresholdPolicy{}, fmt.Errorf("failed to load default thresholds: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return ThresholdPolicy{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return ThresholdPolicy{}, fmt.Errorf("failed to load policy file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return ThresholdPolicy{}, fmt.Errorf("failed to load policy environment: %w", err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (ThresholdPolicy, error) {
	known := map[string]bool{}
	for _, key := range Keys {
		known[key] = true
	}

	var unknown []string
	for _, key := range k.Keys() {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ThresholdPolicy{}, fmt.Errorf("unknown threshold keys: %s", strings.Join(unknown, ", "))
	}

	policy := DefaultPolicy()
	for _, key := range Keys {
		v, err := toFloat(k.Get(key))
		if err != nil {
			return ThresholdPolicy{}, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if policy, err = policy.With(key, v); err != nil {
			return ThresholdPolicy{}, err
		}
	}

	if err := policy.Validate(); err != nil {
		return ThresholdPolicy{}, err
	}
	return policy, nil
}

// envKey maps CODEMETRICS_WMCMAX to wmcMax. Unrecognized names are
// lower-cased so they surface as unknown keys.
func envKey(key, value string) (string, any) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	for _, known := range Keys {
		if strings.ToLower(known) == name {
			return known, value
		}
	}
	return name, value
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("not a number: %v (%T)", v, v)
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return yamlParser{}, nil
	case ".toml":
		return tomlParser{}, nil
	}
	return nil, fmt.Errorf("unsupported policy file format %q (use .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

type yamlParser struct{}

func (yamlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (yamlParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(o)
}

type tomlParser struct{}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return toml.Marshal(o)
}
