// Package config defines the detector's configuration shape and the
// optional YAML/environment override loader, grounded on the teacher
// pack's storbeck-augustus/pkg/config convention (koanf + validator,
// since foden303-moderation's own Kratos protobuf config loader was not
// part of the retrieved file set for this spec).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// MaskingConfig controls sanitize's output shape (spec.md §3, §4.7).
type MaskingConfig struct {
	Enabled        bool   `yaml:"enabled" koanf:"enabled"`
	PatternChar    string `yaml:"pattern_char" koanf:"pattern_char" validate:"required,len=1"`
	PreserveLength bool   `yaml:"preserve_length" koanf:"preserve_length"`
	PreserveFirst  bool   `yaml:"preserve_first" koanf:"preserve_first"`
	PreserveLast   bool   `yaml:"preserve_last" koanf:"preserve_last"`
}

// DetectionConfig controls every detect-path knob (spec.md §3).
type DetectionConfig struct {
	MaxEditDistance    int      `yaml:"max_edit_distance" koanf:"max_edit_distance" validate:"gte=0"`
	CaseSensitive      bool     `yaml:"case_sensitive" koanf:"case_sensitive"`
	WholeWordsOnly     bool     `yaml:"whole_words_only" koanf:"whole_words_only"`
	CustomWords        []string `yaml:"custom_words" koanf:"custom_words"`
	ConfusableMapping  bool     `yaml:"confusable_mapping" koanf:"confusable_mapping"`
	IgnoreSeparators   []string `yaml:"ignore_separators" koanf:"ignore_separators"`
	StripDiacritics    bool     `yaml:"strip_diacritics" koanf:"strip_diacritics"`
	UseCompatForm      bool     `yaml:"use_compat_form" koanf:"use_compat_form"`
	LengthPreserving   bool     `yaml:"length_preserving" koanf:"length_preserving"`
	StripInvisible     bool     `yaml:"strip_invisible" koanf:"strip_invisible"`
	EnableInflections  bool     `yaml:"enable_inflections" koanf:"enable_inflections"`
	InflectionSuffixes []string `yaml:"inflection_suffixes" koanf:"inflection_suffixes"`
	Allowlist          []string `yaml:"allowlist" koanf:"allowlist"`
	TokenBoundedFuzzy  bool     `yaml:"token_bounded_fuzzy" koanf:"token_bounded_fuzzy"`
	PhraseStopwords    []string `yaml:"phrase_stopwords" koanf:"phrase_stopwords"`
	PhraseMaxSkips     int      `yaml:"phrase_max_skips" koanf:"phrase_max_skips" validate:"gte=0"`
	Algorithm          string   `yaml:"algorithm" koanf:"algorithm" validate:"omitempty,oneof=trie aho"`
}

// LanguagesConfig controls which language entries are active (spec.md §3).
type LanguagesConfig struct {
	Enabled    []string `yaml:"enabled" koanf:"enabled"`
	AutoDetect bool     `yaml:"auto_detect" koanf:"auto_detect"`
	Fallback   string   `yaml:"fallback" koanf:"fallback" validate:"required"`
}

// Config is the complete, immutable-once-constructed configuration
// snapshot a Detector holds (spec.md §3).
type Config struct {
	Masking   MaskingConfig   `yaml:"masking" koanf:"masking"`
	Detection DetectionConfig `yaml:"detection" koanf:"detection"`
	Languages LanguagesConfig `yaml:"languages" koanf:"languages"`
}

// Default returns the configuration defaults mandated by spec.md §6. The
// caller receives an independent copy: every slice is freshly allocated,
// so mutating the result can never corrupt a shared default (spec.md §9's
// "frozen defaults" requirement).
func Default() Config {
	return Config{
		Masking: MaskingConfig{
			Enabled:        true,
			PatternChar:    "*",
			PreserveLength: true,
			PreserveFirst:  true,
			PreserveLast:   false,
		},
		Detection: DetectionConfig{
			MaxEditDistance:    1,
			CaseSensitive:      false,
			WholeWordsOnly:     false,
			CustomWords:        nil,
			ConfusableMapping:  true,
			IgnoreSeparators:   []string{" ", ".", "-", "_", "*"},
			StripDiacritics:    true,
			UseCompatForm:      false,
			LengthPreserving:   true,
			StripInvisible:     true,
			EnableInflections:  true,
			InflectionSuffixes: []string{"s", "es", "ed", "ing", "er", "ers"},
			Allowlist:          nil,
			TokenBoundedFuzzy:  true,
			PhraseStopwords:    []string{"of", "the", "a", "an", "and", "to"},
			PhraseMaxSkips:     2,
			Algorithm:          "trie",
		},
		Languages: LanguagesConfig{
			Enabled:    []string{"en"},
			AutoDetect: false,
			Fallback:   "en",
		},
	}
}

// Clone returns a deep copy, used whenever a Config is about to be handed
// to a new detector or mutated (spec.md §9).
func (c Config) Clone() Config {
	out := c
	out.Detection.CustomWords = append([]string(nil), c.Detection.CustomWords...)
	out.Detection.IgnoreSeparators = append([]string(nil), c.Detection.IgnoreSeparators...)
	out.Detection.InflectionSuffixes = append([]string(nil), c.Detection.InflectionSuffixes...)
	out.Detection.Allowlist = append([]string(nil), c.Detection.Allowlist...)
	out.Detection.PhraseStopwords = append([]string(nil), c.Detection.PhraseStopwords...)
	out.Languages.Enabled = append([]string(nil), c.Languages.Enabled...)
	return out
}

// Validate rejects configurations spec.md §7 classifies as "configuration
// invalid": negative edit distance, negative phrase skip budget, an
// unknown algorithm name, a mask character that is not exactly one code
// point, or an empty fallback language.
func (c Config) Validate() error {
	if c.Detection.MaxEditDistance < 0 {
		return fmt.Errorf("%w: detection.max_edit_distance must be non-negative, got %d", ErrInvalidConfig, c.Detection.MaxEditDistance)
	}
	if c.Detection.PhraseMaxSkips < 0 {
		return fmt.Errorf("%w: detection.phrase_max_skips must be non-negative, got %d", ErrInvalidConfig, c.Detection.PhraseMaxSkips)
	}
	if c.Detection.Algorithm != "trie" && c.Detection.Algorithm != "aho" {
		return fmt.Errorf("%w: detection.algorithm must be trie or aho, got %q", ErrInvalidConfig, c.Detection.Algorithm)
	}
	if len([]rune(c.Masking.PatternChar)) != 1 {
		return fmt.Errorf("%w: masking.pattern_char must be exactly one code point, got %q", ErrInvalidConfig, c.Masking.PatternChar)
	}
	if c.Languages.Fallback == "" {
		return fmt.Errorf("%w: languages.fallback must not be empty", ErrInvalidConfig)
	}

	v := validator.New()
	if err := v.Struct(&c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Load starts from Default() and layers a YAML file (if path is
// non-empty) and then PROFANITY_-prefixed environment variables on top,
// following the teacher pack's CLI-flags > env > file > defaults
// precedence (flags are the caller's concern here, since this core has
// no CLI surface). PROFANITY_DETECTION__MAX_EDIT_DISTANCE overrides
// detection.max_edit_distance; double underscores become dots.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider("PROFANITY_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "PROFANITY_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load environment overrides: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
