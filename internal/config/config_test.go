package config

import (
	"errors"
	"testing"
)

func TestDefault_MatchesSpecDefaults(t *testing.T) {
	c := Default()

	if c.Detection.MaxEditDistance != 1 {
		t.Errorf("MaxEditDistance = %d, want 1", c.Detection.MaxEditDistance)
	}
	if c.Detection.CaseSensitive {
		t.Error("CaseSensitive should default false")
	}
	if !c.Detection.ConfusableMapping {
		t.Error("ConfusableMapping should default true")
	}
	if !c.Detection.StripDiacritics || c.Detection.UseCompatForm || !c.Detection.StripInvisible {
		t.Error("normalization defaults do not match spec")
	}
	if !c.Detection.EnableInflections {
		t.Error("EnableInflections should default true")
	}
	if c.Detection.PhraseMaxSkips != 2 {
		t.Errorf("PhraseMaxSkips = %d, want 2", c.Detection.PhraseMaxSkips)
	}
	if c.Detection.Algorithm != "trie" {
		t.Errorf("Algorithm = %q, want trie", c.Detection.Algorithm)
	}
	if len(c.Languages.Enabled) != 1 || c.Languages.Enabled[0] != "en" {
		t.Errorf("Languages.Enabled = %v, want [en]", c.Languages.Enabled)
	}
	if c.Languages.Fallback != "en" || c.Languages.AutoDetect {
		t.Error("Languages defaults do not match spec")
	}
	if !c.Masking.Enabled || !c.Masking.PreserveLength || !c.Masking.PreserveFirst || c.Masking.PreserveLast {
		t.Error("Masking defaults do not match spec")
	}
	if c.Masking.PatternChar != "*" {
		t.Errorf("PatternChar = %q, want *", c.Masking.PatternChar)
	}
}

func TestConfig_Clone_IsIndependent(t *testing.T) {
	c := Default()
	clone := c.Clone()
	clone.Detection.CustomWords = append(clone.Detection.CustomWords, "extra")

	if len(c.Detection.CustomWords) != 0 {
		t.Error("mutating a clone's slice must not affect the original")
	}
}

func TestConfig_Validate_RejectsNegativeEditDistance(t *testing.T) {
	c := Default()
	c.Detection.MaxEditDistance = -1
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate_RejectsNegativePhraseMaxSkips(t *testing.T) {
	c := Default()
	c.Detection.PhraseMaxSkips = -1
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate_RejectsUnknownAlgorithm(t *testing.T) {
	c := Default()
	c.Detection.Algorithm = "regex"
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate_RejectsMultiRunePatternChar(t *testing.T) {
	c := Default()
	c.Masking.PatternChar = "**"
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate_AcceptsDefault(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestLoad_NoFileUsesDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("PROFANITY_DETECTION__MAX_EDIT_DISTANCE", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detection.MaxEditDistance != 3 {
		t.Errorf("expected env override to set MaxEditDistance=3, got %d", cfg.Detection.MaxEditDistance)
	}
	if cfg.Detection.Algorithm != "trie" {
		t.Errorf("expected untouched fields to retain defaults, got algorithm=%q", cfg.Detection.Algorithm)
	}
}
