package langdetect

import (
	"reflect"
	"testing"
)

func TestLikely(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"hello", nil},
		{"你好", []string{"zh"}},
		{"こんにちは", []string{"ja"}},
		{"안녕하세요", []string{"ko"}},
		{"привет", []string{"ru"}},
		{"مرحبا", []string{"ar", "fa"}},
		{"שלום", []string{"he"}},
		{"नमस्ते", []string{"hi"}},
		{"สวัสดี", []string{"th"}},
	}
	for _, c := range cases {
		got := Likely(c.text)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Likely(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
