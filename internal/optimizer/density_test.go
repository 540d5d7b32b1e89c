package optimizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestKeywordDensity(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		keywords []string
		want     map[string]float64
	}{
		{
			name:     "single keyword",
			content:  "golang is great and golang is fast",
			keywords: []string{"golang"},
			want:     map[string]float64{"golang": 28.57},
		},
		{
			name:     "case insensitive matching",
			content:  "Golang and GOLANG and golang",
			keywords: []string{"golang"},
			want:     map[string]float64{"golang": 60},
		},
		{
			name:     "key preserves caller casing",
			content:  "golang golang",
			keywords: []string{"GoLang"},
			want:     map[string]float64{"GoLang": 100},
		},
		{
			name:     "absent keyword reports zero",
			content:  "nothing relevant here",
			keywords: []string{"golang"},
			want:     map[string]float64{"golang": 0},
		},
		{
			name:     "substring occurrences count",
			content:  "category catalog cat",
			keywords: []string{"cat"},
			want:     map[string]float64{"cat": 100},
		},
		{
			name:     "empty content",
			content:  "",
			keywords: []string{"golang"},
			want:     map[string]float64{"golang": 0},
		},
		{
			name:     "empty keyword list",
			content:  "some content here",
			keywords: []string{},
			want:     map[string]float64{},
		},
		{
			name:     "nil keyword list",
			content:  "some content here",
			keywords: nil,
			want:     map[string]float64{},
		},
		{
			name:     "empty keyword strings skipped",
			content:  "some content here",
			keywords: []string{"", "content"},
			want:     map[string]float64{"content": 33.33},
		},
		{
			name:     "duplicate keywords collapse to one entry",
			content:  "golang golang golang",
			keywords: []string{"golang", "golang"},
			want:     map[string]float64{"golang": 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordDensity(tt.content, tt.keywords)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("KeywordDensity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordDensity_Rounding(t *testing.T) {
	// 1 occurrence in 3 words: 33.333...% rounds to 33.33.
	got := KeywordDensity("alpha beta gamma", []string{"alpha"})
	if got["alpha"] != 33.33 {
		t.Errorf("expected 33.33, got %v", got["alpha"])
	}

	// 2 occurrences in 3 words: 66.666...% rounds to 66.67.
	got = KeywordDensity("alpha alpha gamma", []string{"alpha"})
	if got["alpha"] != 66.67 {
		t.Errorf("expected 66.67, got %v", got["alpha"])
	}
}

func TestKeywordDensity_CanExceedHundred(t *testing.T) {
	// Substring matching means occurrences can outnumber words.
	got := KeywordDensity("catcat", []string{"cat"})
	if got["cat"] != 200 {
		t.Errorf("expected 200, got %v", got["cat"])
	}
}

func TestKeywordDensity_Deterministic(t *testing.T) {
	content := strings.Repeat("golang rocks ", 50)
	keywords := []string{"golang", "rocks", "absent"}

	first := KeywordDensity(content, keywords)
	second := KeywordDensity(content, keywords)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical maps, got %v and %v", first, second)
	}
}
