package text

import (
	"reflect"
	"testing"
)

func TestBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Break
	}{
		{"empty", "", nil},
		{"single word", "hello", nil},
		{"two words", "hello world", []Break{{Offset: 6}}},
		{"trailing space", "a b ", []Break{{Offset: 2}}},
		{"hyphen", "well-known", []Break{{Offset: 5}}},
		{"newline is mandatory", "a\nb", []Break{{Offset: 2, Mandatory: true}}},
		{"no-break space", "a\u00a0b", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Breaks(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Breaks(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGraphemes(t *testing.T) {
	got := Graphemes("ae\u0301\U0001F1E9\U0001F1EA")
	want := []string{"a", "e\u0301", "\U0001F1E9\U0001F1EA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Graphemes = %q, want %q", got, want)
	}
	if Graphemes("") != nil {
		t.Error("Graphemes of empty string is not nil")
	}
}

func TestTrailingSpace(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"word", 0},
		{"word ", 1},
		{"word  ", 2},
		{"word\u00a0", 0},
		{"word\u3000", 3},
		{"   ", 3},
		{"", 0},
	}
	for _, tt := range tests {
		if got := TrailingSpace(tt.in); got != tt.want {
			t.Errorf("TrailingSpace(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
