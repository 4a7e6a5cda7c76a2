package processor

import "testing"

func TestJoinFragments(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		sep   string
		want  string
	}{
		{"empty", nil, ", ", ""},
		{"single", []string{"a"}, ", ", "a"},
		{"skips empty", []string{"a", "", "b"}, ", ", "a, b"},
		{"drops sep before punctuation", []string{"a", ", b"}, "; ", "a, b"},
		{"merges repeated period", []string{"Smith, J.", "A Work"}, ". ", "Smith, J. A Work"},
		{"keeps distinct punctuation", []string{"Smith, J.", "2020"}, ", ", "Smith, J., 2020"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinFragments(tt.parts, tt.sep); got != tt.want {
				t.Errorf("JoinFragments(%v, %q) = %q, want %q",
					tt.parts, tt.sep, got, tt.want)
			}
		})
	}
}

func TestCleanupDangling(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Smith, . Title", "Smith. Title"},
		{"a, , b", "a, b"},
		{"ends with ( )", "ends with"},
		{"title [] rest", "title rest"},
		{"  padded  ", "padded"},
		{"clean text", "clean text"},
	}
	for _, tt := range tests {
		if got := CleanupDangling(tt.in); got != tt.want {
			t.Errorf("CleanupDangling(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMovePunctuationInQuote(t *testing.T) {
	in := "“A Title”."
	want := "“A Title.”"
	if got := MovePunctuationInQuote(in); got != want {
		t.Errorf("MovePunctuationInQuote(%q) = %q, want %q", in, got, want)
	}
}

func TestApplyEntrySuffix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"appends", "Smith 2020", "Smith 2020."},
		{"already terminal", "Smith 2020.", "Smith 2020."},
		{"question mark", "Really?", "Really?"},
		{"after url", "Title. https://example.com/a", "Title. https://example.com/a"},
		{"after doi", "Title. 10.1000/xyz", "Title. 10.1000/xyz"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyEntrySuffix(tt.in, "."); got != tt.want {
				t.Errorf("ApplyEntrySuffix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Smith, . “Title”. (2020)  pp. 1-2",
		"a, , b ( ) c",
		"already clean.",
	}
	for _, in := range inputs {
		once := Normalize(in, true)
		twice := Normalize(once, true)
		if once != twice {
			t.Errorf("Normalize not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestIntToLetter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "a"}, {2, "b"}, {26, "z"}, {27, "aa"}, {28, "ab"}, {52, "az"}, {53, "ba"},
	}
	for _, tt := range tests {
		if got := intToLetter(tt.n); got != tt.want {
			t.Errorf("intToLetter(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
