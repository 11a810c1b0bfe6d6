package macro

import "testing"

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		table    map[string]string
		expected string
		changed  bool
	}{
		{"no dollar", "hello world", map[string]string{"X": "a"}, "hello world", false},
		{"empty table", "$X", map[string]string{}, "$X", false},
		{"simple", "hi $NAME", map[string]string{"NAME": "there"}, "hi there", true},
		{"unknown name left untouched", "hi $NOPE", map[string]string{"NAME": "there"}, "hi $NOPE", false},
		{"prefix shadowed, longest wins", "$XX$X", map[string]string{"X": "a", "XX": "b"}, "ba", true},
		{"adjacent known names", "$A$B", map[string]string{"A": "1", "B": "2"}, "12", true},
		{"trailing text after name", "$GREETING-world", map[string]string{"GREETING": "hi"}, "hi-world", true},
		{"key starting with a digit is substituted", "cost: $5", map[string]string{"5": "five"}, "cost: five", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := Substitute(tc.s, tc.table)
			if got != tc.expected {
				t.Fatalf("Substitute(%q, %v) = %q, want %q", tc.s, tc.table, got, tc.expected)
			}
			if changed != tc.changed {
				t.Fatalf("Substitute(%q, %v) changed = %v, want %v", tc.s, tc.table, changed, tc.changed)
			}
		})
	}
}

func TestSubstituteIdempotent(t *testing.T) {
	table := map[string]string{"X": "plain value"}
	s := "no macros here"
	once, _ := Substitute(s, table)
	twice, changed := Substitute(once, table)
	if once != twice || changed {
		t.Fatalf("expected idempotent no-op, got once=%q twice=%q changed=%v", once, twice, changed)
	}
}
