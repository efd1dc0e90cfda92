package textutil

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestJaroKnownValues(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"", "abc", 0},
		{"abc", "", 0},
		{"martha", "marhta", 0.944},
		{"dixon", "dicksonx", 0.767},
		{"jones", "johnson", 0.790},
		{"abc", "xyz", 0},
		{"a", "a", 1},
	}
	for _, tt := range tests {
		if got := Jaro(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("Jaro(%q, %q) = %.4f, want %.3f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestJaroWinklerKnownValues(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"martha", "marhta", 0.961},
		{"dixon", "dicksonx", 0.813},
		{"dwayne", "duane", 0.840},
		{"cheeseburger", "cheese fries", 0.911},
		{"", "", 1},
		{"foo", "", 0},
	}
	for _, tt := range tests {
		if got := JaroWinkler(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("JaroWinkler(%q, %q) = %.4f, want %.3f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestJaroWinklerNoBoostAtOrBelowThreshold(t *testing.T) {
	a, b := "abcdefgh", "abcxyzuv"
	if got, jaro := JaroWinkler(a, b), Jaro(a, b); jaro <= 0.7 && got != jaro {
		t.Fatalf("expected no prefix boost for jaro %.4f, got %.4f", jaro, got)
	}
}

func TestJaroWinklerPrefixBoostCapped(t *testing.T) {
	a, b := "abcdefghij", "abcdefghix"
	jaro := Jaro(a, b)
	want := jaro + 0.1*4*(1-jaro)
	if got := JaroWinkler(a, b); !almostEqual(got, want) {
		t.Fatalf("JaroWinkler = %.4f, want %.4f (prefix capped at 4)", got, want)
	}
}

func TestJaroWinklerUsesCodePoints(t *testing.T) {
	if got := JaroWinkler("flabébé", "flabébé"); got != 1 {
		t.Fatalf("identical multibyte strings scored %.4f", got)
	}
	if got := Jaro("é", "e"); got != 0 {
		t.Fatalf("distinct code points scored %.4f", got)
	}
}

func TestJaroWinklerSymmetric(t *testing.T) {
	pairs := [][2]string{{"zacian-crowned", "zacian-crownedsword"}, {"urshifu-rapidstrike", "urshifu"}, {"bidoof", "bibarel"}}
	for _, p := range pairs {
		if x, y := JaroWinkler(p[0], p[1]), JaroWinkler(p[1], p[0]); !almostEqual(x, y) {
			t.Errorf("JaroWinkler not symmetric for %v: %.4f vs %.4f", p, x, y)
		}
	}
}

func TestCompactName(t *testing.T) {
	tests := map[string]string{
		"  mr. mime ":   "mr.mime",
		"tapu\tkoko":    "tapukoko",
		"":              "",
		"already-tight": "already-tight",
	}
	for in, want := range tests {
		if got := CompactName(in); got != want {
			t.Errorf("CompactName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	for in, want := range map[string]bool{"": true, "01": true, "1a": false, "alola": false} {
		if got := IsNumeric(in); got != want {
			t.Errorf("IsNumeric(%q) = %v, want %v", in, got, want)
		}
	}
}
