package cubetrainer

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "r u r' u'", "R U R' U'"},
		{"stray word dropped", "R2 hello U'", "R2 U'"},
		{"empty", "", ""},
		{"only noise", "hello world 123", ""},
		{"commas", "R,U,,F", "R U F"},
		{"comma and space", "R, U', F2", "R U' F2"},
		{"curly apostrophes", "R’ U‘", "R' U'"},
		{"backtick", "R`", "R'"},
		{"prime symbol", "F′", "F'"},
		{"mojibake apostrophe", "Râ€™ U", "R' U"},
		{"fullwidth", "Ｒ＇，Ｕ２　Ｆ", "R' U2 F"},
		{"prime wins over half turn", "R2' U'2 f2’", "R' U' F'"},
		{"extra characters ignored", "Rw U! Fxyz", "R U F"},
		{"rotations and slices dropped", "x y z M2 E S'", ""},
		{"tabs and newlines", "R\tU\nF'\r\nB2", "R U F' B2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAlgorithm(tt.in)
			if got == nil {
				t.Fatal("ParseAlgorithm returned nil, want an empty slice")
			}
			if s := FormatMoves(got); s != tt.want {
				t.Errorf("ParseAlgorithm(%q) = %q, want %q", tt.in, s, tt.want)
			}
		})
	}
}

func TestParseAlgorithmRoundTrip(t *testing.T) {
	if got := ParseAlgorithm(FormatMoves(AllMoves)); !reflect.DeepEqual(got, AllMoves) {
		t.Errorf("round trip of all moves = %s", FormatMoves(got))
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		moves := randomMoves(rng, rng.Intn(30)+1)
		if got := ParseAlgorithm(FormatMoves(moves)); !reflect.DeepEqual(got, moves) {
			t.Errorf("round trip of %s = %s", FormatMoves(moves), FormatMoves(got))
		}
	}
}

func TestParsePolicyCaseSensitive(t *testing.T) {
	p := DefaultParsePolicy()
	p.FoldCase = false
	if got := FormatMoves(p.Parse("r U f' F'")); got != "U F'" {
		t.Errorf("case-sensitive parse = %q", got)
	}
}

func TestParsePolicyCustomMarks(t *testing.T) {
	p := DefaultParsePolicy()
	p.PrimeMarks = []string{"i"}
	if got := FormatMoves(p.Parse("Ri U' Ui")); got != "R' U U'" {
		t.Errorf("custom marks parse = %q", got)
	}
}

func TestParsePolicyWithoutWidthFolding(t *testing.T) {
	p := DefaultParsePolicy()
	p.FoldWidth = false
	if got := FormatMoves(p.Parse("Ｒ R")); got != "R" {
		t.Errorf("parse without width folding = %q", got)
	}
}

func TestDefaultParsePolicyIsolated(t *testing.T) {
	p := DefaultParsePolicy()
	p.PrimeMarks[0] = "x"
	if DefaultPrimeMarks[0] != "'" {
		t.Error("DefaultParsePolicy shares its marks with DefaultPrimeMarks")
	}
}
