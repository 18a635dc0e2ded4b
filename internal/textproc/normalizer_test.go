package textproc

import (
	"reflect"
	"testing"
)

func testMappings() map[string]string {
	return map[string]string{
		"gak":    "tidak",
		"blo on": "bodoh",
		"on":     "aktif",
		"bgt":    "sekali",
	}
}

func TestNormalizeCasePreservation(t *testing.T) {
	n := NewNormalizer(testMappings())
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase match", "gak mau", "tidak mau"},
		{"capitalized match", "Gak mau", "Tidak mau"},
		{"all upper match", "GAK mau", "TIDAK mau"},
		{"no match inside longer word", "anggak mau", "anggak mau"},
		{"multiple matches", "gak bisa gak mau", "tidak bisa tidak mau"},
		{"punctuation boundary", "gak!", "tidak!"},
		{"empty input", "", ""},
		{"no dictionary words", "semua kata baku", "semua kata baku"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeMultiWordKey(t *testing.T) {
	n := NewNormalizer(testMappings())
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"multi-word key wins over its suffix", "dia blo on banget", "dia bodoh banget"},
		{"suffix word alone still matches", "lampunya on terus", "lampunya aktif terus"},
		{"multi-word key capitalized", "Blo on sekali", "Bodoh sekali"},
		{"two spaces break the multi-word key", "blo  on", "blo  aktif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Keren BANGET, nomor_1 bro!")
	want := []string{"keren", "banget", "nomor_1", "bro"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
	if Tokenize("!!! ...") != nil {
		t.Errorf("Tokenize of punctuation-only text should be nil")
	}
}
