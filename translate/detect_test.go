package translate

import (
	"errors"
	"testing"
)

func TestLinguaDetector(t *testing.T) {
	if testing.Short() {
		t.Skip("lingua model loading is slow")
	}
	d := NewLinguaDetector()

	tests := []struct {
		text string
		want string
	}{
		{text: "the quick brown fox jumps over the lazy dog", want: "en"},
		{text: "el rápido zorro marrón salta sobre el perro perezoso", want: "es"},
		{text: "der schnelle braune Fuchs springt über den faulen Hund", want: "de"},
	}

	for _, tc := range tests {
		got, err := d.Detect(tc.text)
		if err != nil {
			t.Fatalf("Detect(%q): %v", tc.text, err)
		}
		if got != tc.want {
			t.Fatalf("Detect(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}

	if _, err := d.Detect(""); !errors.Is(err, ErrIndeterminate) {
		t.Fatalf("empty text: err = %v, want ErrIndeterminate", err)
	}
}
