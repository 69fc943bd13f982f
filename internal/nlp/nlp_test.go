package nlp_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"capcorpus/internal/nlp"
)

func TestNewStemmerSelection(t *testing.T) {
	tests := []struct {
		name, lang, want string
	}{
		{"snowball", "en", "snowball:english"},
		{"", "en", "porter"},
		{"", "es", "porter"},
		{"snowball", "es", "snowball:spanish"},
		{"snowball", "ja", "porter"},
		{"porter", "en", "porter"},
		{"Porter", "fr", "porter"},
	}
	for _, tt := range tests {
		s, err := nlp.NewStemmer(tt.name, tt.lang)
		if err != nil {
			t.Fatalf("NewStemmer(%q, %q): %v", tt.name, tt.lang, err)
		}
		if s.Name() != tt.want {
			t.Errorf("NewStemmer(%q, %q).Name() = %q, want %q", tt.name, tt.lang, s.Name(), tt.want)
		}
	}
	if _, err := nlp.NewStemmer("lancaster", "en"); err == nil {
		t.Fatal("expected error for unknown stemmer")
	}
}

func TestEnglishStopwords(t *testing.T) {
	sw := nlp.EnglishStopwords()
	if sw.Len() < 150 {
		t.Fatalf("expected full english list, got %d words", sw.Len())
	}
	for _, w := range []string{"the", "The", "AND", "don't", "don’t", "itself"} {
		if !sw.Contains(w) {
			t.Errorf("expected %q to be a stopword", w)
		}
	}
	for _, w := range []string{"apple", "running", ""} {
		if sw.Contains(w) {
			t.Errorf("did not expect %q to be a stopword", w)
		}
	}
	var nilSet *nlp.Stopwords
	if nilSet.Contains("the") {
		t.Error("nil set must be empty")
	}
}

func TestParseStopwordsSkipsComments(t *testing.T) {
	sw := nlp.ParseStopwords("# header\nfoo\n\n  Bar  \n")
	if sw.Len() != 2 || !sw.Contains("bar") || sw.Contains("# header") {
		t.Fatalf("unexpected set contents, len=%d", sw.Len())
	}
}

func TestWords(t *testing.T) {
	if diff := cmp.Diff([]string{"e", "mail", "it", "s"}, nlp.Words("e-mail it's")); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}
}

func TestStopwordsFor(t *testing.T) {
	if got := nlp.StopwordsFor("eng"); got == nil || !got.Contains("The") {
		t.Fatalf("expected english list for eng, got %v", got)
	}
	if got := nlp.StopwordsFor("ja"); got != nil {
		t.Fatalf("expected no list for ja, got %d words", got.Len())
	}
}
