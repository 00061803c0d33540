package token

import "testing"

func wordsOf(words ...string) func(int) (string, bool) {
	return func(n int) (string, bool) {
		if n < 0 || n >= len(words) {
			return "", false
		}
		return words[n], true
	}
}

func TestMatchKeywordSingleWord(t *testing.T) {
	kind, consumed, ok := MatchKeywordAt(wordsOf("store", "x"))
	if !ok || kind != STORE || consumed != 1 {
		t.Fatalf("got kind=%v consumed=%d ok=%v", kind, consumed, ok)
	}
}

func TestMatchKeywordLongestMatch(t *testing.T) {
	kind, consumed, ok := MatchKeywordAt(wordsOf("end", "action"))
	if !ok || kind != END_ACTION || consumed != 2 {
		t.Fatalf("got kind=%v consumed=%d ok=%v", kind, consumed, ok)
	}

	kind, consumed, ok = MatchKeywordAt(wordsOf("end", "banana"))
	if !ok || kind != END || consumed != 1 {
		t.Fatalf("expected fallback to plain END, got kind=%v consumed=%d ok=%v", kind, consumed, ok)
	}
}

func TestMatchKeywordThreeWordPhrase(t *testing.T) {
	kind, consumed, ok := MatchKeywordAt(wordsOf("is", "equal", "to", "something"))
	if !ok || kind != IS_EQUAL_TO || consumed != 3 {
		t.Fatalf("got kind=%v consumed=%d ok=%v", kind, consumed, ok)
	}
}

func TestMatchKeywordNoMatchFallsBackToIdentifier(t *testing.T) {
	_, _, ok := MatchKeywordAt(wordsOf("frobnicate"))
	if ok {
		t.Fatal("expected no keyword match for non-keyword word")
	}
}

func TestKeywordTextRoundTrip(t *testing.T) {
	text, ok := KeywordText(DIVIDED_BY)
	if !ok || text != "divided by" {
		t.Fatalf("got text=%q ok=%v", text, ok)
	}
}

func TestInternReturnsCanonicalCopy(t *testing.T) {
	a := Intern("hello")
	b := Intern("hello")
	if a != b {
		t.Fatalf("expected interned strings to be equal, got %q and %q", a, b)
	}
}
