package domain

import (
	"encoding/json"
	"testing"

	kit "shelfwatch/internal/platform/testkit"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]CategoryID{
		"comics":    Comics,
		" LNovel ":  LNovel,
		"ITBOOK\t":  ITBook,
		"   ":       "",
		"manga_new": "manga_new",
	}
	for in, want := range cases {
		if got := ParseCategory(in); got != want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCategoryID_UnmarshalNormalizes(t *testing.T) {
	var got []CategoryID
	if err := json.Unmarshal([]byte(`["Comics", " itbook", "LNOVEL "]`), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	kit.MustEqualSlice(t, "categories", got, []CategoryID{Comics, ITBook, LNovel})

	var one CategoryID
	if err := json.Unmarshal([]byte(`42`), &one); err == nil {
		t.Fatal("non-string category must fail")
	}
}
