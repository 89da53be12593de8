package gallery

import (
	"strings"
	"testing"
)

func TestSearchQueryTokenConditions(t *testing.T) {
	q := SearchQuery("#cat dog", 0)

	if got := strings.Count(q.SQL, "(tags LIKE ? OR caption LIKE ?)"); got != 2 {
		t.Fatalf("token condition count = %d, want 2", got)
	}
	// Two bound patterns per token, plus the offset.
	if len(q.Args) != 5 {
		t.Fatalf("args = %v, want 5 values", q.Args)
	}
	want := []any{"%cat%", "%cat%", "%dog%", "%dog%", 0}
	for i, arg := range want {
		if q.Args[i] != arg {
			t.Errorf("args[%d] = %v, want %v", i, q.Args[i], arg)
		}
	}
	if !strings.Contains(q.SQL, "LIMIT 20") {
		t.Errorf("query should be limited to the fixed page size: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "ORDER BY created_at DESC") {
		t.Errorf("query should order by created_at descending: %s", q.SQL)
	}
}

func TestSearchQueryStripsHashes(t *testing.T) {
	q := SearchQuery("#genshin#", 3)
	if q.Args[0] != "%genshin%" {
		t.Fatalf("args[0] = %v, want %%genshin%%", q.Args[0])
	}
	if q.Args[len(q.Args)-1] != 3 {
		t.Fatalf("offset arg = %v, want 3", q.Args[len(q.Args)-1])
	}
}

func TestSearchQueryBlankFallsBackToListing(t *testing.T) {
	for _, input := range []string{"", "   ", "##", "# #"} {
		q := SearchQuery(input, 7)
		listing := ListingQuery(7)
		if q.SQL != listing.SQL {
			t.Errorf("SearchQuery(%q) sql = %q, want listing sql", input, q.SQL)
		}
		if len(q.Args) != 1 || q.Args[0] != 7 {
			t.Errorf("SearchQuery(%q) args = %v, want [7]", input, q.Args)
		}
	}
}

func TestRandomQueryHasNoFilter(t *testing.T) {
	q := RandomQuery()
	if strings.Contains(q.SQL, "WHERE") {
		t.Fatalf("random pick must not filter: %s", q.SQL)
	}
	if !strings.Contains(q.SQL, "ORDER BY RANDOM() LIMIT 1") {
		t.Fatalf("random pick should select exactly one row: %s", q.SQL)
	}
}

func TestSafeRandomQueryNilFilter(t *testing.T) {
	q := SafeRandomQuery(nil)
	if strings.Contains(q.SQL, "WHERE") || len(q.Args) != 0 {
		t.Fatalf("nil filter should behave like RandomQuery: %s %v", q.SQL, q.Args)
	}
}

func TestSafeRandomQueryAppliesBlocklist(t *testing.T) {
	f := NewContentFilter([]string{"R18", "NSFW"})
	q := SafeRandomQuery(f)
	if got := strings.Count(q.SQL, "(tags NOT LIKE ? AND caption NOT LIKE ?)"); got != 2 {
		t.Fatalf("exclusion group count = %d, want 2", got)
	}
	if len(q.Args) != 4 {
		t.Fatalf("args = %v, want 4 values", q.Args)
	}
	if q.Args[0] != "%R18%" || q.Args[2] != "%NSFW%" {
		t.Fatalf("patterns out of order: %v", q.Args)
	}
}

func TestArtistListQueryPaging(t *testing.T) {
	q := ArtistListQuery("", 3)
	if !strings.Contains(q.SQL, "LIMIT 50") {
		t.Fatalf("artist page size should be 50: %s", q.SQL)
	}
	if q.Args[len(q.Args)-1] != 100 {
		t.Fatalf("page 3 offset = %v, want 100", q.Args[len(q.Args)-1])
	}
	if strings.Contains(q.SQL, "artist LIKE") {
		t.Fatalf("no name filter expected: %s", q.SQL)
	}
}

func TestArtistListQueryNameFilter(t *testing.T) {
	q := ArtistListQuery("miko", 1)
	if !strings.Contains(q.SQL, "artist LIKE ?") {
		t.Fatalf("name filter missing: %s", q.SQL)
	}
	if q.Args[0] != "%miko%" {
		t.Fatalf("args[0] = %v, want %%miko%%", q.Args[0])
	}
	if q.Args[len(q.Args)-1] != 0 {
		t.Fatalf("page 1 offset = %v, want 0", q.Args[len(q.Args)-1])
	}
}

func TestParseOffset(t *testing.T) {
	cases := map[string]int{
		"":    0,
		"x":   0,
		"-5":  0,
		"0":   0,
		"40":  40,
		" 20": 20,
	}
	for input, want := range cases {
		if got := ParseOffset(input); got != want {
			t.Errorf("ParseOffset(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":   1,
		"x":  1,
		"0":  1,
		"-3": 1,
		"2":  2,
	}
	for input, want := range cases {
		if got := ParsePage(input); got != want {
			t.Errorf("ParsePage(%q) = %d, want %d", input, got, want)
		}
	}
}
