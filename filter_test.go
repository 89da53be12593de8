package gallery

import "testing"

func TestSafeConditionsPairsPerKeyword(t *testing.T) {
	f := NewContentFilter([]string{"R18", "NTR"})
	conds := f.SafeConditions()

	if len(conds) != 4 {
		t.Fatalf("condition count = %d, want 4", len(conds))
	}
	want := []Condition{
		{Column: "tags", Pattern: "%R18%"},
		{Column: "caption", Pattern: "%R18%"},
		{Column: "tags", Pattern: "%NTR%"},
		{Column: "caption", Pattern: "%NTR%"},
	}
	for i, cond := range want {
		if conds[i] != cond {
			t.Errorf("conds[%d] = %+v, want %+v", i, conds[i], cond)
		}
	}
}

func TestAllowsRejectsBlockedSubstrings(t *testing.T) {
	f := NewContentFilter([]string{"R18", "NSFW"})

	blocked := []Image{
		{Tags: "R18 nsfw"},
		{Caption: "late night NSFW drop"},
		{Tags: "landscape", Caption: "contains R18 somewhere"},
	}
	for _, img := range blocked {
		if f.Allows(img) {
			t.Errorf("record %+v should be rejected", img)
		}
	}

	clean := Image{Tags: "landscape sunset", Caption: "a quiet field"}
	if !f.Allows(clean) {
		t.Errorf("record %+v should be allowed", clean)
	}
}

func TestAllowsIsCaseSensitive(t *testing.T) {
	f := NewContentFilter([]string{"NSFW"})
	// Matching is exact-case by design; lowercase variants pass through.
	if !f.Allows(Image{Tags: "nsfw"}) {
		t.Fatal("lowercase variant should not match a case-sensitive keyword")
	}
}

func TestSafeClauseEmptyFilter(t *testing.T) {
	f := NewContentFilter(nil)
	clause, args := f.SafeClause()
	if clause != "" || args != nil {
		t.Fatalf("empty filter should yield no clause, got %q %v", clause, args)
	}
}

func TestDefaultBlocklistNonEmpty(t *testing.T) {
	if len(DefaultBlocklist) == 0 {
		t.Fatal("default blocklist must not be empty")
	}
}
