package gallery

import (
	"errors"
	"testing"
)

func TestPlatformOf(t *testing.T) {
	cases := map[string]string{
		"pixiv_123_p0": PlatformPixiv,
		"yande_456":    PlatformYande,
		"yande789":     PlatformYande,
		"mtcacg_7_p1":  PlatformMtcACG,
		"twitter_1":    PlatformTwitter,
		"danbooru_2":   PlatformOther,
	}
	for id, want := range cases {
		if got := PlatformOf(id); got != want {
			t.Errorf("PlatformOf(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestPlatformDisplayPriorityAndDedupe(t *testing.T) {
	images := []Image{
		{ID: "twitter_1"},
		{ID: "yande_2"},
		{ID: "pixiv_3_p0"},
		{ID: "pixiv_4_p0"},
		{ID: "weird_5"},
	}
	got := PlatformDisplay(images)
	want := "Pixiv / Yande.re / Twitter / Other"
	if got != want {
		t.Fatalf("PlatformDisplay = %q, want %q", got, want)
	}
}

func TestBuildArtistProfileUnknownArtist(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.BuildArtistProfile("nobody", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBuildArtistProfileSingleRecordDuplicatesCover(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, Image{ID: "pixiv_1_p0", FileName: "only_file", Artist: "solo", CreatedAt: 500})

	profile, err := s.BuildArtistProfile("solo", 1)
	if err != nil {
		t.Fatalf("BuildArtistProfile failed: %v", err)
	}
	if profile.Count != 1 {
		t.Errorf("count = %d, want 1", profile.Count)
	}
	if profile.Cover != "only_file" || profile.CoverAlt != "only_file" {
		t.Errorf("covers = %q/%q, want both only_file", profile.Cover, profile.CoverAlt)
	}
	if profile.LatestAt != 500 {
		t.Errorf("latest = %d, want 500", profile.LatestAt)
	}
	if profile.Platforms != PlatformPixiv {
		t.Errorf("platforms = %q, want %q", profile.Platforms, PlatformPixiv)
	}
}

func TestBuildArtistProfileCoversAndPosts(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, Image{ID: "pixiv_1_p0", FileName: "oldest", Artist: "dup", CreatedAt: 100})
	mustSave(t, s, Image{ID: "yande_2", FileName: "middle", Artist: "dup", CreatedAt: 200})
	mustSave(t, s, Image{ID: "pixiv_3_p0", FileName: "newest", Artist: "dup", CreatedAt: 300})
	mustSave(t, s, Image{ID: "pixiv_9_p0", FileName: "other", Artist: "someone-else", CreatedAt: 400})

	profile, err := s.BuildArtistProfile("dup", 1)
	if err != nil {
		t.Fatalf("BuildArtistProfile failed: %v", err)
	}
	if profile.Count != 3 {
		t.Errorf("count = %d, want 3", profile.Count)
	}
	if profile.Cover != "newest" || profile.CoverAlt != "middle" {
		t.Errorf("covers = %q/%q, want newest/middle", profile.Cover, profile.CoverAlt)
	}
	if profile.Platforms != "Pixiv / Yande.re" {
		t.Errorf("platforms = %q", profile.Platforms)
	}
	if len(profile.Images) != 3 {
		t.Fatalf("posts = %d, want 3", len(profile.Images))
	}
	if profile.Images[0].FileName != "newest" {
		t.Errorf("posts should be newest first, got %q", profile.Images[0].FileName)
	}
}

func TestListArtistsCountsAndCover(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, Image{ID: "pixiv_1_p0", FileName: "a_old", Artist: "alice", CreatedAt: 100, Width: 10, Height: 20})
	mustSave(t, s, Image{ID: "pixiv_2_p0", FileName: "a_new", Artist: "alice", CreatedAt: 200, Width: 30, Height: 40})
	mustSave(t, s, Image{ID: "yande_3", FileName: "b_only", Artist: "bob", CreatedAt: 300})
	mustSave(t, s, Image{ID: "yande_4", FileName: "anon", Artist: "", CreatedAt: 300})

	artists, err := s.ListArtists("", 1)
	if err != nil {
		t.Fatalf("ListArtists failed: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("artist rows = %d, want 2 (blank artists excluded)", len(artists))
	}
	if artists[0].Artist != "alice" || artists[0].Count != 2 {
		t.Fatalf("artists[0] = %+v, want alice with 2", artists[0])
	}
	// Representative cover comes from the most-recent id.
	if artists[0].Cover != "a_new" || artists[0].Width != 30 {
		t.Errorf("alice cover = %+v, want a_new", artists[0])
	}
	if artists[1].Artist != "bob" || artists[1].Count != 1 {
		t.Fatalf("artists[1] = %+v, want bob with 1", artists[1])
	}
}

func TestListArtistsNameFilter(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, Image{ID: "p1", Artist: "sakura"})
	mustSave(t, s, Image{ID: "p2", Artist: "Miko"})

	artists, err := s.ListArtists("kur", 1)
	if err != nil {
		t.Fatalf("ListArtists failed: %v", err)
	}
	if len(artists) != 1 || artists[0].Artist != "sakura" {
		t.Fatalf("filtered artists = %v, want [sakura]", artists)
	}

	// Filter is exact-case.
	artists, err = s.ListArtists("miko", 1)
	if err != nil {
		t.Fatalf("ListArtists failed: %v", err)
	}
	if len(artists) != 0 {
		t.Fatalf("case-sensitive filter matched %v", artists)
	}
}
