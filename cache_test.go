package gallery

import (
	"net/http"
	"testing"
	"time"
)

func TestAssetCachePutGet(t *testing.T) {
	cache, err := NewAssetCache(4, time.Minute)
	if err != nil {
		t.Fatalf("NewAssetCache failed: %v", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "image/jpeg")
	cache.Put("/image/abc", http.StatusOK, header, []byte("bytes"))

	entry, ok := cache.Get("/image/abc")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if entry.Status != http.StatusOK {
		t.Errorf("status = %d", entry.Status)
	}
	if string(entry.Body) != "bytes" {
		t.Errorf("body = %q", entry.Body)
	}
	if entry.Header.Get("Content-Type") != "image/jpeg" {
		t.Errorf("header lost: %v", entry.Header)
	}
}

func TestAssetCacheMiss(t *testing.T) {
	cache, err := NewAssetCache(4, time.Minute)
	if err != nil {
		t.Fatalf("NewAssetCache failed: %v", err)
	}
	if _, ok := cache.Get("/image/unknown"); ok {
		t.Fatal("expected a miss")
	}
}

func TestAssetCacheKeyIncludesQuery(t *testing.T) {
	cache, err := NewAssetCache(4, time.Minute)
	if err != nil {
		t.Fatalf("NewAssetCache failed: %v", err)
	}
	cache.Put("/image/abc?dl=jpg", http.StatusOK, http.Header{}, []byte("dl"))

	if _, ok := cache.Get("/image/abc"); ok {
		t.Fatal("bare path must not hit the download variant")
	}
	if _, ok := cache.Get("/image/abc?dl=jpg"); !ok {
		t.Fatal("expected a hit for the full key")
	}
}

func TestAssetCacheExpiry(t *testing.T) {
	cache, err := NewAssetCache(4, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("NewAssetCache failed: %v", err)
	}
	cache.Put("/image/abc", http.StatusOK, http.Header{}, []byte("x"))

	time.Sleep(60 * time.Millisecond)
	if _, ok := cache.Get("/image/abc"); ok {
		t.Fatal("expected the entry to expire")
	}
}

func TestAssetCacheBounded(t *testing.T) {
	cache, err := NewAssetCache(2, time.Minute)
	if err != nil {
		t.Fatalf("NewAssetCache failed: %v", err)
	}
	cache.Put("a", http.StatusOK, http.Header{}, nil)
	cache.Put("b", http.StatusOK, http.Header{}, nil)
	cache.Put("c", http.StatusOK, http.Header{}, nil)

	if cache.Len() != 2 {
		t.Fatalf("len = %d, want LRU bound of 2", cache.Len())
	}
	if _, ok := cache.Get("a"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
}
