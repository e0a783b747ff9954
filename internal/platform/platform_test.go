package platform

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", "youtube"},
		{"https://youtu.be/abc", "youtube"},
		{"https://fb.watch/xyz/", "facebook"},
		{"https://www.facebook.com/reel/123", "facebook"},
		{"https://www.instagram.com/p/abc/", "instagram"},
		{"https://instagr.am/p/abc/", "instagram"},
	}

	for _, tt := range tests {
		t.Run(tt.want+" "+tt.url, func(t *testing.T) {
			h := Resolve(tt.url)
			if h == nil {
				t.Fatalf("Resolve(%q) = nil", tt.url)
			}
			if h.Name() != tt.want {
				t.Errorf("Resolve(%q).Name() = %q, want %q", tt.url, h.Name(), tt.want)
			}
		})
	}

	if h := Resolve("https://example.com/video"); h != nil {
		t.Errorf("Resolve(unknown) = %v, want nil", h.Name())
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"youtube", "facebook", "instagram"} {
		if h := ByName(name); h == nil || h.Name() != name {
			t.Errorf("ByName(%q) failed", name)
		}
	}
	if h := ByName("vimeo"); h != nil {
		t.Errorf("ByName(\"vimeo\") = %v, want nil", h.Name())
	}
}

func TestRecommendedQuality(t *testing.T) {
	if got := ByName("youtube").RecommendedQuality(); got != "best" {
		t.Errorf("youtube recommended quality = %q, want %q", got, "best")
	}
	if got := ByName("instagram").RecommendedQuality(); got != "720p" {
		t.Errorf("instagram recommended quality = %q, want %q", got, "720p")
	}
}
