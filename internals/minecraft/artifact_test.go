package minecraft

import "testing"

func TestArtifactFromName(t *testing.T) {
	tests := []struct {
		name     string
		repo     string
		wantPath string
		wantURL  string
	}{
		{
			name:     "com.mojang:patchy:1.1",
			repo:     DefaultRepository,
			wantPath: "com/mojang/patchy/1.1/patchy-1.1.jar",
			wantURL:  "https://libraries.minecraft.net/com/mojang/patchy/1.1/patchy-1.1.jar",
		},
		{
			name:     "org.lwjgl:lwjgl:3.2.2:natives-linux",
			repo:     "https://maven.example.com/",
			wantPath: "org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2-natives-linux.jar",
			wantURL:  "https://maven.example.com/org/lwjgl/lwjgl/3.2.2/lwjgl-3.2.2-natives-linux.jar",
		},
		{
			name:     "a.b:c:1:x:y",
			repo:     "http://repo",
			wantPath: "a/b/c/1/c-1-x-y.jar",
			wantURL:  "http://repo/a/b/c/1/c-1-x-y.jar",
		},
		{
			name:     "broken:name",
			repo:     DefaultRepository,
			wantPath: "broken-name.jar",
		},
		{
			name:     "single",
			repo:     DefaultRepository,
			wantPath: "single.jar",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArtifactFromName(tt.name, tt.repo)
			if got.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", got.Path, tt.wantPath)
			}
			if got.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", got.URL, tt.wantURL)
			}
			if got != ArtifactFromName(tt.name, tt.repo) {
				t.Errorf("ArtifactFromName is not deterministic")
			}
		})
	}
}

func TestArtifact_With(t *testing.T) {
	original := Artifact{URL: "http://a", Path: "a.jar", SHA1: "abc"}
	changed := original.WithSHA1("def").WithURL("http://b").WithPath("b.jar")

	if original.SHA1 != "abc" || original.URL != "http://a" || original.Path != "a.jar" {
		t.Errorf("original artifact was modified: %+v", original)
	}
	want := Artifact{URL: "http://b", Path: "b.jar", SHA1: "def"}
	if changed != want {
		t.Errorf("changed = %+v, want %+v", changed, want)
	}
}

func TestArtifact_IsDownloadable(t *testing.T) {
	if (Artifact{Path: "a.jar"}).IsDownloadable() {
		t.Error("artifact without url should not be downloadable")
	}
	if !(Artifact{URL: "http://a"}).IsDownloadable() {
		t.Error("artifact with url should be downloadable")
	}
}

func TestParseArtifact(t *testing.T) {
	def := Artifact{Path: "client.jar", URL: "http://default"}
	raw := map[string]interface{}{
		"sha1": "abc",
		"size": 1234.0,
		"url":  "http://explicit",
	}

	got, err := ParseArtifact(raw, def, "client")
	if err != nil {
		t.Fatal(err)
	}
	want := Artifact{Path: "client.jar", URL: "http://explicit", SHA1: "abc", Size: 1234}
	if got != want {
		t.Errorf("ParseArtifact() = %+v, want %+v", got, want)
	}

	empty, err := ParseArtifact(nil, def, "client")
	if err != nil {
		t.Fatal(err)
	}
	if empty != def {
		t.Errorf("missing artifact should be the default, got %+v", empty)
	}

	if _, err := ParseArtifact("nope", def, "client"); err == nil {
		t.Error("expected error for non object artifact")
	}
}
