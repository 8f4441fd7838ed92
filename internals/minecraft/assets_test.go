package minecraft

import (
	"regexp"
	"testing"
)

func TestParseAssetIndex(t *testing.T) {
	index, err := ParseAssetIndex([]byte(`{"virtual": true, "objects": {
		"icons/icon_16x16.png": {"hash": "bdf48ef6b5d0d23bbb02e17d04865216179f510a", "size": 3618}
	}}`))
	if err != nil {
		t.Fatal(err)
	}
	if !index.Virtual || index.MapToResources {
		t.Errorf("unexpected flags %+v", index)
	}

	obj := index.Objects["icons/icon_16x16.png"]
	artifact := obj.Artifact(DefaultAssetsBase + "/")
	if artifact.URL != "https://resources.download.minecraft.net/bd/bdf48ef6b5d0d23bbb02e17d04865216179f510a" {
		t.Errorf("unexpected url %s", artifact.URL)
	}
	if artifact.Path != "objects/bd/bdf48ef6b5d0d23bbb02e17d04865216179f510a" || artifact.Size != 3618 {
		t.Errorf("unexpected artifact %+v", artifact)
	}

	if _, err := ParseAssetIndex([]byte(`{`)); err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestParseAssetIndex_InvalidHash(t *testing.T) {
	for _, object := range []string{
		`{}`,
		`{"hash": "a", "size": 1}`,
		`{"hash": "zzf48ef6b5d0d23bbb02e17d04865216179f510a", "size": 1}`,
	} {
		_, err := ParseAssetIndex([]byte(`{"objects": {"minecraft/sounds/a.ogg": ` + object + `}}`))
		if err == nil {
			t.Errorf("expected error for object %s", object)
		}
	}
}

func TestAssetObject_ShortHash(t *testing.T) {
	if got := (AssetObject{Hash: "a"}).UnixPath(); got != "a" {
		t.Errorf("unexpected path %s", got)
	}
	if got := (AssetObject{}).Artifact(DefaultAssetsBase).Path; got != "objects/" {
		t.Errorf("unexpected path %s", got)
	}
}

func TestAssetIndexRef_Artifact(t *testing.T) {
	ref := AssetIndexRef{ID: "1.19", URL: "https://example.com/1.19.json", SHA1: "abc", Size: 10}
	if got := ref.Artifact().Path; got != "indexes/1.19.json" {
		t.Errorf("unexpected path %s", got)
	}
}

func TestNewOfflineUser(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9a-f]{32}$`)
	a := NewOfflineUser("Steve")
	b := NewOfflineUser("Steve")

	if a.GetPlayerName() != "Steve" || a.GetUserType() != "legacy" || a.GetXUID() != "" {
		t.Errorf("unexpected user %+v", a)
	}
	if !hex.MatchString(a.GetUUID()) || !hex.MatchString(a.GetAccessToken()) {
		t.Errorf("tokens are not hex: %s %s", a.GetUUID(), a.GetAccessToken())
	}
	if a.GetUUID() == b.GetUUID() {
		t.Error("uuids should be random")
	}
}
