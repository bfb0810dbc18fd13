package payment

import (
	"testing"

	"github.com/Samerabualsoud/jam3a-payments/internal/domain/platform"
)

func TestCatalogIOS(t *testing.T) {
	methods := Catalog(platform.IOS)

	if len(methods) != 5 {
		t.Fatalf("iOS catalog has %d entries, want 5", len(methods))
	}
	if last := methods[len(methods)-1]; last.ID != "apple-pay" {
		t.Errorf("iOS catalog ends with %q, want apple-pay", last.ID)
	}
}

func TestCatalogAndroid(t *testing.T) {
	methods := Catalog(platform.Android)

	if len(methods) != 5 {
		t.Fatalf("Android catalog has %d entries, want 5", len(methods))
	}
	if last := methods[len(methods)-1]; last.ID != "google-pay" {
		t.Errorf("Android catalog ends with %q, want google-pay", last.ID)
	}
}

func TestCatalogBaseEntriesIdenticalAcrossPlatforms(t *testing.T) {
	ios := Catalog(platform.IOS)
	android := Catalog(platform.Android)

	wantOrder := []string{"credit-card", "mada", "stc-pay", "tabby"}
	for i, id := range wantOrder {
		if ios[i].ID != id {
			t.Errorf("iOS entry %d = %q, want %q", i, ios[i].ID, id)
		}
		if ios[i] != android[i] {
			t.Errorf("entry %d differs across platforms: %+v vs %+v", i, ios[i], android[i])
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog(platform.IOS)
	first[0].Name = "mutated"

	second := Catalog(platform.IOS)
	if second[0].Name == "mutated" {
		t.Error("catalog entries must not share backing storage across calls")
	}
}
