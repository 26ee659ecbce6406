package domain

import "testing"

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		if !ValidCategory(c) {
			t.Fatalf("%q should be valid", c)
		}
	}
	for _, c := range []string{"", "Top", "headwear", "dress", "top "} {
		if ValidCategory(c) {
			t.Fatalf("%q should be invalid", c)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"Top":          "top",
		"  OUTERWEAR ": "outerwear",
		"shoes":        "shoes",
		"":             "",
	}
	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Fatalf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTableNames(t *testing.T) {
	if (ClothingItem{}).TableName() != "clothing_items" {
		t.Fatalf("ClothingItem table name: %q", (ClothingItem{}).TableName())
	}
	if (Outfit{}).TableName() != "outfits" {
		t.Fatalf("Outfit table name: %q", (Outfit{}).TableName())
	}
}
