package inference

import (
	"strings"
	"testing"
)

func TestCandidateLine_Format(t *testing.T) {
	got := candidateLine(Candidate{
		ID:          "abc-123",
		Category:    "top",
		Name:        "White Oxford Shirt",
		Color:       "white",
		Description: "button-down collar",
	})
	want := "ID: abc-123 - top: White Oxford Shirt (white) - button-down collar"
	if got != want {
		t.Fatalf("candidateLine:\n got %q\nwant %q", got, want)
	}
}

func TestBuildOutfitPrompt_ContainsOccasionAndCandidates(t *testing.T) {
	cands := []Candidate{
		{ID: "a", Category: "top", Name: "Tee", Color: "black", Description: "plain"},
		{ID: "b", Category: "shoes", Name: "Runners", Color: "white", Description: "mesh"},
	}
	p := buildOutfitPrompt("gym session", cands)

	if !strings.Contains(p, `"gym session"`) {
		t.Fatalf("prompt missing quoted occasion:\n%s", p)
	}
	for _, c := range cands {
		if !strings.Contains(p, candidateLine(c)) {
			t.Fatalf("prompt missing candidate line for %s:\n%s", c.ID, p)
		}
	}
	// The reply contract must be spelled out.
	if !strings.Contains(p, `"outfit"`) || !strings.Contains(p, `"explanation"`) {
		t.Fatalf("prompt missing reply shape:\n%s", p)
	}
	if !strings.Contains(p, "Select 3-5 items") {
		t.Fatalf("prompt missing selection guidance:\n%s", p)
	}
}

func TestClassifyInstruction_NamesAllFields(t *testing.T) {
	for _, field := range []string{`"name"`, `"category"`, `"color"`, `"description"`, `"tags"`} {
		if !strings.Contains(classifyInstruction, field) {
			t.Fatalf("classify instruction missing %s", field)
		}
	}
	if !strings.Contains(classifyInstruction, "top/bottom/shoes/accessory/outerwear") {
		t.Fatalf("classify instruction missing category enumeration")
	}
}
