package inference

import (
	"errors"
	"testing"
)

func TestExtractJSONObject_PlainObject(t *testing.T) {
	raw, err := ExtractJSONObject(`{"name":"shirt"}`)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(raw) != `{"name":"shirt"}` {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestExtractJSONObject_ObjectInsideProse(t *testing.T) {
	text := "Sure! Here is the outfit you asked for:\n```json\n" +
		`{"outfit":["a","b"],"explanation":"works"}` +
		"\n```\nEnjoy {your day}!"
	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(raw) != `{"outfit":["a","b"],"explanation":"works"}` {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestExtractJSONObject_NestedObjects(t *testing.T) {
	raw, err := ExtractJSONObject(`prefix {"a":{"b":{"c":1}},"d":2} suffix`)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(raw) != `{"a":{"b":{"c":1}},"d":2}` {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	// The closing brace inside the string value must not end the span, and
	// the escaped quote must not end the string.
	in := `{"description":"a {weird} \"value\" with } braces"}`
	raw, err := ExtractJSONObject("noise " + in + " trailing }")
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(raw) != in {
		t.Fatalf("unexpected span: %s", raw)
	}
}

func TestExtractJSONObject_NoBrace(t *testing.T) {
	if _, err := ExtractJSONObject("the model refused to answer"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractJSONObject_UnbalancedBraces(t *testing.T) {
	if _, err := ExtractJSONObject(`{"name":"cut off`); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestDecodeObject_EmptyText(t *testing.T) {
	var c Classification
	if err := decodeObject("   \n", &c); !errors.Is(err, ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
}

func TestDecodeObject_UnparsableSpan(t *testing.T) {
	var c Classification
	// Balanced braces but invalid JSON inside.
	if err := decodeObject(`{name: shirt}`, &c); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestDecodeObject_Classification(t *testing.T) {
	var c Classification
	text := `{"name":"Denim Jacket","category":"outerwear","color":"blue",` +
		`"description":"classic trucker","tags":["denim","casual"]}`
	if err := decodeObject(text, &c); err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	if c.Name != "Denim Jacket" || c.Category != "outerwear" || len(c.Tags) != 2 {
		t.Fatalf("unexpected classification: %+v", c)
	}
}

func TestDecodeObject_OutfitSelection(t *testing.T) {
	var sel OutfitSelection
	text := `Here you go: {"outfit":["id-1","id-2","id-3"],"explanation":"balanced look"}`
	if err := decodeObject(text, &sel); err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	if len(sel.ItemIDs) != 3 || sel.ItemIDs[0] != "id-1" || sel.Explanation != "balanced look" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
}
