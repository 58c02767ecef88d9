package classifier

import "testing"

func TestPlainText(t *testing.T) {
	in := "**Great** product, see [the listing](https://example.com/item) or www.example.com"
	got := PlainText(in)
	want := "Great product, see the listing or"
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextKeepsEntities(t *testing.T) {
	got := PlainText(`Fast & "cheap"`)
	want := `Fast & "cheap"`
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}
