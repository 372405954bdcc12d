package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := Topics()
	want := []Topic{
		{Name: "config", Title: "Configuration"},
		{Name: "keys", Title: "Keys"},
		{Name: "locales", Title: "Locales"},
		{Name: "picker", Title: "Picker"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d topics, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("topic %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Keys ")
	if !ok || !strings.Contains(body, "enter") {
		t.Fatalf("expected keys topic, got ok=%v", ok)
	}
	for _, bad := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
