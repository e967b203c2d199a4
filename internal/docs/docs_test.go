package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	want := []string{"backfill", "belt", "config", "orbit"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics() = %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" Belt ")
	if !ok || !strings.HasPrefix(body, "# Priority belt") {
		t.Fatalf("Get(belt) = %q, %v", body, ok)
	}
	for _, topic := range []string{"", "nope", "../docs"} {
		if _, ok := Get(topic); ok {
			t.Fatalf("expected Get(%q) to fail", topic)
		}
	}
}
