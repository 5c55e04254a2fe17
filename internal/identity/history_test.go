package identity

import (
	"reflect"
	"testing"
)

func TestMergeRecent_EmptyHistory(t *testing.T) {
	got := MergeRecent(nil, "a")
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected [a], got %v", got)
	}
}

func TestMergeRecent_HeadUnchanged(t *testing.T) {
	history := []string{"a", "b"}
	got := MergeRecent(history, "a")
	if !reflect.DeepEqual(got, history) {
		t.Fatalf("expected history unchanged, got %v", got)
	}
}

func TestMergeRecent_PromotesDuplicate(t *testing.T) {
	got := MergeRecent([]string{"a", "b", "c"}, "b")
	if !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("expected duplicate promoted to head, got %v", got)
	}
}

func TestMergeRecent_CapsLength(t *testing.T) {
	got := MergeRecent([]string{"a", "b", "c"}, "d")
	if !reflect.DeepEqual(got, []string{"d", "a", "b"}) {
		t.Fatalf("expected oldest entry dropped, got %v", got)
	}
	if len(got) != HistoryLimit {
		t.Fatalf("expected %d entries, got %d", HistoryLimit, len(got))
	}
}
