package anonymize

import "testing"

func TestResolveOverlapsLongerWins(t *testing.T) {
	full := Span{Start: 0, End: 20, Type: EntityPersonName, Text: "aaaaaaaaaaaaaaaaaaaa"}
	partial := Span{Start: 5, End: 15, Type: EntityPhone, Text: "aaaaaaaaaa"}

	got := ResolveOverlaps([]Span{partial, full})

	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1", len(got))
	}
	if got[0] != full {
		t.Errorf("kept %+v, want the longer span", got[0])
	}
}

func TestResolveOverlapsDisjointKept(t *testing.T) {
	a := Span{Start: 0, End: 5, Type: EntityPhone}
	b := Span{Start: 5, End: 10, Type: EntityEmail} // adjacent, not overlapping

	got := ResolveOverlaps([]Span{a, b})
	if len(got) != 2 {
		t.Errorf("got %d spans, want both adjacent spans kept", len(got))
	}
}

func TestResolveOverlapsDeterministic(t *testing.T) {
	spans := []Span{
		{Start: 0, End: 10, Type: EntityPhone},
		{Start: 8, End: 18, Type: EntityEmail},
	}
	forward := ResolveOverlaps(spans)
	reversed := ResolveOverlaps([]Span{spans[1], spans[0]})

	if len(forward) != 1 || len(reversed) != 1 {
		t.Fatalf("want exactly one survivor, got %d and %d", len(forward), len(reversed))
	}
	if forward[0] != reversed[0] {
		t.Errorf("input order changed the outcome: %+v vs %+v", forward[0], reversed[0])
	}
}

func TestResolveOverlapsEmpty(t *testing.T) {
	if got := ResolveOverlaps(nil); got != nil {
		t.Errorf("ResolveOverlaps(nil) = %v, want nil", got)
	}
}
