package expand_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"capcorpus/internal/align"
	"capcorpus/internal/expand"
)

func mustExpand(t *testing.T, autogen, manual string) expand.Slots {
	t.Helper()
	a, m := strings.Fields(autogen), strings.Fields(manual)
	segs, err := align.Align(a, m)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	slots, err := expand.Expand(segs)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	return slots
}

func TestExpandIdentical(t *testing.T) {
	slots := mustExpand(t, "the quick fox", "the quick fox")
	want := expand.Slots{
		{Agreement: expand.BothAgree, CommonToken: "the"},
		{Agreement: expand.BothAgree, CommonToken: "quick"},
		{Agreement: expand.BothAgree, CommonToken: "fox"},
	}
	if diff := cmp.Diff(want, slots); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
	if slots.Count(expand.BothDiffer) != 0 {
		t.Fatal("expected no BothDiffer slots")
	}
}

func TestExpandReplaceBlockRepeatsManualRun(t *testing.T) {
	slots := mustExpand(t, "I am going to go", "I am gonna go")
	want := expand.Slots{
		{Agreement: expand.BothAgree, CommonToken: "I"},
		{Agreement: expand.BothAgree, CommonToken: "am"},
		{Agreement: expand.BothDiffer, AutogenToken: "going", ManualToken: "gonna", ExtraRepeats: 1},
		{Agreement: expand.BothDiffer, AutogenToken: "to", ManualToken: "gonna", ExtraRepeats: 1},
		{Agreement: expand.BothAgree, CommonToken: "go"},
	}
	if diff := cmp.Diff(want, slots); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandInsertions(t *testing.T) {
	segs := []align.Segment{
		align.Equal("so"),
		align.AutogenOnly("um", "uh"),
		align.ManualOnly("you", "know"),
		align.Equal("yes"),
	}
	slots, err := expand.Expand(segs)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := expand.Slots{
		{Agreement: expand.BothAgree, CommonToken: "so"},
		{Agreement: expand.AutogenInsert, AutogenToken: "um"},
		{Agreement: expand.AutogenInsert, AutogenToken: "uh"},
		{Agreement: expand.ManualInsert, ManualToken: "you know"},
		{Agreement: expand.BothAgree, CommonToken: "yes"},
	}
	if diff := cmp.Diff(want, slots); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"so", "um", "uh", "", "yes"}, expand.AutogenReconstruct(slots)); diff != "" {
		t.Fatalf("baseline mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructRoundTrip(t *testing.T) {
	cases := [][2]string{
		{"the quick fox", "the quick fox"},
		{"I am going to go", "I am gonna go"},
		{"one two three four", "1 2 3 four five"},
		{"uh so we we went", "So we went home"},
		{"", "only manual words"},
		{"only autogen words", ""},
	}
	for _, c := range cases {
		a, m := strings.Fields(c[0]), strings.Fields(c[1])
		segs, err := align.Align(a, m)
		if err != nil {
			t.Fatalf("Align(%q, %q): %v", c[0], c[1], err)
		}
		slots, err := expand.Expand(segs)
		if err != nil {
			t.Fatalf("Expand(%q, %q): %v", c[0], c[1], err)
		}
		if len(slots) < len(a) {
			t.Errorf("%q: %d slots for %d autogen tokens", c[0], len(slots), len(a))
		}
		if err := expand.VerifyAutogen(slots, a); err != nil {
			t.Errorf("VerifyAutogen(%q): %v", c[0], err)
		}
		if err := expand.VerifyManual(slots, m); err != nil {
			t.Errorf("VerifyManual(%q): %v", c[1], err)
		}
	}
}

func TestVerifyAutogenReportsMismatch(t *testing.T) {
	slots := expand.Slots{{Agreement: expand.BothAgree, CommonToken: "a"}}
	err := expand.VerifyAutogen(slots, []string{"b"})
	var invErr *expand.InvariantError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
	if invErr.Want != "b" || invErr.Got != "a" {
		t.Fatalf("unexpected error detail: %+v", invErr)
	}
	if err := expand.VerifyAutogen(slots, []string{"a", "b"}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestColumnsRoundTrip(t *testing.T) {
	labels := expand.DefaultLabels()
	slots := mustExpand(t, "so um we going to go", "so we gonna go now")
	cols := slots.Columns(labels)
	if cols.Len() != len(slots) {
		t.Fatalf("columns length %d, want %d", cols.Len(), len(slots))
	}
	if diff := cmp.Diff(cols.IsAutogenUnique, cols.IsManualUnique); diff != "" {
		t.Fatalf("agreement columns differ:\n%s", diff)
	}
	back, err := cols.Slots(labels)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if diff := cmp.Diff(slots, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	cols.ManualSeq = cols.ManualSeq[:1]
	if _, err := cols.Slots(labels); err == nil {
		t.Fatal("expected error for ragged columns")
	}
}

func TestLabels(t *testing.T) {
	labels := expand.DefaultLabels()
	if err := labels.Validate(); err != nil {
		t.Fatalf("default labels invalid: %v", err)
	}
	want := map[expand.Agreement]int{
		expand.BothAgree:     0,
		expand.AutogenInsert: 1,
		expand.BothDiffer:    2,
		expand.ManualInsert:  -1,
	}
	for agreement, value := range want {
		if got := labels.Value(agreement); got != value {
			t.Errorf("Value(%s) = %d, want %d", agreement, got, value)
		}
		back, err := labels.Agreement(value)
		if err != nil || back != agreement {
			t.Errorf("Agreement(%d) = %s, %v", value, back, err)
		}
	}
	if _, err := labels.Agreement(9); err == nil {
		t.Error("expected error for unknown label")
	}
	labels.ManualInsert = labels.BothDiffer
	if err := labels.Validate(); err == nil {
		t.Error("expected duplicate label error")
	}
}
