package corpus_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"capcorpus/internal/classify"
	"capcorpus/internal/config"
	"capcorpus/internal/corpus"
	"capcorpus/internal/expand"
	"capcorpus/internal/logging"
	"capcorpus/internal/testsupport"
	"capcorpus/internal/transcript"
)

func sampleRaw(id string) corpus.RawRecord {
	return corpus.RawRecord{
		VideoID:    id,
		VideoTitle: "Title " + id,
		PlaylistID: "PL1",
		ChannelID:  "UC1",
		Autogen: []transcript.Line{
			{Start: 0, Duration: 2, Text: "hello world"},
			{Start: 2, Duration: 2, Text: "this is a test"},
		},
		Manual: []transcript.Line{
			{Start: 0, Duration: 2, Text: "Hello world,"},
			{Start: 2, Duration: 2, Text: "this is a test."},
		},
	}
}

func newLabeler(t *testing.T, mutate func(*config.Labeling)) *corpus.Labeler {
	t.Helper()
	var opts []testsupport.ConfigOption
	if mutate != nil {
		opts = append(opts, testsupport.WithLabeling(mutate))
	}
	cfg := testsupport.NewConfig(t, opts...)
	labeler, err := corpus.NewLabeler(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewLabeler: %v", err)
	}
	return labeler
}

func TestLabelRowFullColumns(t *testing.T) {
	labeler := newLabeler(t, func(l *config.Labeling) { l.PostprocColumnsOnly = false })

	rec, err := labeler.LabelRow(sampleRaw("v1"))
	if err != nil {
		t.Fatalf("LabelRow: %v", err)
	}

	want := corpus.Record{
		VideoID:       "v1",
		VideoTitle:    "Title v1",
		PlaylistID:    "PL1",
		ChannelID:     "UC1",
		DefaultSeq:    []string{"hello", "world", "this", "is", "a", "test"},
		CorrectionSeq: []string{"Hello", "world,", "", "", "", "test."},
		Labels:        []int{1, 2, 0, 0, 0, 2},
		AutogenText:   "hello world this is a test",
		ManualText:    "Hello world, this is a test.",
		Columns: &expand.Columns{
			CommonToBoth:    []string{"", "", "this", "is", "a", ""},
			IsAutogenUnique: []int{2, 2, 0, 0, 0, 2},
			IsManualUnique:  []int{2, 2, 0, 0, 0, 2},
			AutogenSeq:      []string{"hello", "world", "", "", "", "test"},
			ManualSeq:       []string{"Hello world,", "Hello world,", "", "", "", "test."},
			ManualAddlRep:   []int{1, 1, 0, 0, 0, 0},
		},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelRowPostprocOnlyAndSimpleMode(t *testing.T) {
	labeler := newLabeler(t, func(l *config.Labeling) {
		l.PostprocColumnsOnly = true
		l.Mode = "simple"
	})

	rec, err := labeler.LabelRow(sampleRaw("v1"))
	if err != nil {
		t.Fatalf("LabelRow: %v", err)
	}
	if rec.Columns != nil || rec.AutogenText != "" {
		t.Fatalf("expected postproc-only record, got %#v", rec)
	}
	if diff := cmp.Diff([]int{1, 1, 0, 0, 0, 1}, rec.Labels); diff != "" {
		t.Fatalf("simple labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelAllDropsBadRowsAndKeepsOrder(t *testing.T) {
	labeler := newLabeler(t, func(l *config.Labeling) { l.MinSimilarity = 0.5 })

	empty := sampleRaw("empty")
	empty.Manual = nil
	unrelated := sampleRaw("unrelated")
	unrelated.Manual = []transcript.Line{{Start: 0, Duration: 1, Text: "completely different words entirely"}}

	rows := []corpus.RawRecord{sampleRaw("a"), empty, sampleRaw("b"), unrelated, sampleRaw("c")}
	records, summary, err := labeler.LabelAll(context.Background(), rows)
	if err != nil {
		t.Fatalf("LabelAll: %v", err)
	}

	var ids []string
	for _, rec := range records {
		ids = append(ids, rec.VideoID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	wantSummary := corpus.LabelSummary{
		Total:     5,
		Labeled:   3,
		Dropped:   2,
		DropKinds: map[string]int{"malformed_input": 1, "validation": 1},
	}
	if diff := cmp.Diff(wantSummary, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelAllHonoursCancellation(t *testing.T) {
	labeler := newLabeler(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := labeler.LabelAll(ctx, []corpus.RawRecord{sampleRaw("a")}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRecordsRoundTripBothLayouts(t *testing.T) {
	labeler := newLabeler(t, func(l *config.Labeling) { l.PostprocColumnsOnly = false })
	var records []corpus.Record
	for _, id := range []string{"z", "a", "z"} {
		rec, err := labeler.LabelRow(sampleRaw(id))
		if err != nil {
			t.Fatalf("LabelRow: %v", err)
		}
		records = append(records, rec)
	}

	dir := t.TempDir()
	arrayPath := filepath.Join(dir, "array.json")
	if err := corpus.WriteRecords(arrayPath, records, false); err != nil {
		t.Fatalf("WriteRecords array: %v", err)
	}
	gotArray, err := corpus.ReadRecords(arrayPath)
	if err != nil {
		t.Fatalf("ReadRecords array: %v", err)
	}
	if diff := cmp.Diff(records, gotArray); diff != "" {
		t.Fatalf("array round trip mismatch (-want +got):\n%s", diff)
	}

	keyedPath := filepath.Join(dir, "keyed.json")
	if err := corpus.WriteRecords(keyedPath, records, true); err != nil {
		t.Fatalf("WriteRecords keyed: %v", err)
	}
	data, err := os.ReadFile(keyedPath)
	if err != nil {
		t.Fatalf("read keyed: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Fatalf("expected object layout, got %q", data[:20])
	}
	gotKeyed, err := corpus.ReadRecords(keyedPath)
	if err != nil {
		t.Fatalf("ReadRecords keyed: %v", err)
	}
	if diff := cmp.Diff(records[:2], gotKeyed); diff != "" {
		t.Fatalf("keyed round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRawFillsKeyFromObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")
	testsupport.WriteFile(t, path, `{"vid9": {"video_title": "t", "autogen_transcript": [], "manual_transcript": []}}`)

	rows, err := corpus.ReadRaw(path)
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if len(rows) != 1 || rows[0].VideoID != "vid9" {
		t.Fatalf("unexpected rows %#v", rows)
	}
}

func TestReadRecordsRejectsScalars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	testsupport.WriteFile(t, path, `42`)
	if _, err := corpus.ReadRecords(path); err == nil {
		t.Fatal("expected layout error")
	}
}

func TestCombineKeepsFirstOccurrence(t *testing.T) {
	dir := t.TempDir()
	first := []corpus.Record{{VideoID: "a", VideoTitle: "first a"}, {VideoID: "b"}}
	second := []corpus.Record{{VideoID: "a", VideoTitle: "second a"}, {VideoID: "c"}}
	if err := corpus.WriteRecords(filepath.Join(dir, "1_first.json"), first, false); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := corpus.WriteRecords(filepath.Join(dir, "2_second.json"), second, true); err != nil {
		t.Fatalf("write second: %v", err)
	}
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	records, summary, err := corpus.Combine(dir)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	var got []string
	for _, rec := range records {
		got = append(got, rec.VideoID+":"+rec.VideoTitle)
	}
	if diff := cmp.Diff([]string{"a:first a", "b:", "c:"}, got); diff != "" {
		t.Fatalf("combined mismatch (-want +got):\n%s", diff)
	}
	if summary.Duplicates != 1 || summary.Rows != 3 || len(summary.Files) != 2 {
		t.Fatalf("unexpected summary %#v", summary)
	}
}

func TestSummarize(t *testing.T) {
	labeler := newLabeler(t, func(l *config.Labeling) { l.PostprocColumnsOnly = false })
	rec, err := labeler.LabelRow(sampleRaw("v1"))
	if err != nil {
		t.Fatalf("LabelRow: %v", err)
	}

	summary, err := corpus.Summarize([]corpus.Record{rec, rec.PostprocOnly()}, classify.ModeTaxonomy, classify.DefaultScheme(), expand.DefaultLabels())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := corpus.Summary{
		Rows:        2,
		Slots:       12,
		Corrections: 6,
		Categories: map[classify.Category]int{
			classify.None:            6,
			classify.CaseDiff:        2,
			classify.PunctuationDiff: 4,
		},
		Agreement: map[expand.Agreement]int{
			expand.BothAgree:  3,
			expand.BothDiffer: 3,
		},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	if _, err := corpus.Summarize([]corpus.Record{{Labels: []int{42}}}, classify.ModeTaxonomy, classify.DefaultScheme(), expand.DefaultLabels()); err == nil {
		t.Fatal("expected error for unknown label")
	}
}
