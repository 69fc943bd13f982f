package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"capcorpus/internal/config"
	"capcorpus/internal/corpus"
	"capcorpus/internal/harvest"
	"capcorpus/internal/store"
	"capcorpus/internal/testsupport"
	"capcorpus/internal/transcript"
)

func TestFetchThenLabel(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := env.config(t)

	out, _, err := runCLI(t, []string{"fetch", "--yes"}, env.configPath, "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "1 transcripts fetched, 1 skipped, 0 failed")

	raw, err := corpus.ReadRaw(cfg.StagePath(config.StageRawTranscripts, "Test_Channel"))
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if len(raw) != 1 || raw[0].VideoID != "vid1" || raw[0].PlaylistID != "PL1" {
		t.Fatalf("unexpected raw records: %+v", raw)
	}

	out, _, err = runCLI(t, []string{"label"}, env.configPath, "")
	if err != nil {
		t.Fatalf("label: %v", err)
	}
	requireContains(t, out, "1 of 1 rows labeled (0 dropped)")

	labeledPath := cfg.StagePath(cfg.LabeledStage(), "Test_Channel")
	records, err := corpus.ReadRecords(labeledPath)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 labeled record, got %d", len(records))
	}
	if diff := cmp.Diff([]int{1, 2, 0, 0, 0, 2}, records[0].Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if records[0].Columns != nil {
		t.Fatalf("postproc output should not carry slot columns")
	}

	out, _, err = runCLI(t, []string{"label"}, env.configPath, "")
	if err != nil {
		t.Fatalf("second label: %v", err)
	}
	requireContains(t, out, "labeled output reused")

	out, _, err = runCLI(t, []string{"runs", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	var runs []store.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode runs: %v\n%s", err, out)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for _, run := range runs {
		if run.Status != store.RunSucceeded {
			t.Fatalf("expected succeeded run, got %+v", run)
		}
	}
}

func TestFetchDeclinedChannel(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"fetch"}, env.configPath, "n\n")
	if !errors.Is(err, harvest.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	requireContains(t, out, `Found channel "Test Channel" (UC1)`)
	requireContains(t, out, "Use this channel? [y/N]")

	out, _, err = runCLI(t, []string{"runs"}, env.configPath, "")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "failed")
}

func TestFetchStopAfterPlaylists(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := env.config(t)

	out, _, err := runCLI(t, []string{"fetch", "--stop-after", "playlists"}, env.configPath, "y\n")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "Stopped after the playlists stage")
	if _, err := os.Stat(cfg.StagePath(config.StagePlaylists, "Test_Channel")); err != nil {
		t.Fatalf("expected playlists export: %v", err)
	}
	if _, err := os.Stat(cfg.StagePath(config.StageRawTranscripts, "Test_Channel")); !os.IsNotExist(err) {
		t.Fatalf("raw transcripts should not exist, stat err %v", err)
	}

	if _, _, err := runCLI(t, []string{"fetch", "--stop-after", "bogus"}, env.configPath, ""); err == nil {
		t.Fatal("expected invalid --stop-after to fail")
	}
}

func TestRunCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := env.config(t)

	out, _, err := runCLI(t, []string{"run", "--yes"}, env.configPath, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "1 transcripts fetched")
	requireContains(t, out, "1 of 1 rows labeled")
	if _, err := os.Stat(cfg.StagePath(cfg.LabeledStage(), "Test_Channel")); err != nil {
		t.Fatalf("expected labeled output: %v", err)
	}
}

func TestLabelExplicitInputAndForce(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := env.config(t)

	input := filepath.Join(env.baseDir, "lesson.json")
	testsupport.WriteJSON(t, input, []corpus.RawRecord{
		{
			VideoID: "v1",
			Autogen: []transcript.Line{{Start: 0, Duration: 1, Text: "hello world"}},
			Manual:  []transcript.Line{{Start: 0, Duration: 1, Text: "Hello world."}},
		},
		{VideoID: "broken"},
	})

	out, _, err := runCLI(t, []string{"label", input}, env.configPath, "")
	if err != nil {
		t.Fatalf("label: %v", err)
	}
	requireContains(t, out, "1 of 2 rows labeled (1 dropped)")
	requireContains(t, out, "dropped malformed_input: 1")
	if _, err := os.Stat(cfg.StagePath(cfg.LabeledStage(), "lesson")); err != nil {
		t.Fatalf("expected output named after the input: %v", err)
	}

	out, _, err = runCLI(t, []string{"label", input, "--force", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("label --force: %v", err)
	}
	var outcome labelOutcome
	if err := json.Unmarshal([]byte(out), &outcome); err != nil {
		t.Fatalf("decode outcome: %v\n%s", err, out)
	}
	if outcome.Cached || outcome.Summary.Labeled != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestCombineAndStats(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := env.config(t)

	dir := cfg.StageDir(cfg.LabeledStage())
	first := corpus.Record{VideoID: "v1", DefaultSeq: []string{"a", "b"}, CorrectionSeq: []string{"A", ""}, Labels: []int{1, 0}}
	second := corpus.Record{VideoID: "v2", DefaultSeq: []string{"c"}, CorrectionSeq: []string{"c."}, Labels: []int{2}}
	if err := corpus.WriteRecords(filepath.Join(dir, "a.json"), []corpus.Record{first}, false); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	if err := corpus.WriteRecords(filepath.Join(dir, "b.json"), []corpus.Record{first, second}, true); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	out, _, err := runCLI(t, []string{"combine"}, env.configPath, "")
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	requireContains(t, out, "Combined 2 rows from 2 files (1 duplicates dropped)")
	combined := filepath.Join(cfg.CombinedDir(), combinedFileName)

	out, _, err = runCLI(t, []string{"stats", combined, "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var view statsView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode stats: %v\n%s", err, out)
	}
	want := statsView{
		File:        combined,
		Rows:        2,
		Slots:       3,
		Corrections: 2,
		Categories:  map[string]int{"none": 1, "case": 1, "punctuation": 1},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	out, _, err = runCLI(t, []string{"stats", combined}, env.configPath, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Category\tLabel\tSlots\tShare")
	requireContains(t, out, "case\t1\t1\t33.3%")
}

func TestDiffCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	autogen := filepath.Join(env.baseDir, "auto.txt")
	manual := filepath.Join(env.baseDir, "manual.srt")
	testsupport.WriteFile(t, autogen, "hello world\nthis is a test\n")
	testsupport.WriteFile(t, manual, "1\n00:00:00,000 --> 00:00:02,000\nHello world,\n\n2\n00:00:02,000 --> 00:00:04,000\nthis is a test.\n")

	out, _, err := runCLI(t, []string{"diff", autogen, manual}, env.configPath, "")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header and 6 slots, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "Slot\tAgreement\tCommon\tAutogen\tManual\tRepeat\tCorrection\tCategory" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "0\tboth_differ\t\thello\tHello world,\t1\tHello\tcase" {
		t.Fatalf("unexpected first slot %q", lines[1])
	}

	out, _, err = runCLI(t, []string{"diff", "--changed", autogen, manual}, env.configPath, "")
	if err != nil {
		t.Fatalf("diff --changed: %v", err)
	}
	if got := len(strings.Split(strings.TrimSpace(out), "\n")); got != 4 {
		t.Fatalf("expected header and 3 changed slots, got %d lines:\n%s", got, out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "YouTube API key set: yes")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}

	if _, _, err := runCLI(t, []string{"config", "validate", "--fetch"}, target, ""); err == nil {
		t.Fatal("expected sample config without api key to fail --fetch validation")
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath, "")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Caption endpoint\tok\treachable (200)")
	requireContains(t, out, "YouTube API key\tok\tset")
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	cfg := env.config(t)

	logPath := filepath.Join(cfg.Paths.LogDir, "capcorpus.log")
	testsupport.WriteFile(t, logPath, "run_id=r1 a\nrun_id=r2 b\nrun_id=r1 c\n")

	out, _, err := runCLI(t, []string{"logs", "--run", "r1"}, env.configPath, "")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if diff := cmp.Diff("run_id=r1 a\nrun_id=r1 c\n", out); diff != "" {
		t.Fatalf("logs mismatch (-want +got):\n%s", diff)
	}

	out, _, err = runCLI(t, []string{"logs", "-n", "1"}, env.configPath, "")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "run_id=r1 c\n" {
		t.Fatalf("unexpected tail %q", out)
	}
}
