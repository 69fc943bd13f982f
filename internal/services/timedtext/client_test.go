package timedtext

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"capcorpus/internal/services"
	"capcorpus/internal/transcript"
)

const trackListXML = `<?xml version="1.0" encoding="utf-8" ?>
<transcript_list docid="123">
  <track id="0" name="" lang_code="en" lang_original="English" lang_translated="English" lang_default="true" kind="asr"/>
  <track id="1" name="CC" lang_code="en-GB" lang_original="English (UK)" lang_translated="English (UK)"/>
  <track id="2" name="" lang_code="de" lang_original="Deutsch" lang_translated="German"/>
</transcript_list>`

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("type") == "list" && q.Get("v") == "vid1":
			_, _ = w.Write([]byte(trackListXML))
		case q.Get("type") == "list":
			_, _ = w.Write([]byte(`<transcript_list/>`))
		case q.Get("kind") == "asr":
			if q.Get("fmt") != "json3" || q.Get("lang") != "en" {
				t.Errorf("unexpected asr query %v", q)
			}
			_, _ = w.Write([]byte(`{"events":[{"tStartMs":0,"dDurationMs":1000,"segs":[{"utf8":"two cats"}]}]}`))
		case q.Get("name") == "CC":
			_, _ = w.Write([]byte(`{"events":[{"tStartMs":0,"dDurationMs":1000,"segs":[{"utf8":"2 cats"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestListTracks(t *testing.T) {
	client := New(fakeServer(t).URL, nil)
	tracks, err := client.ListTracks(context.Background(), "vid1")
	if err != nil {
		t.Fatalf("ListTracks: %v", err)
	}
	want := []Track{
		{LangCode: "en", Kind: "asr", Default: true},
		{LangCode: "en-GB", Name: "CC"},
		{LangCode: "de"},
	}
	if diff := cmp.Diff(want, tracks); diff != "" {
		t.Fatalf("tracks mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPair(t *testing.T) {
	client := New(fakeServer(t).URL, http.DefaultClient)
	pair, err := client.FetchPair(context.Background(), "vid1", "en")
	if err != nil {
		t.Fatalf("FetchPair: %v", err)
	}
	want := Pair{
		Autogen: []transcript.Line{{Start: 0, Duration: 1, Text: "two cats"}},
		Manual:  []transcript.Line{{Start: 0, Duration: 1, Text: "2 cats"}},
	}
	if diff := cmp.Diff(want, pair); diff != "" {
		t.Fatalf("pair mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPairMissingTrack(t *testing.T) {
	client := New(fakeServer(t).URL, nil)
	_, err := client.FetchPair(context.Background(), "vid2", "en")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = client.FetchPair(context.Background(), "vid1", "de")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for missing generated track, got %v", err)
	}
}

func TestSelectTrackPrefersExactAndDefault(t *testing.T) {
	tracks := []Track{
		{LangCode: "en-US", Name: "US"},
		{LangCode: "en", Name: "plain"},
		{LangCode: "en", Name: "default", Default: true},
		{LangCode: "en", Kind: "asr"},
	}
	got, ok := SelectTrack(tracks, "en", false)
	if !ok || got.Name != "default" {
		t.Fatalf("SelectTrack = %+v, %v", got, ok)
	}
	got, ok = SelectTrack(tracks, "en-US", false)
	if !ok || got.Name != "US" {
		t.Fatalf("SelectTrack(en-US) = %+v, %v", got, ok)
	}
	if _, ok := SelectTrack(tracks, "fr", true); ok {
		t.Fatal("expected no french track")
	}
}

func TestStatusMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()
	_, err := New(server.URL, nil).ListTracks(context.Background(), "vid1")
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}
