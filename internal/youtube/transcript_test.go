package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaptionServer(t *testing.T, playerJSON func(base string) string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
		fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = %s;var meta = {};</script></html>`, playerJSON(server.URL))
	})
	mux.HandleFunc("/timedtext/en", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?><transcript>`+
			`<text start="0" dur="1">Hello</text>`+
			`<text start="1" dur="1">it&amp;#39;s   </text>`+
			`<text start="2" dur="1"></text>`+
			`<text start="3" dur="1">goroutines {and} channels</text>`+
			`</transcript>`)
	})
	mux.HandleFunc("/timedtext/de", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text>Hallo</text></transcript>`)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCaptionClientFetchTranscript(t *testing.T) {
	server := newCaptionServer(t, func(base string) string {
		return fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
			{"baseUrl":"%[1]s/timedtext/de","languageCode":"de"},
			{"baseUrl":"%[1]s/timedtext/en?kind=asr","languageCode":"en","kind":"asr"},
			{"baseUrl":"%[1]s/timedtext/en","languageCode":"en"}
		]}},"note":"brace } in \"string\""}`, base)
	})

	c := NewCaptionClient(server.URL+"/watch", []string{"en"}, server.Client())
	text, err := c.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Hello it's goroutines {and} channels", text)
}

func TestCaptionClientNoCaptions(t *testing.T) {
	server := newCaptionServer(t, func(string) string {
		return `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in to confirm"}}`
	})

	c := NewCaptionClient(server.URL+"/watch", []string{"en"}, nil)
	_, err := c.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sign in to confirm")
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1&exp=xpe", LanguageCode: "en"},
		{BaseURL: "u2", LanguageCode: "fr"},
		{BaseURL: "u3", LanguageCode: "de", Kind: "asr"},
		{BaseURL: "u4", LanguageCode: "en-GB", Kind: "asr"},
	}

	got, ok := pickTrack(tracks, []string{"de"})
	require.True(t, ok)
	assert.Equal(t, "u3", got.BaseURL)

	got, ok = pickTrack(tracks, []string{"ja"})
	require.True(t, ok)
	assert.Equal(t, "u4", got.BaseURL, "english fallback skips PoToken tracks")

	_, ok = pickTrack([]captionTrack{{BaseURL: "x&exp=xpe"}}, nil)
	assert.False(t, ok)
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":"\\"}`, string(extractJSONObject([]byte(`{"a":"\\"};rest`))))
	assert.Equal(t, `{"a":{"b":"}"}}`, string(extractJSONObject([]byte(`{"a":{"b":"}"}} trailing`))))
	assert.Nil(t, extractJSONObject([]byte(`no json`)))
	assert.Nil(t, extractJSONObject([]byte(`{"unterminated":`)))
}

type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) FetchTranscript(context.Context, string) (string, error) {
	return s.text, s.err
}

func TestTranscriptResolver(t *testing.T) {
	tests := []struct {
		name        string
		stub        stubTranscriber
		description string
		want        string
	}{
		{"transcript", stubTranscriber{text: "spoken words"}, "desc", "spoken words"},
		{"error falls back to description", stubTranscriber{err: errors.New("blocked")}, "desc", "desc"},
		{"blank transcript falls back", stubTranscriber{text: "  "}, "desc", "desc"},
		{"nothing available", stubTranscriber{err: errors.New("blocked")}, "", NoTranscript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTranscriptResolver(tt.stub, log.DefaultLogger)
			assert.Equal(t, tt.want, r.Resolve(context.Background(), "dQw4w9WgXcQ", tt.description))
		})
	}
}
