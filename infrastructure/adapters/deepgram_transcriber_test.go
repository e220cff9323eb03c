package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/domain"
)

func TestDeepgramTranscriber_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "zh-TW" {
			t.Errorf("unexpected language: %q", got)
		}
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"燈塔在黃昏"}]}]}}`))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	transcriber := NewDeepgramTranscriber(NewContentFetcher(logger), &config.DeepgramConfig{
		ApiUrl: server.URL,
		ApiKey: "test-key",
	}, logger)

	result, err := transcriber.Transcribe(context.Background(), domain.TranscriptionJob{
		LanguageTag: "zh-TW",
		Audio:       []byte("audio-bytes"),
	})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if result.Transcript != "燈塔在黃昏" || result.LanguageTag != "zh-TW" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestDeepgramTranscriber_UnsupportedLanguageMakesNoCall(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	transcriber := NewDeepgramTranscriber(NewContentFetcher(logger), &config.DeepgramConfig{
		ApiUrl: server.URL,
		ApiKey: "test-key",
	}, logger)

	_, err := transcriber.Transcribe(context.Background(), domain.TranscriptionJob{
		LanguageTag: "xx-XX",
		Audio:       []byte("audio-bytes"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if domain.KindOf(err) != domain.ValidationFailure {
		t.Errorf("expected validation, got %q", domain.KindOf(err))
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected zero outbound calls, got %d", calls)
	}
}

func TestDeepgramTranscriber_NoChannels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"channels":[]}}`))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	transcriber := NewDeepgramTranscriber(NewContentFetcher(logger), &config.DeepgramConfig{
		ApiUrl: server.URL,
		ApiKey: "test-key",
	}, logger)

	_, err := transcriber.Transcribe(context.Background(), domain.TranscriptionJob{
		LanguageTag: "en-US",
		Audio:       []byte("audio-bytes"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if domain.KindOf(err) != domain.NoResultFailure {
		t.Errorf("expected no_result, got %q", domain.KindOf(err))
	}
}

func TestDeepgramTranscriber_EmptyTranscriptIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":""}]}]}}`))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	transcriber := NewDeepgramTranscriber(NewContentFetcher(logger), &config.DeepgramConfig{
		ApiUrl: server.URL,
		ApiKey: "test-key",
	}, logger)

	result, err := transcriber.Transcribe(context.Background(), domain.TranscriptionJob{
		LanguageTag: "en-US",
		Audio:       []byte("silence"),
	})
	if err != nil {
		t.Fatal("absence of speech should not be an error, got:", err)
	}
	if result.Transcript != "" {
		t.Errorf("expected empty transcript, got %q", result.Transcript)
	}
}
