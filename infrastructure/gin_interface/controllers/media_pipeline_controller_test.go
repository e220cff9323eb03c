package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anmicius0/vintage-adventure-server/domain"
	"github.com/anmicius0/vintage-adventure-server/infrastructure/adapters"
	"github.com/gin-gonic/gin"
)

type stubPipeline struct {
	point    domain.GeoPoint
	findErr  error
	video    []byte
	videoErr error
}

func (s *stubPipeline) FindPlace(ctx context.Context, query string) (domain.GeoPoint, error) {
	return s.point, s.findErr
}

func (s *stubPipeline) FetchStreetview(ctx context.Context, req domain.PanoramaRequest) ([]byte, error) {
	return []byte{0xFF, 0xD8, 0xFF}, nil
}

func (s *stubPipeline) TranscribeSpeech(ctx context.Context, job domain.TranscriptionJob) (*domain.Transcription, error) {
	return &domain.Transcription{Transcript: "hello", LanguageTag: job.LanguageTag}, nil
}

func (s *stubPipeline) GeneratePrompt(ctx context.Context, story string) (string, error) {
	return "a stylized prompt", nil
}

func (s *stubPipeline) StylizeImage(ctx context.Context, job domain.StylizationJob) ([]byte, error) {
	return job.Image, nil
}

func (s *stubPipeline) ComposeVideo(ctx context.Context, job domain.VideoCompositionJob) ([]byte, error) {
	return s.video, s.videoErr
}

func newTestRouter(pipeline *stubPipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewMediaPipelineController(adapters.NewZerologWrapper(), pipeline).RegisterRoutes(router)
	return router
}

func TestController_FindPlace(t *testing.T) {
	router := newTestRouter(&stubPipeline{point: domain.GeoPoint{Latitude: 37.18, Longitude: -122.39}})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/find-place", strings.NewReader(`{"query":"Pigeon Point Lighthouse"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}

	var body struct {
		Location domain.GeoPoint `json:"location"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatal("failed to decode response:", err)
	}
	if body.Location.Latitude != 37.18 {
		t.Errorf("unexpected location: %+v", body.Location)
	}
}

func TestController_FindPlaceMissingQuery(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/find-place", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("unexpected status: %d", recorder.Code)
	}
}

func TestController_FailureKindMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no result", domain.NewNoResultError("places", "no location found"), http.StatusNotFound},
		{"validation", domain.NewValidationError("unsupported language"), http.StatusBadRequest},
		{"timeout", domain.NewTimeoutError("places", nil), http.StatusGatewayTimeout},
		{"transport", domain.NewTransportError("places", "denied", nil), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubPipeline{findErr: tc.err})

			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/find-place", strings.NewReader(`{"query":"anywhere"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.want {
				t.Errorf("got status %d, want %d", recorder.Code, tc.want)
			}
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	for name, data := range files {
		part, err := writer.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, writer.FormDataContentType()
}

func TestController_SpeechToText(t *testing.T) {
	router := newTestRouter(&stubPipeline{})

	body, contentType := multipartBody(t,
		map[string]string{"language": "en-US"},
		map[string][]byte{"audio": []byte("audio-bytes")})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %s", recorder.Code, recorder.Body.String())
	}

	var transcription domain.Transcription
	if err := json.Unmarshal(recorder.Body.Bytes(), &transcription); err != nil {
		t.Fatal("failed to decode response:", err)
	}
	if transcription.Transcript != "hello" || transcription.LanguageTag != "en-US" {
		t.Errorf("unexpected transcription: %+v", transcription)
	}
}

func TestController_ToVideo(t *testing.T) {
	router := newTestRouter(&stubPipeline{video: []byte("mp4-bytes")})

	body, contentType := multipartBody(t,
		map[string]string{"prompt": "a lighthouse at dusk"},
		map[string][]byte{
			"image": {0xFF, 0xD8, 0xFF},
			"audio": []byte("audio-bytes"),
		})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/to-video", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %s", recorder.Code, recorder.Body.String())
	}
	if got := recorder.Header().Get("Content-Type"); got != "video/mp4" {
		t.Errorf("unexpected content type: %q", got)
	}
	if recorder.Body.String() != "mp4-bytes" {
		t.Errorf("unexpected payload: %q", recorder.Body.String())
	}
}

func TestController_ToVideoMissingAudio(t *testing.T) {
	router := newTestRouter(&stubPipeline{video: []byte("mp4-bytes")})

	body, contentType := multipartBody(t, nil, map[string][]byte{"image": {0xFF, 0xD8, 0xFF}})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/to-video", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("unexpected status: %d", recorder.Code)
	}
}
