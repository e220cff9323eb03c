package domain

import (
	"bytes"
	"strings"
)

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PanoramaRequest struct {
	PanoramaID string
	Heading    float64
	Pitch      float64
}

type TranscriptionJob struct {
	LanguageTag string
	Audio       []byte
}

type Transcription struct {
	Transcript  string `json:"transcript"`
	LanguageTag string `json:"language"`
}

type StylizationJob struct {
	Image  []byte
	Prompt string
}

type VideoCompositionJob struct {
	Image []byte
	Audio []byte
	Story string
}

type ImageFormat string

const (
	ImageFormatJPEG    ImageFormat = "jpeg"
	ImageFormatPNG     ImageFormat = "png"
	ImageFormatUnknown ImageFormat = ""
)

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
)

// DetectImageFormat sniffs the leading magic bytes. Only JPEG and PNG are
// accepted anywhere in the pipeline.
func DetectImageFormat(data []byte) ImageFormat {
	if bytes.HasPrefix(data, jpegMagic) {
		return ImageFormatJPEG
	}
	if bytes.HasPrefix(data, pngMagic) {
		return ImageFormatPNG
	}
	return ImageFormatUnknown
}

// ReflowCaption splits text into fixed-width caption lines, breaking on rune
// boundaries. Empty input yields no lines.
func ReflowCaption(text string, width int) []string {
	if text == "" || width <= 0 {
		return nil
	}
	var lines []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += width {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[start:end]))
	}
	return lines
}

// BoundWords caps text at maxWords whitespace-separated words.
func BoundWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:maxWords], " ")
}
