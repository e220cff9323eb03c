package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/anmicius0/vintage-adventure-server/application/ports/inbound"
	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/domain"
	"github.com/anmicius0/vintage-adventure-server/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

type MediaPipelineController interface {
	RegisterRoutes(g *gin.Engine)
}

type mediaPipelineController struct {
	logger   outbound.LoggerPort
	pipeline inbound.MediaPipelinePort
}

func NewMediaPipelineController(logger outbound.LoggerPort, pipeline inbound.MediaPipelinePort) MediaPipelineController {
	return &mediaPipelineController{
		logger:   logger,
		pipeline: pipeline,
	}
}

func (m *mediaPipelineController) RegisterRoutes(g *gin.Engine) {
	g.GET("/", m.Health)
	g.POST("/find-place", m.FindPlace)
	g.POST("/static-streetview", m.StaticStreetview)
	g.POST("/stt", m.SpeechToText)
	g.POST("/prompt-gen", m.PromptGen)
	g.POST("/image-to-image", m.ImageToImage)
	g.POST("/to-video", m.ToVideo)
}

func (m *mediaPipelineController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "The server is working"})
}

func (m *mediaPipelineController) FindPlace(c *gin.Context) {
	var req dto.FindPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := m.pipeline.FindPlace(c.Request.Context(), req.Query)
	if err != nil {
		m.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": location})
}

func (m *mediaPipelineController) StaticStreetview(c *gin.Context) {
	var req dto.StreetviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := m.pipeline.FetchStreetview(c.Request.Context(), domain.PanoramaRequest{
		PanoramaID: req.PanoID,
		Heading:    *req.Heading,
		Pitch:      *req.Pitch,
	})
	if err != nil {
		m.failWith(c, err)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", payload)
}

func (m *mediaPipelineController) SpeechToText(c *gin.Context) {
	language := c.PostForm("language")
	if language == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}

	audio, err := m.readFilePart(c, "audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transcription, err := m.pipeline.TranscribeSpeech(c.Request.Context(), domain.TranscriptionJob{
		LanguageTag: language,
		Audio:       audio,
	})
	if err != nil {
		m.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, transcription)
}

func (m *mediaPipelineController) PromptGen(c *gin.Context) {
	var req dto.PromptGenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt, err := m.pipeline.GeneratePrompt(c.Request.Context(), req.Prompt)
	if err != nil {
		m.failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PromptGenResponse{Prompt: prompt})
}

func (m *mediaPipelineController) ImageToImage(c *gin.Context) {
	prompt := c.PostForm("prompt")
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	image, err := m.readFilePart(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := m.pipeline.StylizeImage(c.Request.Context(), domain.StylizationJob{
		Image:  image,
		Prompt: prompt,
	})
	if err != nil {
		m.failWith(c, err)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", payload)
}

func (m *mediaPipelineController) ToVideo(c *gin.Context) {
	image, err := m.readFilePart(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := m.readFilePart(c, "audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := m.pipeline.ComposeVideo(c.Request.Context(), domain.VideoCompositionJob{
		Image: image,
		Audio: audio,
		Story: c.PostForm("prompt"),
	})
	if err != nil {
		m.failWith(c, err)
		return
	}

	c.Data(http.StatusOK, "video/mp4", payload)
}

func (m *mediaPipelineController) readFilePart(c *gin.Context, name string) ([]byte, error) {
	fileHeader, err := c.FormFile(name)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer func(file multipart.File) {
		err := file.Close()
		if err != nil {
			m.logger.Error(err, "failed to close uploaded file")
		}
	}(file)

	return io.ReadAll(file)
}

func (m *mediaPipelineController) failWith(c *gin.Context, err error) {
	m.logger.ErrorWithFields(err, "pipeline operation failed", map[string]interface{}{
		"path": c.Request.URL.Path,
	})
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.ValidationFailure:
		return http.StatusBadRequest
	case domain.NoResultFailure:
		return http.StatusNotFound
	case domain.TimeoutFailure:
		return http.StatusGatewayTimeout
	case domain.EncodingFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
