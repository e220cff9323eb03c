package main

import (
	"fmt"

	"github.com/anmicius0/vintage-adventure-server/application/services"
	"github.com/anmicius0/vintage-adventure-server/config"
	"github.com/anmicius0/vintage-adventure-server/infrastructure/adapters"
	"github.com/anmicius0/vintage-adventure-server/infrastructure/gin_interface/controllers"
	"github.com/anmicius0/vintage-adventure-server/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	mapsConfig, err := config.GetMapsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get maps config")
	}

	deepgramConfig, err := config.GetDeepgramConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get deepgram config")
	}

	geminiConfig, err := config.GetGeminiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gemini config")
	}

	stabilityConfig, err := config.GetStabilityConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get stability config")
	}

	encoderConfig, err := config.GetEncoderConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get encoder config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	geocoder := adapters.NewPlacesGeocoder(contentFetcher, mapsConfig, zeroLogger)
	panoramaFetcher := adapters.NewStreetviewFetcher(contentFetcher, mapsConfig, zeroLogger)
	transcriber := adapters.NewDeepgramTranscriber(contentFetcher, deepgramConfig, zeroLogger)
	promptGenerator := adapters.NewGeminiPromptGenerator(geminiConfig, workerPool, zeroLogger)
	imageStylizer := adapters.NewStabilityStylizer(contentFetcher, stabilityConfig, zeroLogger)
	videoComposer := adapters.NewFFmpegVideoComposer(encoderConfig, workerPool, zeroLogger)
	assetStore := adapters.NewTmpAssetStore(zeroLogger)

	mediaPipeline := services.NewMediaPipeline(zeroLogger, workerPool, geocoder, panoramaFetcher,
		transcriber, promptGenerator, imageStylizer, videoComposer, assetStore, serverConfig.AdapterTimeout)

	mediaPipelineController := controllers.NewMediaPipelineController(zeroLogger, mediaPipeline)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(cors.Default())

	if serverConfig.JwksUrl != "" {
		authHandler, err := middleware.NewAuthHandler(serverConfig.JwksUrl)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth handler!")
		}
		router.Use(authHandler.AuthMiddleware())
	}

	mediaPipelineController.RegisterRoutes(router)

	err = router.Run(":" + serverConfig.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
