package services

import (
	"context"
	"time"

	"github.com/anmicius0/vintage-adventure-server/application/ports/inbound"
	"github.com/anmicius0/vintage-adventure-server/application/ports/outbound"
	"github.com/anmicius0/vintage-adventure-server/channel_utils"
	"github.com/anmicius0/vintage-adventure-server/domain"
)

const captionLineWidth = 30

type mediaPipeline struct {
	logger          outbound.LoggerPort
	workerPool      outbound.TaskDispatcher
	geocoder        outbound.GeocoderPort
	panoramaFetcher outbound.PanoramaFetcherPort
	transcriber     outbound.TranscriberPort
	promptGenerator outbound.PromptGeneratorPort
	imageStylizer   outbound.ImageStylizerPort
	videoComposer   outbound.VideoComposerPort
	assetStore      outbound.TempAssetStorePort
	callTimeout     time.Duration
}

func NewMediaPipeline(
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher,
	geocoder outbound.GeocoderPort,
	panoramaFetcher outbound.PanoramaFetcherPort,
	transcriber outbound.TranscriberPort,
	promptGenerator outbound.PromptGeneratorPort,
	imageStylizer outbound.ImageStylizerPort,
	videoComposer outbound.VideoComposerPort,
	assetStore outbound.TempAssetStorePort,
	callTimeout time.Duration) inbound.MediaPipelinePort {
	return &mediaPipeline{
		logger:          logger,
		workerPool:      workerPool,
		geocoder:        geocoder,
		panoramaFetcher: panoramaFetcher,
		transcriber:     transcriber,
		promptGenerator: promptGenerator,
		imageStylizer:   imageStylizer,
		videoComposer:   videoComposer,
		assetStore:      assetStore,
		callTimeout:     callTimeout,
	}
}

func (m *mediaPipeline) FindPlace(ctx context.Context, query string) (domain.GeoPoint, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	return m.geocoder.FindPlace(callCtx, query)
}

func (m *mediaPipeline) FetchStreetview(ctx context.Context, req domain.PanoramaRequest) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	return m.panoramaFetcher.Fetch(callCtx, req)
}

func (m *mediaPipeline) TranscribeSpeech(ctx context.Context, job domain.TranscriptionJob) (*domain.Transcription, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	return m.transcriber.Transcribe(callCtx, job)
}

func (m *mediaPipeline) GeneratePrompt(ctx context.Context, story string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	return m.promptGenerator.Generate(callCtx, story)
}

func (m *mediaPipeline) StylizeImage(ctx context.Context, job domain.StylizationJob) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	return m.imageStylizer.Stylize(callCtx, job)
}

// ComposeVideo brackets the composer call with the temporary asset store:
// both source assets are acquired before the encoder starts and released on
// every exit path once it has terminated.
func (m *mediaPipeline) ComposeVideo(ctx context.Context, job domain.VideoCompositionJob) ([]byte, error) {
	if domain.DetectImageFormat(job.Image) == domain.ImageFormatUnknown {
		return nil, domain.NewValidationError("unsupported image format, expected JPEG or PNG")
	}

	var imageHandle, audioHandle outbound.AssetHandle
	imageErrCh := m.acquireAsync(job.Image, "source-image.jpeg", &imageHandle)
	audioErrCh := m.acquireAsync(job.Audio, "source-audio.webm", &audioHandle)

	acquireErr := m.collectAcquireErrors(imageErrCh, audioErrCh)

	defer func() {
		if err := m.assetStore.Release(imageHandle); err != nil {
			m.logger.Error(err, "failed to release image asset")
		}
		if err := m.assetStore.Release(audioHandle); err != nil {
			m.logger.Error(err, "failed to release audio asset")
		}
	}()

	if acquireErr != nil {
		m.logger.Error(acquireErr, "failed to acquire temporary assets")
		return nil, acquireErr
	}

	return m.videoComposer.Compose(ctx, outbound.ComposeVideoRequest{
		ImageFileName: imageHandle.Path,
		AudioFileName: audioHandle.Path,
		CaptionLines:  domain.ReflowCaption(job.Story, captionLineWidth),
	})
}

func (m *mediaPipeline) acquireAsync(data []byte, logicalName string, target *outbound.AssetHandle) <-chan error {
	errCh := make(chan error, 1)

	err := m.workerPool.Submit(func() {
		defer close(errCh)
		handle, err := m.assetStore.Acquire(data, logicalName)
		if err != nil {
			errCh <- err
			return
		}
		*target = handle
	})
	if err != nil {
		errCh <- err
		close(errCh)
	}

	return errCh
}

func (m *mediaPipeline) collectAcquireErrors(channels ...<-chan error) error {
	merged, err := channel_utils.MergeChannels(m.workerPool, channels...)
	if err != nil {
		// Pool saturation: drain the channels directly so every acquisition
		// has finished before the deferred releases run.
		for _, ch := range channels {
			for range ch {
			}
		}
		return err
	}

	var firstErr error
	for mergedErr := range merged {
		if firstErr == nil {
			firstErr = mergedErr
		}
	}

	return firstErr
}
