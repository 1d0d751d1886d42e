package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/storyclass/storyclass-backend/internal/middleware"
	"github.com/storyclass/storyclass-backend/internal/model"
	"github.com/storyclass/storyclass-backend/internal/provider"
	"github.com/storyclass/storyclass-backend/internal/response"
	"github.com/storyclass/storyclass-backend/internal/service"
	"github.com/storyclass/storyclass-backend/internal/validator"
)

// SpeechHandler handles the transcription and synthesis endpoints.
type SpeechHandler struct {
	speechService *service.SpeechService
	maxAudioBytes int64
}

// NewSpeechHandler creates a new SpeechHandler.
func NewSpeechHandler(speechService *service.SpeechService, maxAudioBytes int64) *SpeechHandler {
	return &SpeechHandler{speechService: speechService, maxAudioBytes: maxAudioBytes}
}

// Transcribe godoc
// POST /transcribe (multipart, field "audio")
// Relays the clip to the recognizer. Blank recognitions come back as 400,
// unlike the generation endpoints which mask provider trouble.
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrMissingAudio)
		return
	}
	defer file.Close()

	if header.Size > h.maxAudioBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrPayloadTooLarge)
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	result, err := h.speechService.Transcribe(c.Request.Context(), middleware.GetToken(c), header.Filename, audio)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTranscription):
			response.Fail(c, http.StatusBadRequest, response.ErrEmptyTranscription)
		case errors.Is(err, service.ErrProviderNotConfigured):
			response.Fail(c, http.StatusInternalServerError, response.ErrConfiguration)
		default:
			response.FailWithDetails(c, http.StatusInternalServerError, response.ErrProvider, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Synthesize godoc
// POST /tts
// Streams raw MP3 on success; errors switch to the JSON envelope, so
// callers must branch on status before reading the body.
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req model.SpeechRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.synthesize(c, *req.Text, req.Voice, req.Speed)
}

// SynthesizeGET godoc
// GET /tts?text=...&voice=...&speed=...
// Query-parameter variant for direct use in audio element sources.
func (h *SpeechHandler) SynthesizeGET(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"text": "text is a required field"})
		return
	}

	voice := c.Query("voice")
	if voice != "" && !validVoice(voice) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"voice": "voice must be one of [alloy echo fable onyx nova shimmer]"})
		return
	}

	speed := 0.0
	if raw := c.Query("speed"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0.25 || parsed > 4.0 {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"speed": "speed must be between 0.25 and 4"})
			return
		}
		speed = parsed
	}

	h.synthesize(c, text, voice, speed)
}

func (h *SpeechHandler) synthesize(c *gin.Context, text, voice string, speed float64) {
	if utf8.RuneCountInString(text) > service.MaxSpeechChars {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"text": fmt.Sprintf("text must be at most %d characters", service.MaxSpeechChars)})
		return
	}
	if voice == "" {
		voice = model.DefaultVoice
	}
	if speed == 0 {
		speed = 1.0
	}

	audio, err := h.speechService.Synthesize(c.Request.Context(), middleware.GetToken(c), provider.SpeechRequest{
		Text:  text,
		Voice: voice,
		Speed: speed,
	})
	if err != nil {
		if errors.Is(err, service.ErrProviderNotConfigured) {
			response.Fail(c, http.StatusInternalServerError, response.ErrConfiguration)
			return
		}
		response.FailWithDetails(c, http.StatusInternalServerError, response.ErrProvider, err.Error())
		return
	}

	c.Header("Content-Disposition", `inline; filename="story.mp3"`)
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

func validVoice(voice string) bool {
	switch voice {
	case model.VoiceAlloy, model.VoiceEcho, model.VoiceFable, model.VoiceOnyx, model.VoiceNova, model.VoiceShimmer:
		return true
	}
	return false
}
