package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyclass/storyclass-backend/internal/config"
	"github.com/storyclass/storyclass-backend/internal/handler"
	"github.com/storyclass/storyclass-backend/internal/provider"
	"github.com/storyclass/storyclass-backend/internal/service"
	"github.com/storyclass/storyclass-backend/internal/store"
	"github.com/storyclass/storyclass-backend/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
}

type stubTextGen struct {
	output string
	err    error
}

func (g *stubTextGen) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

type stubTranscriber struct {
	result *provider.TranscriptionResult
	err    error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, req provider.TranscriptionRequest) (*provider.TranscriptionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubSynthesizer struct {
	audio []byte
	err   error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, req provider.SpeechRequest) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

type serverOpts struct {
	gen      provider.TextGenerator
	stt      provider.Transcriber
	tts      provider.SpeechSynthesizer
	maxAudio int64
}

func testCfg(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		GinMode:      gin.TestMode,
		TokenSecret:  "test-secret",
		TokenExpiry:  time.Hour,
		BcryptCost:   4,
		DemoEmail:    "demo@example.com",
		DemoPassword: "demo123",
		DemoName:     "데모 사용자",
		DemoSchool:   "데모 초등학교",
		WebDir:       t.TempDir(),
	}
}

func newTestServer(t *testing.T, opts serverOpts) *gin.Engine {
	t.Helper()

	cfg := testCfg(t)
	if opts.maxAudio == 0 {
		opts.maxAudio = 25 * 1024 * 1024
	}

	log := zerolog.Nop()
	artifacts := store.NewNoopStore()

	authService, err := service.NewAuthService(cfg)
	require.NoError(t, err)

	materialService := service.NewMaterialService(opts.gen, log)
	evaluationService := service.NewEvaluationService(opts.gen, artifacts, log)
	speechService := service.NewSpeechService(opts.stt, opts.tts, nil, artifacts, log)

	engine := SetupRouter(authService, &Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Example:    handler.NewExampleHandler(),
		Material:   handler.NewMaterialHandler(materialService),
		Evaluation: handler.NewEvaluationHandler(evaluationService),
		Speech:     handler.NewSpeechHandler(speechService, opts.maxAudio),
	}, cfg)

	return engine
}

func doJSON(engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ── Health ───────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

// ── Auth ─────────────────────────────────────────────────────────────────

func TestLoginEndpoint(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/auth/login", "",
		gin.H{"email": "demo@example.com", "password": "demo123"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "demo@example.com", user["email"])
	assert.Equal(t, "teacher", user["role"])
}

func TestLoginEndpointWrongCredentials(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/auth/login", "",
		gin.H{"email": "demo@example.com", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
	assert.NotEmpty(t, body["detail"])
}

func TestLoginEndpointMissingField(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/auth/login", "",
		gin.H{"email": "demo@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "MISSING_FIELD", body["code"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "password")
}

func TestMeEndpoint(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	login := doJSON(engine, http.MethodPost, "/auth/login", "",
		gin.H{"email": "demo@example.com", "password": "demo123"})
	require.Equal(t, http.StatusOK, login.Code)
	token := decodeBody(t, login)["access_token"].(string)

	w := doJSON(engine, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "demo@example.com", body["email"])
	assert.Equal(t, "데모 사용자", body["name"])
}

func TestMeEndpointRejectsBadTokens(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	t.Run("no token", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHENTICATED", decodeBody(t, w)["code"])
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/auth/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeBody(t, w)["code"])
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := testCfg(t)
		expiredCfg.TokenExpiry = -time.Minute
		expiredSvc, err := service.NewAuthService(expiredCfg)
		require.NoError(t, err)
		token, err := expiredSvc.GenerateToken(expiredSvc.DemoProfile())
		require.NoError(t, err)

		w := doJSON(engine, http.MethodGet, "/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeBody(t, w)["code"])
	})
}

func TestRegisterEndpointEchoesProfile(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/auth/register", "",
		gin.H{"email": "t@school.kr", "password": "pw", "name": "김선생", "school": "서울초"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "회원가입이 완료되었습니다.", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "t@school.kr", user["email"])
	assert.Equal(t, "teacher", user["role"])
}

// ── Opaque bearer gate ───────────────────────────────────────────────────

func TestProtectedRoutesRequireBearer(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodGet, "/example", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", decodeBody(t, w)["code"])
}

func TestProtectedRoutesAcceptAnyBearer(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	// The generation gate checks presence only; the value is never decoded.
	w := doJSON(engine, http.MethodGet, "/example", "any-opaque-value", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["target_vocabulary"], 10)
}

// ── Generation ───────────────────────────────────────────────────────────

func generationPayload() gin.H {
	return gin.H{
		"target_communicative_functions": []string{"asking ability"},
		"target_grammar_forms":           []string{"Can you...?"},
		"target_vocabulary":              []string{"fly", "swim"},
	}
}

func TestGenerateWithoutProviderServesDemoMaterial(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/generate", "tok", generationPayload())
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	story := data["short_story"].(map[string]interface{})
	assert.Equal(t, "The Magic Garden", story["title"])
	assert.Equal(t, float64(89), story["word_count"])

	unit := data["unit"].(map[string]interface{})
	assert.Equal(t, []interface{}{"fly", "swim"}, unit["target_vocabulary"])

	script := data["teacher_script"].(map[string]interface{})
	for _, stage := range []string{"opening", "during_reading", "after_reading",
		"key_expression_practice", "retelling_guidance", "evaluation_criteria", "wrap_up"} {
		assert.NotEmpty(t, script[stage], "stage %s", stage)
	}
}

func TestGenerateProviderFailureStays200(t *testing.T) {
	engine := newTestServer(t, serverOpts{gen: &stubTextGen{err: errors.New("quota exceeded")}})

	w := doJSON(engine, http.MethodPost, "/generate", "tok", generationPayload())
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	story := body["data"].(map[string]interface{})["short_story"].(map[string]interface{})
	assert.Equal(t, "Emma's Garden", story["title"])
	assert.Equal(t, float64(69), story["word_count"])
	assert.Equal(t, float64(9), story["sentence_count"])
}

func TestGenerateRejectsEmptyLists(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	payload := generationPayload()
	payload["target_vocabulary"] = []string{}

	w := doJSON(engine, http.MethodPost, "/generate", "tok", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "target_vocabulary")
}

func TestGenerateRejectsMissingList(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/generate", "tok",
		gin.H{"target_communicative_functions": []string{"asking ability"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ── Evaluation ───────────────────────────────────────────────────────────

func TestEvaluateEndpointSuccess(t *testing.T) {
	engine := newTestServer(t, serverOpts{gen: &stubTextGen{output: `{
		"overall_score": 88, "content_accuracy": 90, "question_relevance": 85,
		"language_usage": 88, "completeness": 89,
		"feedback": "잘했어요.", "suggestions": [], "strengths": [], "areas_for_improvement": []
	}`}})

	w := doJSON(engine, http.MethodPost, "/evaluate-answer", "tok",
		gin.H{"question": "q", "studentAnswer": "a", "storyContent": "story"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(88), data["overall_score"])
}

func TestEvaluateEndpointAcceptsEmptyStrings(t *testing.T) {
	engine := newTestServer(t, serverOpts{gen: &stubTextGen{output: `{"overall_score": 50}`}})

	// Keys present with empty values pass validation.
	w := doJSON(engine, http.MethodPost, "/evaluate-answer", "tok",
		gin.H{"question": "", "studentAnswer": "", "storyContent": ""})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEvaluateEndpointRejectsMissingKey(t *testing.T) {
	engine := newTestServer(t, serverOpts{gen: &stubTextGen{output: `{"overall_score": 50}`}})

	w := doJSON(engine, http.MethodPost, "/evaluate-answer", "tok",
		gin.H{"question": "q", "studentAnswer": "a"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "storyContent")
}

func TestEvaluateEndpointWithoutProvider(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/evaluate-answer", "tok",
		gin.H{"question": "q", "studentAnswer": "a", "storyContent": "story"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "CONFIGURATION_ERROR", decodeBody(t, w)["code"])
}

func TestEvaluateEndpointProviderFailure(t *testing.T) {
	engine := newTestServer(t, serverOpts{gen: &stubTextGen{err: errors.New("timed out")}})

	w := doJSON(engine, http.MethodPost, "/evaluate-answer", "tok",
		gin.H{"question": "q", "studentAnswer": "a", "storyContent": "story"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "PROVIDER_ERROR", body["code"])
	assert.Contains(t, body["details"], "timed out")
}

func TestEvaluateEndpointUnparsableOutputMasked(t *testing.T) {
	engine := newTestServer(t, serverOpts{gen: &stubTextGen{output: "B+ overall, nice work"}})

	w := doJSON(engine, http.MethodPost, "/evaluate-answer", "tok",
		gin.H{"question": "q", "studentAnswer": "a", "storyContent": "story"})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(70), data["overall_score"])
	assert.Equal(t, float64(70), data["completeness"])
}

// ── Transcription ────────────────────────────────────────────────────────

func multipartAudio(t *testing.T, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", "clip.webm")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doMultipart(engine *gin.Engine, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTranscribeEndpointSuccess(t *testing.T) {
	engine := newTestServer(t, serverOpts{stt: &stubTranscriber{result: &provider.TranscriptionResult{
		Text:     "Emma has a garden",
		Duration: 1.8,
		Language: "english",
		Words:    []provider.Word{{Word: "Emma", Start: 0, End: 0.4}},
	}}})

	body, contentType := multipartAudio(t, []byte("fake-webm-bytes"))
	w := doMultipart(engine, "tok", body, contentType)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Emma has a garden", data["text"])
	assert.Equal(t, 0.95, data["confidence"])
	words := data["words"].([]interface{})
	require.Len(t, words, 1)
	assert.Equal(t, 0.9, words[0].(map[string]interface{})["confidence"])
}

func TestTranscribeEndpointMissingAudio(t *testing.T) {
	engine := newTestServer(t, serverOpts{stt: &stubTranscriber{}})

	w := doJSON(engine, http.MethodPost, "/transcribe", "tok", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_AUDIO", decodeBody(t, w)["code"])
}

func TestTranscribeEndpointOversizeAudio(t *testing.T) {
	engine := newTestServer(t, serverOpts{
		stt:      &stubTranscriber{result: &provider.TranscriptionResult{Text: "x"}},
		maxAudio: 16,
	})

	body, contentType := multipartAudio(t, bytes.Repeat([]byte("a"), 17))
	w := doMultipart(engine, "tok", body, contentType)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeBody(t, w)["code"])
}

func TestTranscribeEndpointEmptyRecognition(t *testing.T) {
	engine := newTestServer(t, serverOpts{stt: &stubTranscriber{result: &provider.TranscriptionResult{Text: ""}}})

	body, contentType := multipartAudio(t, []byte("silence"))
	w := doMultipart(engine, "tok", body, contentType)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_TRANSCRIPTION", decodeBody(t, w)["code"])
}

func TestTranscribeEndpointWithoutProvider(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	body, contentType := multipartAudio(t, []byte("audio"))
	w := doMultipart(engine, "tok", body, contentType)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "CONFIGURATION_ERROR", decodeBody(t, w)["code"])
}

// ── Synthesis ────────────────────────────────────────────────────────────

func TestSynthesizeEndpointStreamsAudio(t *testing.T) {
	engine := newTestServer(t, serverOpts{tts: &stubSynthesizer{audio: []byte("mp3-bytes")}})

	w := doJSON(engine, http.MethodPost, "/tts", "tok",
		gin.H{"text": "Emma has a garden.", "voice": "nova", "speed": 1.0})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="story.mp3"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, []byte("mp3-bytes"), w.Body.Bytes())
}

func TestSynthesizeEndpointTextLengthBoundary(t *testing.T) {
	engine := newTestServer(t, serverOpts{tts: &stubSynthesizer{audio: []byte("mp3")}})

	t.Run("at limit", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/tts", "tok",
			gin.H{"text": strings.Repeat("a", 4096)})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("over limit", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/tts", "tok",
			gin.H{"text": strings.Repeat("a", 4097)})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Contains(t, body["fields"].(map[string]interface{}), "text")
	})
}

func TestSynthesizeEndpointRejectsBadPayloads(t *testing.T) {
	engine := newTestServer(t, serverOpts{tts: &stubSynthesizer{audio: []byte("mp3")}})

	t.Run("missing text", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/tts", "tok", gin.H{"voice": "nova"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown voice", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/tts", "tok", gin.H{"text": "hi", "voice": "robot"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("speed out of range", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/tts", "tok", gin.H{"text": "hi", "speed": 9.0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSynthesizeGETEndpoint(t *testing.T) {
	engine := newTestServer(t, serverOpts{tts: &stubSynthesizer{audio: []byte("mp3-bytes")}})

	t.Run("success", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/tts?text=hello&voice=alloy&speed=1.5", "tok", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	})

	t.Run("missing text", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/tts", "tok", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown voice", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/tts?text=hi&voice=robot", "tok", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("speed out of range", func(t *testing.T) {
		w := doJSON(engine, http.MethodGet, "/tts?text=hi&speed=0.1", "tok", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSynthesizeEndpointWithoutProvider(t *testing.T) {
	engine := newTestServer(t, serverOpts{})

	w := doJSON(engine, http.MethodPost, "/tts", "tok", gin.H{"text": "hi"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "CONFIGURATION_ERROR", decodeBody(t, w)["code"])
}
