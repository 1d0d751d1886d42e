package model

// TranscribedWord is one word-level timestamp from the recognizer.
// Confidence is a fixed placeholder, not a calibrated probability.
type TranscribedWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// TranscriptionResult is the /transcribe success payload.
type TranscriptionResult struct {
	Text       string            `json:"text"`
	Confidence float64           `json:"confidence"`
	Words      []TranscribedWord `json:"words"`
	Duration   float64           `json:"duration"`
	Language   string            `json:"language"`
}

// Voice identifiers accepted by /tts.
const (
	VoiceAlloy   = "alloy"
	VoiceEcho    = "echo"
	VoiceFable   = "fable"
	VoiceOnyx    = "onyx"
	VoiceNova    = "nova"
	VoiceShimmer = "shimmer"
)

// DefaultVoice is used when the request omits a voice.
const DefaultVoice = VoiceNova

// SpeechRequest is the /tts payload. Voice and speed are optional.
type SpeechRequest struct {
	Text  *string `json:"text" binding:"required"`
	Voice string  `json:"voice" binding:"omitempty,oneof=alloy echo fable onyx nova shimmer"`
	Speed float64 `json:"speed" binding:"omitempty,min=0.25,max=4"`
}
