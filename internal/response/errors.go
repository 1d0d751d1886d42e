package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrUnauthenticated    ErrCode = "UNAUTHENTICATED"
	ErrInvalidToken       ErrCode = "INVALID_TOKEN"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrMissingField    ErrCode = "MISSING_FIELD"
	ErrInvalidPayload  ErrCode = "INVALID_PAYLOAD"
	ErrPayloadTooLarge ErrCode = "PAYLOAD_TOO_LARGE"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrMissingAudio       ErrCode = "MISSING_AUDIO"
	ErrEmptyTranscription ErrCode = "EMPTY_TRANSCRIPTION"

	// ─── Providers / Server ────────────────────────────────────────────
	ErrConfiguration ErrCode = "CONFIGURATION_ERROR"
	ErrProvider      ErrCode = "PROVIDER_ERROR"
	ErrInternal      ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrUnauthenticated:
		return "인증이 필요합니다."
	case ErrInvalidToken:
		return "유효하지 않은 토큰입니다."
	case ErrTokenExpired:
		return "토큰이 만료되었습니다."
	case ErrInvalidCredentials:
		return "이메일 또는 비밀번호가 올바르지 않습니다."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "입력값이 올바르지 않습니다."
	case ErrMissingField:
		return "필수 필드가 누락되었습니다."
	case ErrInvalidPayload:
		return "요청 형식이 올바르지 않습니다."
	case ErrPayloadTooLarge:
		return "오디오 파일이 너무 큽니다. 최대 25MB까지 지원됩니다."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrMissingAudio:
		return "오디오 파일이 필요합니다."
	case ErrEmptyTranscription:
		return "음성을 인식할 수 없습니다. 더 명확하게 말씀해주세요."

	// ─── Providers / Server ────────────────────────────────────────────
	case ErrConfiguration:
		return "OpenAI API 키가 설정되지 않았습니다."
	case ErrProvider:
		return "외부 AI 호출 중 오류가 발생했습니다."
	case ErrInternal:
		return "서버 오류가 발생했습니다."
	default:
		return "예상치 못한 오류가 발생했습니다."
	}
}
