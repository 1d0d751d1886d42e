package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SpeechAudioKey returns the cache key for a synthesized audio blob.
// The digest covers text, voice and speed so any variation misses.
func (r *CacheKeyStruct) SpeechAudioKey(digest string) string {
	return fmt.Sprintf("tts:audio:%s", digest)
}

var CacheKey = NewCacheKeyStruct()
