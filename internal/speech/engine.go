package speech

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slices"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

// Bridge to the local speech engine process. All calls go over its HTTP API.
var engineClient = resty.New().SetTimeout(10 * time.Second)

// AvailableCasts lists the voice casts the engine exposes.
var AvailableCasts = []string{"フィーちゃん", "ユニちゃん", "夏色花梨"}

const DefaultCast = "フィーちゃん"

var ErrEngineUnavailable = fmt.Errorf("音声エンジンに接続できません。エンジンが起動しているか確認してください。")

var state = struct {
	mu       sync.Mutex
	speaking bool
	until    time.Time
}{}

func ValidCast(cast string) bool {
	return slices.Contains(AvailableCasts, cast)
}

// Connected pings the engine.
func Connected() bool {
	resp, err := engineClient.R().Get(config.TTSEngineURL() + "/status")
	return err == nil && !resp.IsError()
}

// IsSpeaking reports whether a playback started here is still estimated to
// be running. The engine plays asynchronously and exposes no playback state.
func IsSpeaking() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.speaking && time.Now().After(state.until) {
		state.speaking = false
	}
	return state.speaking
}

// Speak stops any current playback, sets the cast and starts async playback.
func Speak(text, cast string) error {
	if !Connected() {
		return ErrEngineUnavailable
	}

	// restart from the new text rather than queueing
	if err := Stop(); err != nil {
		log.Printf("stop before speak failed: %v", err)
	}

	resp, err := engineClient.R().
		SetBody(map[string]string{"cast": cast, "text": text}).
		Post(config.TTSEngineURL() + "/speak")
	if err != nil {
		return ErrEngineUnavailable
	}
	if resp.IsError() {
		return fmt.Errorf("音声合成に失敗しました: %s", resp.Status())
	}

	state.mu.Lock()
	state.speaking = true
	// rough reading speed estimate, 6 chars per second
	state.until = time.Now().Add(time.Duration(len([]rune(text))/6+2) * time.Second)
	state.mu.Unlock()

	return nil
}

// Stop halts current playback.
func Stop() error {
	resp, err := engineClient.R().Post(config.TTSEngineURL() + "/stop")
	if err != nil {
		return ErrEngineUnavailable
	}
	if resp.IsError() {
		return fmt.Errorf("停止要求に失敗しました: %s", resp.Status())
	}

	state.mu.Lock()
	state.speaking = false
	state.mu.Unlock()
	return nil
}

// Diagnostics reports engine connectivity details for the test endpoint.
func Diagnostics() map[string]any {
	connected := Connected()
	return map[string]any{
		"engine_url":      config.TTSEngineURL(),
		"connected":       connected,
		"is_speaking":     IsSpeaking(),
		"available_casts": AvailableCasts,
	}
}
