package config

import (
	"net/url"
	"os"
	"strings"
	"time"
)

// JST is the display timezone for everything user-facing.
var JST = time.FixedZone("JST", 9*60*60)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Host() string { return getenv("HOST", "0.0.0.0") }
func Port() string { return getenv("PORT", "8000") }

// Debug turns on verbose SQL logging.
func Debug() bool {
	return strings.EqualFold(os.Getenv("DEBUG"), "true")
}

func XBearerToken() string { return os.Getenv("X_BEARER_TOKEN") }
func XUsername() string    { return os.Getenv("X_USERNAME") }

func YouTubeChannelID() string        { return os.Getenv("YOUTUBE_CHANNEL_ID") }
func YouTubeClientSecretJSON() string { return os.Getenv("YOUTUBE_CLIENT_SECRET_JSON") }
func YouTubeTokenJSON() string        { return os.Getenv("YOUTUBE_TOKEN_JSON") }
func YouTubeRefreshToken() string     { return os.Getenv("YOUTUBE_REFRESH_TOKEN") }

func CalendarRedirectURI() string { return os.Getenv("GOOGLE_CALENDAR_REDIRECT_URI") }
func CalendarTokenJSON() string   { return os.Getenv("GOOGLE_CALENDAR_TOKEN_JSON") }

func FrontendURL() string { return getenv("FRONTEND_URL", "http://localhost:5173") }

func OpenAIAPIKey() string { return os.Getenv("OPENAI_API_KEY") }
func OpenAIModel() string  { return getenv("OPENAI_MODEL", "gpt-4o-mini") }

func TTSEngineURL() string { return getenv("TTS_ENGINE_URL", "http://127.0.0.1:50032") }

func StorageDir() string { return getenv("STORAGE_DIR", "./storage") }

func MongoURI() string { return getenv("MONGO_URI", "mongodb://localhost:27017") }

// DatabaseURL returns the Postgres DSN. Passwords containing a raw "@" break
// URL parsing, so everything between the scheme and the last "@" gets its
// password portion percent-encoded.
func DatabaseURL() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return ""
	}

	schemeEnd := strings.Index(dsn, "://")
	hostAt := strings.LastIndex(dsn, "@")
	if schemeEnd < 0 || hostAt < 0 || hostAt < schemeEnd {
		return dsn
	}

	userinfo := dsn[schemeEnd+3 : hostAt]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		return dsn
	}

	pass := userinfo[colon+1:]
	if !strings.Contains(pass, "@") {
		return dsn
	}
	encoded := url.QueryEscape(pass)
	return dsn[:schemeEnd+3] + userinfo[:colon] + ":" + encoded + dsn[hostAt:]
}

// CORSOrigins lists the allowed frontend origins.
func CORSOrigins() []string {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://localhost:8080",
	}
	front := FrontendURL()
	for _, o := range origins {
		if o == front {
			return origins
		}
	}
	return append(origins, front)
}
