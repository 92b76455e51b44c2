package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

const tokenFile = "google_calendar_token.json"

var Scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.readonly",
}

var ErrNotAuthenticated = fmt.Errorf("Googleカレンダーが未認証です。/api/v1/google-calendar/authから認証してください。")

// savedToken matches the JSON layout the dashboard tooling expects.
type savedToken struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
	Expiry       string   `json:"expiry,omitempty"`
}

var tokenMu sync.Mutex

type googleSecret struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AuthURI      string `json:"auth_uri"`
	TokenURI     string `json:"token_uri"`
}

// loadSecret reads the Google client secret from the configured JSON,
// accepting both "installed" and "web" layouts.
func loadSecret() (*googleSecret, error) {
	raw := config.YouTubeClientSecretJSON()
	if raw == "" {
		return nil, fmt.Errorf("Googleクライアントシークレットが設定されていません")
	}
	var wrapper map[string]googleSecret
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		return nil, fmt.Errorf("client secret JSONの解析に失敗しました: %w", err)
	}
	for _, key := range []string{"installed", "web"} {
		if s, ok := wrapper[key]; ok && s.ClientID != "" {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("client secret JSONにinstalled/webキーがありません")
}

func oauthConfig() (*oauth2.Config, error) {
	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}
	authURI := secret.AuthURI
	if authURI == "" {
		authURI = "https://accounts.google.com/o/oauth2/auth"
	}
	tokenURI := secret.TokenURI
	if tokenURI == "" {
		tokenURI = "https://oauth2.googleapis.com/token"
	}
	return &oauth2.Config{
		ClientID:     secret.ClientID,
		ClientSecret: secret.ClientSecret,
		RedirectURL:  config.CalendarRedirectURI(),
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURI,
			TokenURL: tokenURI,
		},
	}, nil
}

// AuthURL builds the consent URL for the frontend to open.
func AuthURL() (string, error) {
	conf, err := oauthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account consent"),
	), nil
}

// ExchangeCode trades the callback code for tokens and persists them.
func ExchangeCode(code string) error {
	conf, err := oauthConfig()
	if err != nil {
		return err
	}

	tok, err := conf.Exchange(context.Background(), code)
	if err != nil {
		return fmt.Errorf("認証コードの交換に失敗しました: %w", err)
	}

	return saveToken(conf, tok)
}

func saveToken(conf *oauth2.Config, tok *oauth2.Token) error {
	tokenMu.Lock()
	defer tokenMu.Unlock()

	saved := savedToken{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       Scopes,
		Expiry:       tok.Expiry.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(tokenFile, data, 0600)
}

// loadToken reads the persisted token, seeding from the env on first run.
func loadToken() (*savedToken, error) {
	tokenMu.Lock()
	defer tokenMu.Unlock()

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		if raw := config.CalendarTokenJSON(); raw != "" {
			data = []byte(raw)
		} else {
			return nil, ErrNotAuthenticated
		}
	}

	var saved savedToken
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("トークンJSONの解析に失敗しました: %w", err)
	}
	if saved.RefreshToken == "" && saved.Token == "" {
		return nil, ErrNotAuthenticated
	}
	return &saved, nil
}

// AccessToken returns a valid access token, refreshing when expired.
func AccessToken() (string, error) {
	saved, err := loadToken()
	if err != nil {
		return "", err
	}

	conf, err := oauthConfig()
	if err != nil {
		return "", err
	}

	expiry, _ := time.Parse(time.RFC3339, saved.Expiry)
	tok := &oauth2.Token{
		AccessToken:  saved.Token,
		RefreshToken: saved.RefreshToken,
		Expiry:       expiry,
	}

	fresh, err := conf.TokenSource(context.Background(), tok).Token()
	if err != nil {
		return "", fmt.Errorf("アクセストークンの更新に失敗しました: %w", err)
	}

	if fresh.AccessToken != saved.Token {
		if err := saveToken(conf, fresh); err != nil {
			return "", err
		}
	}
	return fresh.AccessToken, nil
}

// Authenticated reports whether a usable token exists.
func Authenticated() bool {
	_, err := loadToken()
	return err == nil
}
