package config

import "time"

// Config represents the configs model.
type Config struct {
	// Application is the model of application configs.
	Application struct {
		// Name of the application.
		Name string `yaml:"name"`
	} `yaml:"application"`

	Database struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"database"`

	// HTTPServer is the model of the HTTP Server configs.
	HTTPServer struct {
		// Addr is the address of the HTTP server.
		Addr string `yaml:"addr"`
	} `yaml:"http_server"`

	// Logger is the model of the application logger configs.
	Logger struct {
		// Level of the logger.
		Level string `yaml:"level"`
		// Pretty is a flag that dictates whether the log output should be pretty (human-readable).
		Pretty bool `yaml:"pretty"`
	} `yaml:"logger"`

	// Cookie controls the attributes of the session cookie.
	Cookie struct {
		// Secure should be true whenever the application runs over HTTPS.
		Secure bool `yaml:"secure"`
		// SameSite is one of "Lax", "Strict" or "None".
		SameSite string `yaml:"same_site"`
	} `yaml:"cookie"`

	// JWT holds the session credential configs.
	JWT struct {
		// Secret is the operator-supplied signing secret. It may be base64 or plain text.
		Secret string `yaml:"secret"`
		// Expiry is the lifetime of an issued credential.
		Expiry time.Duration `yaml:"expiry"`
	} `yaml:"jwt"`

	// Google, Kakao and Naver are the OAuth provider configs.
	Google Provider `yaml:"google"`
	Kakao  Provider `yaml:"kakao"`
	Naver  Provider `yaml:"naver"`
}

// Provider is the per-provider static OAuth configuration.
type Provider struct {
	// ClientID is the OAuth client ID.
	ClientID string `yaml:"client_id"`
	// ClientSecret is the OAuth client secret. Not all providers require one.
	ClientSecret string `yaml:"client_secret"`
	// RedirectURI is this application's callback URL registered with the provider.
	RedirectURI string `yaml:"redirect_uri"`
	// AuthURL is the provider's authorize endpoint.
	AuthURL string `yaml:"auth_url"`
	// TokenURL is the provider's code-to-token endpoint.
	TokenURL string `yaml:"token_url"`
	// APIURL is the base URL of the provider's profile API.
	APIURL string `yaml:"api_url"`
	// FrontendURL is the front-end base URL that the OAuth flow ends on.
	FrontendURL string `yaml:"frontend_url"`
}

// Load loads and returns the config value.
func Load() Config {
	return loadWithViper()
}

// LoadMock provides a mock instance of the config for testing purposes.
func LoadMock() Config {
	cfg := Config{}

	cfg.Application.Name = "example-application"
	cfg.HTTPServer.Addr = "localhost:8080"

	cfg.Logger.Level = "debug"
	cfg.Logger.Pretty = true

	cfg.Cookie.Secure = false
	cfg.Cookie.SameSite = "Lax"

	cfg.JWT.Secret = "mock-jwt-secret"
	cfg.JWT.Expiry = 24 * time.Hour

	cfg.Google = Provider{
		ClientID:     "mock-google-client-id",
		ClientSecret: "mock-google-client-secret",
		RedirectURI:  "http://localhost:8080/api/auth/google/callback",
		AuthURL:      "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL:     "https://oauth2.googleapis.com/token",
		APIURL:       "https://www.googleapis.com/oauth2/v2",
		FrontendURL:  "http://localhost:3001",
	}
	cfg.Kakao = Provider{
		ClientID:    "mock-kakao-client-id",
		RedirectURI: "http://localhost:8080/api/auth/kakao/callback",
		AuthURL:     "https://kauth.kakao.com/oauth/authorize",
		TokenURL:    "https://kauth.kakao.com/oauth/token",
		APIURL:      "https://kapi.kakao.com",
		FrontendURL: "http://localhost:3001",
	}
	cfg.Naver = Provider{
		ClientID:     "mock-naver-client-id",
		ClientSecret: "mock-naver-client-secret",
		RedirectURI:  "http://localhost:8080/api/auth/naver/callback",
		AuthURL:      "https://nid.naver.com/oauth2.0/authorize",
		TokenURL:     "https://nid.naver.com/oauth2.0/token",
		APIURL:       "https://openapi.naver.com/v1/nid",
		FrontendURL:  "http://localhost:3001",
	}

	return cfg
}
