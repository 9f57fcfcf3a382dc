package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// loadWithViper reads the application configs using viper.
//
// It looks for a "configs.yaml" file in the "./configs" directory and the
// working directory, and allows any value to be overridden through env vars
// (for example AUTHGATE_JWT_SECRET overrides jwt.secret).
func loadWithViper() Config {
	viper.SetConfigName("configs")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("authgate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		panic("failed to read config file: " + err.Error())
	}

	var cfg Config
	err := viper.Unmarshal(&cfg,
		// The config struct is tagged with yaml, not mapstructure.
		func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" },
		viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc()),
	)
	if err != nil {
		panic("failed to unmarshal configs: " + err.Error())
	}

	return cfg
}

// setDefaults registers defaults for everything that has a sensible one.
// Provider endpoints rarely change, so they are defaulted to the official URLs.
func setDefaults() {
	viper.SetDefault("application.name", "authgate")
	viper.SetDefault("http_server.addr", "0.0.0.0:8080")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.pretty", false)

	viper.SetDefault("cookie.secure", false)
	viper.SetDefault("cookie.same_site", "Lax")

	viper.SetDefault("jwt.expiry", "24h")

	viper.SetDefault("google.auth_url", "https://accounts.google.com/o/oauth2/v2/auth")
	viper.SetDefault("google.token_url", "https://oauth2.googleapis.com/token")
	viper.SetDefault("google.api_url", "https://www.googleapis.com/oauth2/v2")
	viper.SetDefault("google.frontend_url", "http://localhost:3001")

	viper.SetDefault("kakao.auth_url", "https://kauth.kakao.com/oauth/authorize")
	viper.SetDefault("kakao.token_url", "https://kauth.kakao.com/oauth/token")
	viper.SetDefault("kakao.api_url", "https://kapi.kakao.com")
	viper.SetDefault("kakao.frontend_url", "http://localhost:3001")

	viper.SetDefault("naver.auth_url", "https://nid.naver.com/oauth2.0/authorize")
	viper.SetDefault("naver.token_url", "https://nid.naver.com/oauth2.0/token")
	viper.SetDefault("naver.api_url", "https://openapi.naver.com/v1/nid")
	viper.SetDefault("naver.frontend_url", "http://localhost:3001")
}
