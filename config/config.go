package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTExpireHour int // JWT 有效期（小时）
	OAuthStateTTL int // OAuth2 state 有效期（秒）

	// OAuth2 提供方配置（web / android 两套客户端）
	GitHub OAuthProvider
	Google OAuthProvider

	WebSuccessRedirectURL string // OAuth 登录成功后 web 端跳转地址
}

// OAuthProvider 单个 OAuth2 提供方的客户端配置
type OAuthProvider struct {
	WebClientID         string
	WebClientSecret     string
	WebRedirectURI      string
	AndroidClientID     string
	AndroidClientSecret string
	AndroidRedirectURI  string
}

func Load() *Config {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	jwtExpireHour, _ := strconv.Atoi(getEnv("JWT_EXPIRE_HOUR", "24"))
	oauthStateTTL, _ := strconv.Atoi(getEnv("OAUTH_STATE_TTL", "900"))

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpireHour: jwtExpireHour,
		OAuthStateTTL: oauthStateTTL,

		WebSuccessRedirectURL: getEnv("WEB_SUCCESS_REDIRECT_URL", "http://localhost:8100/tabs/posts"),
	}

	cfg.GitHub = OAuthProvider{
		WebClientID:         os.Getenv("GITHUB_CLIENT_ID_WEB"),
		WebClientSecret:     os.Getenv("GITHUB_CLIENT_SECRET_WEB"),
		WebRedirectURI:      os.Getenv("GITHUB_CLIENT_REDIRECT_URI_WEB"),
		AndroidClientID:     os.Getenv("GITHUB_CLIENT_ID_ANDROID"),
		AndroidClientSecret: os.Getenv("GITHUB_CLIENT_SECRET_ANDROID"),
		AndroidRedirectURI:  os.Getenv("GITHUB_CLIENT_REDIRECT_URI_ANDROID"),
	}
	cfg.Google = OAuthProvider{
		WebClientID:         os.Getenv("GOOGLE_CLIENT_ID_WEB"),
		WebClientSecret:     os.Getenv("GOOGLE_CLIENT_SECRET_WEB"),
		WebRedirectURI:      os.Getenv("GOOGLE_CLIENT_REDIRECT_URI_WEB"),
		AndroidClientID:     os.Getenv("GOOGLE_CLIENT_ID_ANDROID"),
		AndroidClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET_ANDROID"),
		AndroidRedirectURI:  os.Getenv("GOOGLE_CLIENT_REDIRECT_URI_ANDROID"),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
