package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"umastagram/config"
	"umastagram/model"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidOAuthState state 无效、过期或已被使用
var ErrInvalidOAuthState = errors.New("invalid or expired oauth state")

const oauthStateKeyPrefix = "oauth:state:"

// oauthState OAuth2 授权请求的一次性状态，存 Redis 带 TTL。
// 原地图版（进程内 map）换成外部 KV：多实例共享、过期自动清理、GETDEL 保证只用一次。
type oauthState struct {
	Provider     string `json:"provider"`      // 'github' | 'google'
	Platform     string `json:"platform"`      // 'web' | 'android'
	CodeVerifier string `json:"code_verifier"` // PKCE，仅 google+android 流程使用
}

// oauthUserInfo 从第三方拉回的用户资料（字段已归一）
type oauthUserInfo struct {
	ID       string
	Username string
	Email    string
}

type OAuthService struct {
	rdb        *redis.Client
	userSvc    *UserService
	github     config.OAuthProvider
	google     config.OAuthProvider
	stateTTL   time.Duration
	httpClient *http.Client
}

func NewOAuthService(rdb *redis.Client, userSvc *UserService, cfg *config.Config) *OAuthService {
	return &OAuthService{
		rdb:        rdb,
		userSvc:    userSvc,
		github:     cfg.GitHub,
		google:     cfg.Google,
		stateTTL:   time.Duration(cfg.OAuthStateTTL) * time.Second,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BuildAuthorizeURL 生成第三方授权跳转地址，并把 state 写入 Redis（带 TTL）
func (s *OAuthService) BuildAuthorizeURL(ctx context.Context, provider, platform string) (string, error) {
	clientID, _, redirectURI, err := s.clientDetails(provider, platform)
	if err != nil {
		return "", err
	}

	var baseURL, scope string
	switch provider {
	case "github":
		baseURL = "https://github.com/login/oauth/authorize"
		scope = "read:user,user:email"
	case "google":
		baseURL = "https://accounts.google.com/o/oauth2/v2/auth"
		scope = "openid profile email"
	}

	state, err := randomToken(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	stateData := oauthState{Provider: provider, Platform: platform}

	// PKCE：google + android 流程生成 code_verifier / code_challenge
	var codeChallenge string
	if provider == "google" && platform == "android" {
		verifier, err := randomToken(64)
		if err != nil {
			return "", fmt.Errorf("failed to generate code verifier: %w", err)
		}
		stateData.CodeVerifier = verifier

		hash := sha256.Sum256([]byte(verifier))
		codeChallenge = base64.RawURLEncoding.EncodeToString(hash[:])
	}

	payload, err := json.Marshal(stateData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal oauth state: %w", err)
	}
	if err := s.rdb.Set(ctx, oauthStateKeyPrefix+state, payload, s.stateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("scope", scope)
	params.Set("response_type", "code")
	params.Set("state", state)
	if codeChallenge != "" {
		params.Set("code_challenge", codeChallenge)
		params.Set("code_challenge_method", "S256")
	}

	return baseURL + "?" + params.Encode(), nil
}

// HandleCallback 处理授权回调：消费 state → 换 token → 拉用户资料 → 落库
//
// state 用 GETDEL 原子取走，保证一次性；不存在或已过期都是 ErrInvalidOAuthState。
// 返回用户和发起授权时记录的 platform（决定回调以跳转还是 JSON 响应）。
func (s *OAuthService) HandleCallback(ctx context.Context, provider, code, state string) (*model.User, string, error) {
	payload, err := s.rdb.GetDel(ctx, oauthStateKeyPrefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", ErrInvalidOAuthState
		}
		return nil, "", fmt.Errorf("failed to load oauth state: %w", err)
	}

	var stateData oauthState
	if err := json.Unmarshal([]byte(payload), &stateData); err != nil {
		return nil, "", fmt.Errorf("failed to parse oauth state: %w", err)
	}
	if stateData.Provider != provider {
		return nil, "", ErrInvalidOAuthState
	}

	accessToken, err := s.exchangeCodeForToken(ctx, provider, stateData.Platform, code, stateData.CodeVerifier)
	if err != nil {
		return nil, "", fmt.Errorf("token exchange failed: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, provider, accessToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch user info: %w", err)
	}

	user, err := s.userSvc.FindOrCreateOAuthUser(info.ID, info.Username, info.Email)
	if err != nil {
		return nil, "", err
	}

	return user, stateData.Platform, nil
}

// exchangeCodeForToken 用授权码换 access_token
//
// GitHub 回包是 form-encoded，Google 是 JSON。PKCE 流程带 code_verifier、不带 client_secret。
func (s *OAuthService) exchangeCodeForToken(ctx context.Context, provider, platform, code, codeVerifier string) (string, error) {
	clientID, clientSecret, redirectURI, err := s.clientDetails(provider, platform)
	if err != nil {
		return "", err
	}

	var tokenURL string
	switch provider {
	case "github":
		tokenURL = "https://github.com/login/oauth/access_token"
	case "google":
		tokenURL = "https://oauth2.googleapis.com/token"
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", clientID)
	if codeVerifier != "" {
		form.Set("code_verifier", codeVerifier)
	} else {
		form.Set("client_secret", clientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	if provider == "github" {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return "", fmt.Errorf("failed to parse token response: %w", err)
		}
		if errCode := values.Get("error"); errCode != "" {
			return "", fmt.Errorf("oauth error: %s - %s", errCode, values.Get("error_description"))
		}
		return values.Get("access_token"), nil
	}

	var tokenResp struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.Error != "" {
		return "", fmt.Errorf("oauth error: %s - %s", tokenResp.Error, tokenResp.ErrorDescription)
	}
	return tokenResp.AccessToken, nil
}

// fetchUserInfo 拉第三方用户资料并归一字段
func (s *OAuthService) fetchUserInfo(ctx context.Context, provider, accessToken string) (*oauthUserInfo, error) {
	var userInfoURL string
	switch provider {
	case "github":
		userInfoURL = "https://api.github.com/user"
	case "google":
		userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if provider == "github" {
		req.Header.Set("User-Agent", "Umastagram")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	if provider == "github" {
		var ghUser struct {
			ID    int64  `json:"id"`
			Login string `json:"login"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
			return nil, fmt.Errorf("failed to parse user info: %w", err)
		}
		return &oauthUserInfo{
			ID:       fmt.Sprintf("%d", ghUser.ID),
			Username: ghUser.Login,
			Email:    ghUser.Email,
		}, nil
	}

	var gUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gUser); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &oauthUserInfo{
		ID:       gUser.ID,
		Username: gUser.Email,
		Email:    gUser.Email,
	}, nil
}

// clientDetails 按 provider + platform 取客户端配置
func (s *OAuthService) clientDetails(provider, platform string) (clientID, clientSecret, redirectURI string, err error) {
	var p config.OAuthProvider
	switch provider {
	case "github":
		p = s.github
	case "google":
		p = s.google
	default:
		return "", "", "", fmt.Errorf("unsupported provider: %s", provider)
	}

	switch platform {
	case "web":
		return p.WebClientID, p.WebClientSecret, p.WebRedirectURI, nil
	case "android":
		return p.AndroidClientID, p.AndroidClientSecret, p.AndroidRedirectURI, nil
	default:
		return "", "", "", fmt.Errorf("unsupported platform: %s", platform)
	}
}

// randomToken 生成 n 字节随机数的 base64url 串（无填充）
func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
