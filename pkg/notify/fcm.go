package notify

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	fcmScope           = "https://www.googleapis.com/auth/firebase.messaging"
	defaultFCMEndpoint = "https://fcm.googleapis.com"
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	jwtBearerGrant     = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	tokenRefreshSlack  = time.Minute
)

// FCMConfig configures the Firebase Cloud Messaging HTTP v1 client.
type FCMConfig struct {
	ProjectID       string
	CredentialsPath string
	// CredentialsJSON takes precedence over CredentialsPath when set.
	CredentialsJSON []byte
	// Endpoint overrides the FCM API base URL (tests).
	Endpoint   string
	HTTPClient *http.Client
}

type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// FCMSender sends push notifications through the FCM HTTP v1 API, exchanging
// a service-account JWT assertion for a short-lived OAuth access token.
type FCMSender struct {
	projectID   string
	clientEmail string
	privateKey  *rsa.PrivateKey
	tokenURL    string
	endpoint    string
	httpClient  *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewFCMSender loads the service-account credentials and prepares the client.
func NewFCMSender(cfg FCMConfig) (*FCMSender, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("fcm project id is required")
	}
	raw := cfg.CredentialsJSON
	if len(raw) == 0 {
		if strings.TrimSpace(cfg.CredentialsPath) == "" {
			return nil, errors.New("fcm credentials are required")
		}
		data, err := os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("read fcm credentials: %w", err)
		}
		raw = data
	}
	var account serviceAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("parse fcm credentials: %w", err)
	}
	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, errors.New("fcm credentials missing client_email or private_key")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(account.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parse fcm private key: %w", err)
	}
	tokenURL := account.TokenURI
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultFCMEndpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &FCMSender{
		projectID:   cfg.ProjectID,
		clientEmail: account.ClientEmail,
		privateKey:  key,
		tokenURL:    tokenURL,
		endpoint:    endpoint,
		httpClient:  httpClient,
	}, nil
}

type fcmMessage struct {
	Message struct {
		Token        string `json:"token"`
		Notification struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"notification"`
		Data map[string]string `json:"data,omitempty"`
	} `json:"message"`
}

// Send delivers one push notification to a device token.
func (f *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	accessToken, err := f.authToken(ctx)
	if err != nil {
		return fmt.Errorf("fcm auth: %w", err)
	}
	var msg fcmMessage
	msg.Message.Token = token
	msg.Message.Notification.Title = title
	msg.Message.Notification.Body = body
	msg.Message.Data = data

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode fcm message: %w", err)
	}
	sendURL := fmt.Sprintf("%s/v1/projects/%s/messages:send", f.endpoint, f.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("fcm send: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// authToken returns a cached OAuth access token, refreshing when close to
// expiry via the signed-JWT bearer grant.
func (f *FCMSender) authToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.accessToken != "" && time.Now().Before(f.tokenExpiry.Add(-tokenRefreshSlack)) {
		return f.accessToken, nil
	}

	now := time.Now().UTC()
	assertion := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   f.clientEmail,
		"scope": fcmScope,
		"aud":   f.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	signed, err := assertion.SignedString(f.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("assertion", signed)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("token exchange: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token exchange returned empty access token")
	}
	f.accessToken = tokenResp.AccessToken
	f.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return f.accessToken, nil
}
