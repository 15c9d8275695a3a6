package fixtures

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/perpetual-help/egov-api/tests/config"
)

// TokenResponse represents Keycloak token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// GetAuthToken obtains JWT token from Keycloak
func GetAuthToken(cfg *config.TestConfig) (string, error) {
	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token",
		cfg.KeycloakURL, cfg.KeycloakRealm)

	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("client_id", cfg.KeycloakClientID)
	data.Set("username", cfg.Username)
	data.Set("password", cfg.Password)

	client := &http.Client{Timeout: time.Duration(cfg.APICallTimeout) * time.Second}
	resp, err := client.PostForm(tokenURL, data)
	if err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	return tokenResp.AccessToken, nil
}

// APIClient wraps HTTP client with common test functionality
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewAPIClient creates a new API client for testing
func NewAPIClient(cfg *config.TestConfig, token string) *APIClient {
	return &APIClient{
		BaseURL: cfg.BaseURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.APICallTimeout) * time.Second,
		},
		Token: token,
	}
}

// Get performs authenticated GET request
func (c *APIClient) Get(path string) (*http.Response, error) {
	return c.do("GET", path, nil)
}

// Post performs authenticated POST request
func (c *APIClient) Post(path string, body interface{}) (*http.Response, error) {
	return c.do("POST", path, body)
}

// Put performs authenticated PUT request
func (c *APIClient) Put(path string, body interface{}) (*http.Response, error) {
	return c.do("PUT", path, body)
}

// Patch performs authenticated PATCH request
func (c *APIClient) Patch(path string, body interface{}) (*http.Response, error) {
	return c.do("PATCH", path, body)
}

// Delete performs authenticated DELETE request
func (c *APIClient) Delete(path string) (*http.Response, error) {
	return c.do("DELETE", path, nil)
}

func (c *APIClient) do(method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return c.HTTPClient.Do(req)
}

// CedulaStepData returns valid form data for each cedula wizard step
func CedulaStepData() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"fullName":    "Jose Protacio Rizal",
			"birthDate":   "1985-06-19",
			"civilStatus": "single",
			"height":      170,
			"weight":      65,
		},
		{
			"occupation":        "Physician",
			"grossAnnualIncome": 480000,
		},
	}
}

// TestNewsArticle returns a sample news article payload
func TestNewsArticle() map[string]interface{} {
	return map[string]interface{}{
		"title":    "Barangay Assembly Scheduled",
		"content":  "The quarterly barangay assembly will be held at the covered court.",
		"category": "community",
		"status":   "draft",
	}
}

// TestRegistration returns a sample resident registration payload
func TestRegistration() map[string]interface{} {
	return map[string]interface{}{
		"name":         "Andres Bonifacio",
		"email":        fmt.Sprintf("resident-%d@example.com", time.Now().Unix()),
		"phone_number": "+639171234567",
		"address":      "123 Mabini Street, Barangay Poblacion",
	}
}
