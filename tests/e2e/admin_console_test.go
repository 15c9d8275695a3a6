package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// TestAdminConsoleAccess verifies the admin surface rejects anonymous
// requests and serves authenticated listings.
func TestAdminConsoleAccess(t *testing.T) {
	baseURL := getBaseURL(t)
	client := &http.Client{Timeout: 30 * time.Second}

	t.Run("RejectsAnonymous", func(t *testing.T) {
		resp, err := client.Get(baseURL + "/admin/applications/cedula")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("Expected status 401, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	token := getAuthToken(t)

	t.Run("ListApplications", func(t *testing.T) {
		req, err := http.NewRequest("GET", baseURL+"/admin/applications/cedula?page=1&per_page=10", nil)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var response struct {
			Success bool `json:"success"`
			Data    struct {
				CurrentPage int `json:"current_page"`
				PerPage     int `json:"per_page"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !response.Success {
			t.Error("Expected success=true in list response")
		}
		if response.Data.CurrentPage != 1 {
			t.Errorf("Expected current_page 1, got %d", response.Data.CurrentPage)
		}
	})

	t.Run("ListUsers", func(t *testing.T) {
		req, err := http.NewRequest("GET", baseURL+"/admin/users", nil)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})
}
