package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expectedStatus int) {
	t.Helper()
	if resp.StatusCode != expectedStatus {
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, expectedStatus, resp.StatusCode,
			"Unexpected status code. Response body: %s", string(body))
	}
}

// AssertJSONResponse validates response is valid JSON and returns parsed body
func AssertJSONResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	var result map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "Response is not valid JSON: %s", string(body))

	return result
}

// AssertEnvelope validates the standard {success, data} response shape
// and returns the data payload.
func AssertEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	body := AssertJSONResponse(t, resp)
	success, ok := body["success"].(bool)
	require.True(t, ok, "Response missing 'success' field")
	require.True(t, success, "Expected success=true, body: %v", body)

	data, _ := body["data"].(map[string]interface{})
	return data
}

// AssertHealthy checks if health endpoint returns healthy status
func AssertHealthy(t *testing.T, client *APIClient) {
	t.Helper()

	resp, err := client.Get("/health")
	require.NoError(t, err, "Failed to call health endpoint")
	defer resp.Body.Close()

	AssertStatusCode(t, resp, http.StatusOK)

	body := AssertJSONResponse(t, resp)
	status, ok := body["status"].(string)
	require.True(t, ok, "Health response missing 'status' field")
	assert.Equal(t, "healthy", status, "Service is not healthy")
}

// AssertFieldValue checks if a field has expected value
func AssertFieldValue(t *testing.T, data map[string]interface{}, field string, expected interface{}) {
	t.Helper()
	actual, exists := data[field]
	require.True(t, exists, "Field '%s' not found in response", field)
	assert.Equal(t, expected, actual, "Field '%s' has unexpected value", field)
}

// WaitForHealthy polls health endpoint until service is ready or timeout
func WaitForHealthy(t *testing.T, client *APIClient, maxAttempts int) error {
	t.Helper()

	for i := 0; i < maxAttempts; i++ {
		resp, err := client.Get("/health")
		if err != nil {
			t.Logf("Health check attempt %d/%d failed: %v", i+1, maxAttempts, err)
			continue
		}

		var healthResp map[string]interface{}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		json.Unmarshal(body, &healthResp)

		if status, ok := healthResp["status"].(string); ok && status == "healthy" {
			t.Logf("Service healthy after %d attempts", i+1)
			return nil
		}

		if i < maxAttempts-1 {
			t.Logf("Service not healthy yet, retrying... (%d/%d)", i+1, maxAttempts)
		}
	}

	return fmt.Errorf("service did not become healthy after %d attempts", maxAttempts)
}
