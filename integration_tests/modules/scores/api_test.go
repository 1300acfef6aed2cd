package scoresintegrationtests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoresBody struct {
	Success      bool              `json:"success"`
	Scores       []json.RawMessage `json:"scores"`
	DailyWinners []json.RawMessage `json:"dailyWinners"`
	Score        *struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"score"`
	Qualifies bool   `json:"qualifies"`
	Rank      int    `json:"rank"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

func do(t *testing.T, method, url, client, token, body string) (*http.Response, scoresBody) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if client != "" {
		req.Header.Set("X-Forwarded-For", client)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out scoresBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestAPI_SubmitAndRead(t *testing.T) {
	_, server := SetupTestServer(t)
	url := server.URL + "/api/scores"

	resp, body := do(t, http.MethodPost, url, "203.0.113.1", "", `{"name":"  Comet ","score":640}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body.Error)
	require.NotNil(t, body.Score)
	assert.Equal(t, "Comet", body.Score.Name)

	resp, _ = do(t, http.MethodPost, url, "203.0.113.1", "", `{"name":"Comet","score":640}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, mode := range []string{"today", "all-time", ""} {
		resp, body = do(t, http.MethodGet, url+"?mode="+mode, "", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body.Scores, 1, "mode %q collapses duplicates", mode)
	}

	resp, body = do(t, http.MethodGet, url+"?mode=daily-winners", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.DailyWinners, 1)
	assert.Nil(t, body.Scores)
}

func TestAPI_LongNameIsTruncated(t *testing.T) {
	_, server := SetupTestServer(t)
	url := server.URL + "/api/scores"

	resp, body := do(t, http.MethodPost, url, "203.0.113.9", "", `{"name":" abcdefghijk ","score":77}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body.Error)
	require.NotNil(t, body.Score)
	assert.Equal(t, "abcdefghij", body.Score.Name)

	resp, body = do(t, http.MethodGet, url+"?mode=all-time", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Scores, 1)

	var stored struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	require.NoError(t, json.Unmarshal(body.Scores[0], &stored))
	assert.Equal(t, "abcdefghij", stored.Name)
	assert.Equal(t, 77, stored.Score)
}

func TestAPI_Qualify(t *testing.T) {
	_, server := SetupTestServer(t)
	url := server.URL + "/api/scores"

	for i := 0; i < 10; i++ {
		resp, _ := do(t, http.MethodPost, url, fmt.Sprintf("198.51.100.%d", i), "", fmt.Sprintf(`{"name":"p%d","score":%d}`, i, 100+i*10))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := do(t, http.MethodGet, url+"/qualify?score=100", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, body.Qualifies, "equal to the tenth row does not qualify")

	resp, body = do(t, http.MethodGet, url+"/qualify?score=195", "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Qualifies)
	assert.Equal(t, 1, body.Rank)

	resp, _ = do(t, http.MethodGet, url+"/qualify?score=abc", "", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Rejections(t *testing.T) {
	_, server := SetupTestServer(t)
	url := server.URL + "/api/scores"

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{"name":`, http.StatusBadRequest},
		{"score too high", `{"name":"x","score":1001}`, http.StatusBadRequest},
		{"blank name", `{"name":"   ","score":1}`, http.StatusBadRequest},
		{"negative score", `{"name":"x","score":-1}`, http.StatusBadRequest},
		{"body too large", `{"name":"x","score":1,"pad":"` + strings.Repeat("a", 1100) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, url, fmt.Sprintf("192.0.2.%d", i), "", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}

	resp, body := do(t, http.MethodGet, url, "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.Scores, "rejected submissions are not stored")
}

func TestAPI_RateLimit(t *testing.T) {
	_, server := SetupTestServer(t)
	url := server.URL + "/api/scores"

	for i := 0; i < 10; i++ {
		resp, _ := do(t, http.MethodPost, url, "192.0.2.200", "", `{"name":"spam","score":1}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "request %d", i+1)
	}

	resp, body := do(t, http.MethodPost, url, "192.0.2.200", "", `{"name":"spam","score":1}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.NotEmpty(t, body.Error)

	resp, _ = do(t, http.MethodPost, url, "192.0.2.201", "", `{"name":"other","score":1}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "other clients keep their own budget")
}

func TestAPI_InitSchema(t *testing.T) {
	_, server := SetupTestServer(t)
	url := server.URL + "/api/scores/init"

	resp, body := do(t, http.MethodGet, url, "", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, body.Success)

	resp, body = do(t, http.MethodGet, url, "", "wrong", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = do(t, http.MethodGet, url, "", adminToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body.Error)
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Message)
}
