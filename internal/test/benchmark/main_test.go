//go:build integration

package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/go-resty/resty/v2"
)

// TestConfig points the load tests at a running server
type TestConfig struct {
	BaseURL     string  `json:"base_url"`
	AdminUser   string  `json:"admin_user"`
	AdminPass   string  `json:"admin_pass"`
	Concurrency int     `json:"concurrency"`
	Requests    int     `json:"requests"`
	MinSuccess  float64 `json:"min_success_rate"`
}

var (
	config    TestConfig
	authToken string
)

func TestMain(m *testing.M) {
	if err := loadConfig(); err != nil {
		fmt.Printf("load benchmark config: %v\n", err)
		os.Exit(1)
	}
	if err := login(); err != nil {
		fmt.Printf("login: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// loadConfig reads test_config.json when present
func loadConfig() error {
	config = TestConfig{
		BaseURL:     "http://localhost:8080/api/v1",
		AdminUser:   "admin",
		AdminPass:   "admin123",
		Concurrency: 10,
		Requests:    100,
		MinSuccess:  99,
	}

	data, err := os.ReadFile("test_config.json")
	if err != nil {
		return nil
	}
	return json.Unmarshal(data, &config)
}

func login() error {
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	resp, err := resty.New().SetBaseURL(config.BaseURL).R().
		SetBody(map[string]string{"username": config.AdminUser, "password": config.AdminPass}).
		SetResult(&body).
		Post("/auth/login")
	if err != nil {
		return err
	}
	if !body.Success || body.Data.AccessToken == "" {
		return fmt.Errorf("login rejected with status %d", resp.StatusCode())
	}
	authToken = body.Data.AccessToken
	return nil
}

func runList(t *testing.T, path string) {
	t.Helper()
	result := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken).RunGET(path)
	result.PrintResult()
	if rate := result.SuccessRate(); rate < config.MinSuccess {
		t.Errorf("GET %s success rate %.2f%% below %.2f%%", path, rate, config.MinSuccess)
	}
}

func TestHouseholdList(t *testing.T) { runList(t, "/households") }
func TestUserList(t *testing.T) { runList(t, "/users") }
func TestFeeServiceList(t *testing.T) { runList(t, "/fee-services") }
func TestUtilityUsageList(t *testing.T) { runList(t, "/utility-usages") }
func TestDashboard(t *testing.T) { runList(t, "/reports/dashboard") }
