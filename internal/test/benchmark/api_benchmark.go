package benchmark

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIBenchmark fires concurrent requests at one endpoint and aggregates latency
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *resty.Client
}

// BenchmarkResult summarises one run
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	P95Time        time.Duration `json:"p95_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// RequestResult is the outcome of a single request
type RequestResult struct {
	Duration   time.Duration
	StatusCode int
	Error      error
}

// NewAPIBenchmark creates a benchmark against baseURL (for example http://localhost:8080/api/v1)
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	if concurrency <= 0 {
		concurrency = 1
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if authToken != "" {
		client.SetAuthToken(authToken)
	}

	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client:      client,
	}
}

// RunGET benchmarks a GET endpoint
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.run(http.MethodGet, path, nil)
}

// RunPOST benchmarks a POST endpoint with a JSON body
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.run(http.MethodPost, path, payload)
}

// RunPUT benchmarks a PUT endpoint with a JSON body
func (b *APIBenchmark) RunPUT(path string, payload interface{}) *BenchmarkResult {
	return b.run(http.MethodPut, path, payload)
}

// RunDELETE benchmarks a DELETE endpoint
func (b *APIBenchmark) RunDELETE(path string) *BenchmarkResult {
	return b.run(http.MethodDelete, path, nil)
}

func (b *APIBenchmark) run(method, path string, payload interface{}) *BenchmarkResult {
	results := make(chan RequestResult, b.Requests)
	var wg sync.WaitGroup
	limiter := make(chan struct{}, b.Concurrency)

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()

			req := b.Client.R()
			if payload != nil {
				req.SetBody(payload)
			}
			start := time.Now()
			resp, err := req.Execute(method, path)
			if err != nil {
				results <- RequestResult{Error: err}
				return
			}
			results <- RequestResult{Duration: time.Since(start), StatusCode: resp.StatusCode()}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := collect(results)
	result.URL = b.BaseURL + path
	result.Method = method
	result.Concurrency = b.Concurrency
	result.TotalRequests = b.Requests
	result.TotalTime = time.Since(startTime)
	if secs := result.TotalTime.Seconds(); secs > 0 {
		result.RequestsPerSec = float64(b.Requests) / secs
	}
	return result
}

// collect drains results into a BenchmarkResult without the run-level fields
func collect(results <-chan RequestResult) *BenchmarkResult {
	res := &BenchmarkResult{StatusCodes: make(map[int]int)}
	var durations []time.Duration
	var total time.Duration

	for r := range results {
		if r.Error != nil {
			res.FailureCount++
			res.Errors = append(res.Errors, r.Error.Error())
			continue
		}
		durations = append(durations, r.Duration)
		total += r.Duration
		res.StatusCodes[r.StatusCode]++
		if r.StatusCode >= 200 && r.StatusCode < 300 {
			res.SuccessCount++
		} else {
			res.FailureCount++
		}
	}

	if len(durations) == 0 {
		return res
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	res.MinTime = durations[0]
	res.MaxTime = durations[len(durations)-1]
	res.AverageTime = total / time.Duration(len(durations))
	res.P95Time = durations[(len(durations)*95-1)/100]
	return res
}

// SuccessRate is the share of 2xx answers, in percent
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// PrintResult writes a human readable summary to stdout
func (r *BenchmarkResult) PrintResult() {
	fmt.Printf("%s %s\n", r.Method, r.URL)
	fmt.Printf("  concurrency=%d requests=%d ok=%d failed=%d\n", r.Concurrency, r.TotalRequests, r.SuccessCount, r.FailureCount)
	fmt.Printf("  total=%s avg=%s min=%s max=%s p95=%s rps=%.2f\n", r.TotalTime, r.AverageTime, r.MinTime, r.MaxTime, r.P95Time, r.RequestsPerSec)

	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("  %d: %d\n", code, r.StatusCodes[code])
	}
	for i, err := range r.Errors {
		if i >= 5 {
			fmt.Printf("  ... %d more errors\n", len(r.Errors)-5)
			break
		}
		fmt.Printf("  error: %s\n", err)
	}
}
