package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numStudents  = 200
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== campusd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Students: %d\n\n", numWorkers, testDuration, numStudents)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Print("Registering accounts... ")
	tokens := make([]string, 0, numStudents)
	for i := 0; i < numStudents; i++ {
		token, ok := registerAndLogin(fmt.Sprintf("loadtest-stu-%d@campus.edu", i), "student")
		if !ok {
			fmt.Printf("FAILED at student %d\n", i)
			return
		}
		tokens = append(tokens, token)
	}
	facultyToken, ok := registerAndLogin("loadtest-fac@campus.edu", "faculty")
	if !ok {
		fmt.Println("FAILED: faculty account")
		return
	}
	fmt.Println("OK")

	// Phase 1: write-heavy, every store mutation rewrites a whole
	// collection so this is the painful path.
	fmt.Println("\n--- Phase 1: Booking writes (POST /api/bookings) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doBook(rng, tokens[rng.Intn(len(tokens))])
	})

	// Phase 2: one QR session, everyone scanning at once.
	fmt.Println("\n--- Phase 2: Attendance stampede (POST /api/attendance/mark) ---")
	qrData, ok := issueQR(facultyToken)
	if !ok {
		fmt.Println("FAILED: could not issue QR session")
		return
	}
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doMark(qrData, tokens[rng.Intn(len(tokens))])
	})

	// Phase 3: read-heavy mix over cached and uncached endpoints.
	fmt.Println("\n--- Phase 3: Read-heavy mix (90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		token := tokens[rng.Intn(len(tokens))]
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doBook(rng, token)
		case r < 0.40:
			return doGet("/api/courses", "GET /api/courses", token)
		case r < 0.60:
			return doGet("/api/announcements", "GET /api/announcements", token)
		case r < 0.80:
			return doGet("/api/attendance/summary", "GET /api/attendance/summary", token)
		default:
			return doGet("/api/analytics/dashboard", "GET /api/analytics/dashboard", facultyToken)
		}
	})
}

func registerAndLogin(email, role string) (string, bool) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "loadtest-password",
		"name":     "Load Tester",
		"role":     role,
	})
	resp, err := httpClient.Post(baseURL+"/api/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 409 means the account survived a previous run, which is fine.
	if resp.StatusCode != 201 && resp.StatusCode != 409 {
		return "", false
	}

	body, _ = json.Marshal(map[string]string{"email": email, "password": "loadtest-password"})
	resp, err = httpClient.Post(baseURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	var payload struct {
		User struct {
			Token string `json:"token"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false
	}
	return payload.User.Token, payload.User.Token != ""
}

func issueQR(facultyToken string) (string, bool) {
	body, _ := json.Marshal(map[string]string{"course_id": "LOADTEST101"})
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/attendance/generate-qr", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+facultyToken)
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	var payload struct {
		QRCode struct {
			CodeData  string `json:"code_data"`
			CourseID  string `json:"course_id"`
			LectureID string `json:"lecture_id"`
		} `json:"qr_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false
	}
	qr := payload.QRCode
	return fmt.Sprintf("%s|%s|%s", qr.CodeData, qr.CourseID, qr.LectureID), qr.CodeData != ""
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-34s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 100))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-34s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 100))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doBook(rng *rand.Rand, token string) result {
	body, _ := json.Marshal(map[string]string{
		"room_id":    fmt.Sprintf("room-%d", rng.Intn(50)),
		"date":       time.Now().AddDate(0, 0, rng.Intn(30)+1).Format("2006-01-02"),
		"start_time": fmt.Sprintf("%02d:00", rng.Intn(12)+8),
		"end_time":   fmt.Sprintf("%02d:00", rng.Intn(12)+9),
		"purpose":    "load test",
	})
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /api/bookings", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 404 (unknown room) and 409 (slot taken) are expected outcomes, not
	// failures of the server.
	ok := resp.StatusCode == 201 || resp.StatusCode == 404 || resp.StatusCode == 409
	return result{"POST /api/bookings", resp.StatusCode, lat, !ok}
}

func doMark(qrData, token string) result {
	body, _ := json.Marshal(map[string]string{"qr_data": qrData})
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/attendance/mark", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /api/attendance/mark", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// Duplicate marks and expiry of the shared code both come back 409.
	ok := resp.StatusCode == 201 || resp.StatusCode == 409
	return result{"POST /api/attendance/mark", resp.StatusCode, lat, !ok}
}

func doGet(path, label, token string) result {
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{label, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{label, resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
