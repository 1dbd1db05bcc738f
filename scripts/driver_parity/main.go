// Command driver_parity compares two running SpaceSync instances, typically
// one on the memory driver and one on Postgres, and reports endpoint
// differences. Time-dependent fields make byte equality too strict, so JSON
// bodies are normalised before comparison.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type target struct {
	method   string
	path     string
	admin    bool
	critical bool
}

var targets = []target{
	{method: http.MethodGet, path: "/health", critical: true},
	{method: http.MethodGet, path: "/ready", critical: true},
	{method: http.MethodGet, path: "/api/v1/floors", critical: true},
	{method: http.MethodGet, path: "/api/v1/lost-found"},
	{method: http.MethodGet, path: "/api/v1/audit-logs", admin: true},
}

type comparison struct {
	target      target
	leftStatus  int
	rightStatus int
	statusMatch bool
	bodyMatch   bool
	err         error
}

func main() {
	var (
		leftBase  string
		rightBase string
		timeout   time.Duration
	)

	flag.StringVar(&leftBase, "left", "http://localhost:8080", "first instance base URL")
	flag.StringVar(&rightBase, "right", "http://localhost:8081", "second instance base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	var breaking int

	fmt.Println("Driver Parity Report")
	fmt.Println("====================")
	for _, t := range targets {
		comp := compare(client, leftBase, rightBase, t)
		status := "OK"
		if comp.err != nil || !comp.statusMatch || !comp.bodyMatch {
			status = "DIFF"
			if t.critical {
				breaking++
			}
		}
		fmt.Printf("[%s] %s %s\n", status, t.method, t.path)
		if comp.err != nil {
			fmt.Printf("  Error: %v\n", comp.err)
			continue
		}
		fmt.Printf("  Status: %d vs %d | Body match: %t\n", comp.leftStatus, comp.rightStatus, comp.bodyMatch)
	}

	fmt.Printf("Breaking diffs: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func compare(client *http.Client, leftBase, rightBase string, tgt target) comparison {
	comp := comparison{target: tgt}

	leftStatus, leftBody, err := fetch(client, leftBase, tgt)
	if err != nil {
		comp.err = fmt.Errorf("left request failed: %w", err)
		return comp
	}
	rightStatus, rightBody, err := fetch(client, rightBase, tgt)
	if err != nil {
		comp.err = fmt.Errorf("right request failed: %w", err)
		return comp
	}

	comp.leftStatus = leftStatus
	comp.rightStatus = rightStatus
	comp.statusMatch = leftStatus == rightStatus
	comp.bodyMatch = bodiesEqual(leftBody, rightBody)
	return comp
}

func fetch(client *http.Client, base string, tgt target) (int, []byte, error) {
	url := strings.TrimRight(base, "/") + tgt.path
	req, err := http.NewRequest(tgt.method, url, nil)
	if err != nil {
		return 0, nil, err
	}
	if tgt.admin {
		req.Header.Set("X-User-Role", "admin")
		req.Header.Set("X-User", "parity-check")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

// normalize strips fields whose values legitimately differ between stores,
// like generated ids and timestamps, and collapses float forms of integers.
func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		delete(val, "id")
		delete(val, "timestamp")
		delete(val, "reportedAt")
		delete(val, "date")
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}
