package source

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
)

// Subject files are small; anything larger is rejected
const maxSize = 1 << 20

// Load reads a JSON list of subjects from a file path or an http(s) URL.
// Omitted importance, difficulty and deadline take the form defaults.
func Load(location string) ([]domain.Subject, error) {
	var data []byte
	var err error
	if IsURL(location) {
		data, err = fetch(location)
	} else {
		data, err = readFile(location)
	}
	if err != nil {
		return nil, err
	}

	var inputs []domain.SubjectInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse subjects: %w", err)
	}

	subjects := make([]domain.Subject, len(inputs))
	for i, in := range inputs {
		subjects[i] = in.Subject()
	}
	return subjects, nil
}

// IsURL checks if a string looks like a URL
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read subjects: %w", err)
	}
	defer f.Close()
	return readLimited(f)
}

func fetch(rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read subjects: %w", err)
	}
	if len(data) > maxSize {
		return nil, fmt.Errorf("subject list exceeds %d bytes", maxSize)
	}
	return data, nil
}
