package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Local-dev tunnel discovery. Both the Telegram webhook and the Drive push
// channel need a public HTTPS address; when none is configured we ask the
// ngrok sidecar's local API for its active tunnel.
const (
	ngrokDetectAttempts = 10
	ngrokDetectInterval = 3 * time.Second
)

type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL returns the first HTTPS tunnel URL from the ngrok local
// API, retrying to ride out the sidecar's startup.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= ngrokDetectAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(ngrokDetectInterval):
			}
		}

		tunnelURL, err := fetchTunnelURL(ctx, client, url)
		if err != nil {
			lastErr = err
			continue
		}
		return tunnelURL, nil
	}

	return "", fmt.Errorf("ngrok tunnel not available after %d attempts: %w", ngrokDetectAttempts, lastErr)
}

func fetchTunnelURL(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ngrok API not reachable: %w", err)
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	// Prefer HTTPS; Telegram and Drive both refuse plain-HTTP webhooks.
	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}

	return "", fmt.Errorf("ngrok has no active tunnels")
}
