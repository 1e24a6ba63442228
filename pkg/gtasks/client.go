package gtasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Client wraps the Google Tasks API service.
type Client struct {
	service  *tasks.Service
	taskList string
}

const defaultTaskList = "@default"

// NewClientFromCredentialsFile creates a Tasks client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath, taskList string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, taskList)
}

// NewClientFromCredentialsJSON creates a Tasks client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, taskList string) (*Client, error) {
	if taskList == "" {
		taskList = defaultTaskList
	}

	// Try service account first
	config, err := google.JWTConfigFromJSON(credentialsJSON, tasks.TasksScope)
	if err == nil {
		svc, svcErr := tasks.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create tasks service: %w", svcErr)
		}
		return &Client{service: svc, taskList: taskList}, nil
	}

	// Fallback: OAuth2 installed app credentials with a saved token.json
	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{tasks.TasksScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token.json found: use Service Account instead")
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	svc, svcErr := tasks.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create tasks service from OAuth token: %w", svcErr)
	}
	return &Client{service: svc, taskList: taskList}, nil
}

// NewClientFromHTTP creates a Tasks client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client, taskList string) (*Client, error) {
	if taskList == "" {
		taskList = defaultTaskList
	}
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{service: svc, taskList: taskList}, nil
}

// CreateTask inserts a task into the configured task list.
func (c *Client) CreateTask(ctx context.Context, req NewTask) (*Task, error) {
	t := &tasks.Task{
		Title: req.Title,
		Notes: req.Notes,
	}
	if req.Due != "" {
		due, err := time.Parse("2006-01-02", req.Due)
		if err != nil {
			return nil, fmt.Errorf("invalid due date %q: %w", req.Due, err)
		}
		// The Tasks API only keeps the date portion of the timestamp.
		t.Due = due.UTC().Format(time.RFC3339)
	}

	created, err := c.service.Tasks.Insert(c.taskList, t).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &Task{
		ID:      created.Id,
		Title:   created.Title,
		WebLink: created.SelfLink,
	}, nil
}
