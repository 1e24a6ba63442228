package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Drive API service.
type Client struct {
	service *drive.Service
}

// NewClientFromCredentialsFile creates a Drive client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON creates a Drive client from raw Service Account JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	// Try service account first
	config, err := google.JWTConfigFromJSON(credentialsJSON, drive.DriveReadonlyScope)
	if err == nil {
		tokenSource := config.TokenSource(ctx)
		svc, svcErr := drive.NewService(ctx, option.WithTokenSource(tokenSource))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create drive service: %w", svcErr)
		}
		return &Client{service: svc}, nil
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
		Scopes:       []string{drive.DriveReadonlyScope},
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

	svc, svcErr := drive.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create drive service from OAuth token: %w", svcErr)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Drive client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Client{service: svc}, nil
}

const fileFields = "id, name, mimeType, parents, modifiedTime"

// GetFile fetches metadata for one file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	f, err := c.service.Files.Get(fileID).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get drive file %s: %w", fileID, err)
	}
	return toFile(f), nil
}

// DownloadText returns the file content as text. Native Google Docs are
// exported as text/plain; everything else is downloaded as-is.
func (c *Client) DownloadText(ctx context.Context, fileID, mimeType string) (string, error) {
	var resp *http.Response
	var err error

	if mimeType == MimeTypeGoogleDoc {
		resp, err = c.service.Files.Export(fileID, "text/plain").Context(ctx).Download()
	} else {
		resp, err = c.service.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	}
	if err != nil {
		return "", fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}
	return string(data), nil
}

// ListFiles returns all non-trashed files directly inside a folder.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]*File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false and mimeType != '%s'", folderID, mimeTypeFolder)

	var out []*File
	call := c.service.Files.List().
		Q(query).
		Fields("nextPageToken, files(" + fileFields + ")").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		PageSize(100)

	err := call.Pages(ctx, func(page *drive.FileList) error {
		for _, f := range page.Files {
			out = append(out, toFile(f))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list drive folder %s: %w", folderID, err)
	}
	return out, nil
}

// GetFolderName resolves a folder ID to its display name.
func (c *Client) GetFolderName(ctx context.Context, folderID string) (string, error) {
	f, err := c.service.Files.Get(folderID).
		Fields("name").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get drive folder %s: %w", folderID, err)
	}
	return f.Name, nil
}

// WatchFolder registers a push-notification channel on a folder. Drive posts
// to address with the channel token whenever the folder's children change.
func (c *Client) WatchFolder(ctx context.Context, folderID, channelID, token, address string, ttl time.Duration) (*WatchChannel, error) {
	ch, err := c.service.Files.Watch(folderID, &drive.Channel{
		Id:         channelID,
		Type:       "web_hook",
		Address:    address,
		Token:      token,
		Expiration: time.Now().Add(ttl).UnixMilli(),
	}).SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to watch drive folder %s: %w", folderID, err)
	}

	out := &WatchChannel{ID: ch.Id, ResourceID: ch.ResourceId}
	if ch.Expiration > 0 {
		out.Expiration = time.UnixMilli(ch.Expiration)
	}
	return out, nil
}

// StopChannel tears down a push-notification channel.
func (c *Client) StopChannel(ctx context.Context, channelID, resourceID string) error {
	err := c.service.Channels.Stop(&drive.Channel{Id: channelID, ResourceId: resourceID}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to stop drive channel %s: %w", channelID, err)
	}
	return nil
}

func toFile(f *drive.File) *File {
	out := &File{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Parents:  f.Parents,
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			out.ModifiedTime = t
		}
	}
	return out
}
