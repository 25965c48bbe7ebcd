package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// The daily digest always lands in the Gaming category.
const gamingCategoryID = "20"

const defaultUploadEndpoint = "https://www.googleapis.com/upload/youtube/v3/videos?uploadType=multipart&part=snippet,status"

var youtubeScopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
	"https://www.googleapis.com/auth/youtube",
}

// YouTubeAuth holds OAuth credentials and the on-disk token written by
// the auth command. The token is loaded lazily on first use.
type YouTubeAuth struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenPath string
}

func NewYouTubeAuth(clientID, clientSecret, tokenPath string) *YouTubeAuth {
	return &YouTubeAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       youtubeScopes,
		},
		tokenPath: tokenPath,
	}
}

func (a *YouTubeAuth) LoadToken() error {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("parse token: %w", err)
	}

	a.token = &token
	return nil
}

// Client returns an HTTP client that attaches and refreshes the OAuth
// token.
func (a *YouTubeAuth) Client(ctx context.Context) (*http.Client, error) {
	if a.token == nil {
		if err := a.LoadToken(); err != nil {
			return nil, err
		}
	}
	return a.config.Client(ctx, a.token), nil
}

// YouTubeUploader sends the video and its metadata in a single
// multipart request to the YouTube Data API.
type YouTubeUploader struct {
	auth     *YouTubeAuth
	endpoint string
}

func NewYouTubeUploader(auth *YouTubeAuth) *YouTubeUploader {
	return &YouTubeUploader{auth: auth, endpoint: defaultUploadEndpoint}
}

type uploadMetadata struct {
	Snippet struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		CategoryID  string   `json:"categoryId"`
	} `json:"snippet"`
	Status struct {
		PrivacyStatus string `json:"privacyStatus"`
	} `json:"status"`
}

func buildMetadata(req UploadRequest) uploadMetadata {
	var meta uploadMetadata
	meta.Snippet.Title = req.Title
	meta.Snippet.Description = req.Description
	meta.Snippet.Tags = req.Tags
	meta.Snippet.CategoryID = gamingCategoryID
	meta.Status.PrivacyStatus = req.Privacy
	return meta
}

func (u *YouTubeUploader) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	httpClient, err := u.auth.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("youtube auth: %w", err)
	}

	body, contentType, err := multipartBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload rejected: %s", string(respBody))
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse upload response: %w", err)
	}

	return &UploadResponse{
		ID:  result.ID,
		URL: fmt.Sprintf("https://youtube.com/watch?v=%s", result.ID),
	}, nil
}

// multipartBody packs the JSON metadata and the video file into the
// two-part body the uploadType=multipart endpoint expects.
func multipartBody(req UploadRequest) (*bytes.Buffer, string, error) {
	metadataJSON, err := json.Marshal(buildMetadata(req))
	if err != nil {
		return nil, "", fmt.Errorf("marshal metadata: %w", err)
	}

	videoFile, err := os.Open(req.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("open video file: %w", err)
	}
	defer func() { _ = videoFile.Close() }()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	metadataPart, err := writer.CreateFormField("snippet")
	if err != nil {
		return nil, "", fmt.Errorf("create metadata part: %w", err)
	}
	if _, err := metadataPart.Write(metadataJSON); err != nil {
		return nil, "", fmt.Errorf("write metadata: %w", err)
	}

	videoPart, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, "", fmt.Errorf("create video part: %w", err)
	}
	if _, err := io.Copy(videoPart, videoFile); err != nil {
		return nil, "", fmt.Errorf("copy video: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
