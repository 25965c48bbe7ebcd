// Package minimax implements the Minimax asynchronous text-to-speech
// API: upload the narration text, submit a synthesis task, poll until
// it finishes, then download the audio.
package minimax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"newsreel/pkg/httputil"
)

const (
	defaultBaseURL = "https://api.minimaxi.com/v1"
	defaultTimeout = 60 * time.Second

	defaultModel   = "speech-02-hd"
	defaultVoiceID = "female-shaonv"

	defaultPollInterval = 2 * time.Second
	defaultPollAttempts = 120
)

// Task statuses reported by the query endpoint.
const (
	StatusSuccess    = "Success"
	StatusProcessing = "Processing"
	StatusFailed     = "Failed"
	StatusCancel     = "Cancel"
)

type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *httputil.RetryClient
	model        string
	voiceID      string
	pollInterval time.Duration
	pollAttempts int
}

type Options struct {
	Model        string
	VoiceID      string
	BaseURL      string
	PollInterval time.Duration
	PollAttempts int
}

// baseResp is the status envelope every Minimax response carries.
type baseResp struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

func (b baseResp) err() error {
	if b.StatusCode == 0 {
		return nil
	}
	msg := b.StatusMsg
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Errorf("minimax error %d: %s", b.StatusCode, msg)
}

type uploadResponse struct {
	BaseResp baseResp `json:"base_resp"`
	FileID   int64    `json:"file_id"`
	File     struct {
		FileID int64 `json:"file_id"`
	} `json:"file"`
}

type submitResponse struct {
	BaseResp baseResp `json:"base_resp"`
	TaskID   int64    `json:"task_id"`
}

type queryResponse struct {
	BaseResp baseResp `json:"base_resp"`
	Status   string   `json:"status"`
	FileID   int64    `json:"file_id"`
}

type submitRequest struct {
	Model         string        `json:"model"`
	TextFileID    int64         `json:"text_file_id"`
	LanguageBoost string        `json:"language_boost"`
	VoiceSetting  voiceSetting  `json:"voice_setting"`
	AudioSetting  audioSetting  `json:"audio_setting"`
	VoiceModify   voiceModify   `json:"voice_modify"`
}

type voiceSetting struct {
	VoiceID string  `json:"voice_id"`
	Speed   float64 `json:"speed"`
	Vol     float64 `json:"vol"`
	Pitch   float64 `json:"pitch"`
}

type audioSetting struct {
	SampleRate int    `json:"audio_sample_rate"`
	Bitrate    int    `json:"bitrate"`
	Format     string `json:"format"`
	Channel    int    `json:"channel"`
}

type voiceModify struct {
	Pitch     int `json:"pitch"`
	Intensity int `json:"intensity"`
	Timbre    int `json:"timbre"`
}

func NewClient(apiKey string, opts Options) *Client {
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	voiceID := opts.VoiceID
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	base := opts.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	attempts := opts.PollAttempts
	if attempts <= 0 {
		attempts = defaultPollAttempts
	}

	return &Client{
		apiKey: apiKey,
		httpClient: httputil.NewRetryClient(&http.Client{
			Timeout: defaultTimeout,
		}, httputil.DefaultRetryConfig()),
		baseURL:      base,
		model:        model,
		voiceID:      voiceID,
		pollInterval: interval,
		pollAttempts: attempts,
	}
}

// Synthesize runs the full task lifecycle for one section of narration
// and returns the mp3 bytes.
func (c *Client) Synthesize(ctx context.Context, name, text string) ([]byte, error) {
	fileID, err := c.UploadText(ctx, name, text)
	if err != nil {
		return nil, err
	}

	taskID, err := c.SubmitTask(ctx, fileID)
	if err != nil {
		return nil, err
	}

	resultID, err := c.WaitForCompletion(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return c.Download(ctx, resultID)
}

// UploadText uploads the narration text as a plain-text file and
// returns the file id the synthesis task references.
func (c *Client) UploadText(ctx context.Context, name, text string) (int64, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("purpose", "t2a_async_input"); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write([]byte(text)); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/upload", &buf)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var result uploadResponse
	if err := c.do(req, &result); err != nil {
		return 0, fmt.Errorf("file upload failed: %w", err)
	}

	fileID := result.FileID
	if fileID == 0 {
		fileID = result.File.FileID
	}
	if fileID == 0 {
		return 0, fmt.Errorf("upload response carried no file id")
	}
	return fileID, nil
}

// SubmitTask queues an asynchronous synthesis task for an uploaded
// text file and returns its task id.
func (c *Client) SubmitTask(ctx context.Context, fileID int64) (int64, error) {
	body := submitRequest{
		Model:         c.model,
		TextFileID:    fileID,
		LanguageBoost: "auto",
		VoiceSetting: voiceSetting{
			VoiceID: c.voiceID,
			Speed:   1,
			Vol:     1,
			Pitch:   1,
		},
		AudioSetting: audioSetting{
			SampleRate: 44100,
			Bitrate:    256000,
			Format:     "mp3",
			Channel:    2,
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/t2a_async_v2", bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var result submitResponse
	if err := c.do(req, &result); err != nil {
		return 0, fmt.Errorf("task submission failed: %w", err)
	}
	if result.TaskID == 0 {
		return 0, fmt.Errorf("submit response carried no task id")
	}
	return result.TaskID, nil
}

// QueryTask returns the current status of a synthesis task and, once
// it succeeds, the id of the result file.
func (c *Client) QueryTask(ctx context.Context, taskID int64) (status string, resultFileID int64, err error) {
	endpoint := fmt.Sprintf("%s/query/t2a_async_query_v2?task_id=%d", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var result queryResponse
	if err := c.do(req, &result); err != nil {
		return "", 0, fmt.Errorf("task query failed: %w", err)
	}
	return result.Status, result.FileID, nil
}

// WaitForCompletion polls the task until it succeeds, fails, or the
// attempt budget runs out.
func (c *Client) WaitForCompletion(ctx context.Context, taskID int64) (int64, error) {
	for attempt := 0; attempt < c.pollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}

		status, fileID, err := c.QueryTask(ctx, taskID)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			// Transient query errors do not fail the task.
			continue
		}

		switch status {
		case StatusSuccess:
			if fileID == 0 {
				return 0, fmt.Errorf("task %d succeeded without a result file", taskID)
			}
			return fileID, nil
		case StatusFailed, StatusCancel:
			return 0, fmt.Errorf("task %d ended with status %s", taskID, status)
		}
	}
	return 0, fmt.Errorf("task %d did not finish after %d attempts", taskID, c.pollAttempts)
}

// Download retrieves the synthesized audio bytes for a result file.
func (c *Client) Download(ctx context.Context, fileID int64) ([]byte, error) {
	endpoint := c.baseURL + "/files/retrieve_content?" + url.Values{
		"file_id": []string{fmt.Sprintf("%d", fileID)},
	}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty audio response for file %d", fileID)
	}
	return body, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	switch r := out.(type) {
	case *uploadResponse:
		return r.BaseResp.err()
	case *submitResponse:
		return r.BaseResp.err()
	case *queryResponse:
		return r.BaseResp.err()
	}
	return nil
}
