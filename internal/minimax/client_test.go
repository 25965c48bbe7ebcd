package minimax

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(serverURL string, attempts int) *Client {
	return NewClient("test-key", Options{
		BaseURL:      serverURL,
		PollInterval: time.Millisecond,
		PollAttempts: attempts,
	})
}

func TestSynthesize(t *testing.T) {
	var queries atomic.Int32
	audio := []byte("mp3 bytes that are definitely long enough for a test")

	mux := http.NewServeMux()
	mux.HandleFunc("/files/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("upload method = %s", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("purpose"); got != "t2a_async_input" {
			t.Errorf("purpose = %q", got)
		}
		fmt.Fprint(w, `{"base_resp":{"status_code":0},"file":{"file_id":101}}`)
	})
	mux.HandleFunc("/t2a_async_v2", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		fmt.Fprint(w, `{"base_resp":{"status_code":0},"task_id":202}`)
	})
	mux.HandleFunc("/query/t2a_async_query_v2", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("task_id"); got != "202" {
			t.Errorf("task_id = %q", got)
		}
		if queries.Add(1) < 3 {
			fmt.Fprint(w, `{"base_resp":{"status_code":0},"status":"Processing"}`)
			return
		}
		fmt.Fprint(w, `{"base_resp":{"status_code":0},"status":"Success","file_id":303}`)
	})
	mux.HandleFunc("/files/retrieve_content", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("file_id"); got != "303" {
			t.Errorf("file_id = %q", got)
		}
		w.Write(audio)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL, 10)
	got, err := client.Synthesize(context.Background(), "section.txt", "测试文本。")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(got) != string(audio) {
		t.Errorf("audio mismatch")
	}
	if queries.Load() != 3 {
		t.Errorf("query count = %d, want 3", queries.Load())
	}
}

func TestUploadTextAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base_resp":{"status_code":1004,"status_msg":"invalid api key"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 10)
	if _, err := client.UploadText(context.Background(), "a.txt", "文本"); err == nil {
		t.Fatal("want error for non-zero status_code")
	}
}

func TestWaitForCompletionFailedTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base_resp":{"status_code":0},"status":"Failed"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 10)
	if _, err := client.WaitForCompletion(context.Background(), 1); err == nil {
		t.Fatal("want error for failed task")
	}
}

func TestWaitForCompletionTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base_resp":{"status_code":0},"status":"Processing"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	if _, err := client.WaitForCompletion(context.Background(), 1); err == nil {
		t.Fatal("want error after attempt budget is spent")
	}
}

func TestWaitForCompletionContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base_resp":{"status_code":0},"status":"Processing"}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL, 100)
	if _, err := client.WaitForCompletion(ctx, 1); err == nil {
		t.Fatal("want error for cancelled context")
	}
}
