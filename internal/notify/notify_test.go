package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	sub := FormSubmission{
		Type: "会社見学",
		Fields: []Field{
			{Label: "お名前", Value: "山田太郎"},
			{Label: "メッセージ", Value: ""},
		},
	}

	msg := BuildMessage(sub)
	if len(msg.Blocks) != 3 {
		t.Fatalf("blocks = %d, want header + 2 sections", len(msg.Blocks))
	}

	header := msg.Blocks[0]
	if header.Type != "header" || header.Text.Type != "plain_text" {
		t.Errorf("header block = %+v", header)
	}
	if !strings.Contains(header.Text.Text, "会社見学") {
		t.Errorf("header text = %q, want the submission type", header.Text.Text)
	}

	section := msg.Blocks[1]
	if section.Type != "section" || section.Text.Type != "mrkdwn" {
		t.Errorf("section block = %+v", section)
	}
	if !strings.Contains(section.Text.Text, "お名前") || !strings.Contains(section.Text.Text, "山田太郎") {
		t.Errorf("section text = %q", section.Text.Text)
	}

	// Empty values are marked so the message stays readable.
	if !strings.Contains(msg.Blocks[2].Text.Text, "(未入力)") {
		t.Errorf("empty field text = %q", msg.Blocks[2].Text.Text)
	}
}

func TestForward(t *testing.T) {
	var received Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	f, err := NewForwarder(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	sub := FormSubmission{Type: "応募", Fields: []Field{{Label: "Name", Value: "Sato"}}}
	if err := f.Forward(context.Background(), sub); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if len(received.Blocks) != 2 {
		t.Errorf("webhook received %d blocks, want 2", len(received.Blocks))
	}
}

func TestForwardWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "invalid_blocks")
	}))
	defer srv.Close()

	f, err := NewForwarder(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	err = f.Forward(context.Background(), FormSubmission{Type: "応募"})
	if err == nil {
		t.Fatal("Forward() swallowed a webhook failure")
	}
	if !strings.Contains(err.Error(), "invalid_blocks") {
		t.Errorf("error = %v, want the webhook error body", err)
	}
}

func TestNewForwarderRequiresURL(t *testing.T) {
	if _, err := NewForwarder(""); err == nil {
		t.Error("NewForwarder() accepted an empty webhook URL")
	}
}
