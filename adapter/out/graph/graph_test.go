package graph

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotable_server/core/domain"
	"quotable_server/pkg/apperr"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: srv.URL, MaxPageSize: 100})
	return client, srv
}

func TestListMessagesRequestShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[{"id":"m1","subject":"hello","isRead":true}]}`))
	})
	defer srv.Close()

	unread := true
	messages, err := client.ListMessages(context.Background(), "bearer-tok", domain.ListOptions{
		Folder:     "archive",
		Limit:      10,
		UnreadOnly: unread,
	})
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}

	if gotPath != "/me/mailFolders/archive/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer bearer-tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if got := gotQuery["$top"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("$top = %v", got)
	}
	if got := gotQuery["$filter"]; len(got) != 1 || got[0] != "isRead eq false" {
		t.Errorf("$filter = %v", got)
	}

	if len(messages) != 1 || messages[0].ID != "m1" || messages[0].Subject != "hello" {
		t.Errorf("messages = %+v", messages)
	}
}

func TestGetMessageNotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	_, err := client.GetMessage(context.Background(), "tok", "missing")
	if err == nil {
		t.Fatal("GetMessage() expected error")
	}
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("GetMessage() error = %v, want NOT_FOUND", err)
	}
}

func TestUpstreamErrorCarriesGraphMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"ErrorAccessDenied","message":"Access is denied."}}`))
	})
	defer srv.Close()

	_, err := client.GetProfile(context.Background(), "tok")
	if err == nil {
		t.Fatal("GetProfile() expected error")
	}
	appErr := apperr.AsAppError(err)
	if appErr.Code != apperr.CodeUpstreamFailure {
		t.Errorf("code = %s, want UPSTREAM_FAILURE", appErr.Code)
	}
	if want := "graph API error 403 (ErrorAccessDenied): Access is denied."; appErr.Message != want {
		t.Errorf("message = %q, want %q", appErr.Message, want)
	}
	if got := appErr.Details["status_code"]; got != 403 {
		t.Errorf("status_code detail = %v", got)
	}
}

func TestSendMessageBody(t *testing.T) {
	var gotBody string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusAccepted)
	})
	defer srv.Close()

	err := client.SendMessage(context.Background(), "tok", &domain.SendRequest{
		Subject:         "hi",
		Body:            "<p>hello</p>",
		BodyContentType: "html",
		ToRecipients:    []domain.RecipientInput{{Email: "a@example.com", Name: "A"}},
	})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	for _, want := range []string{
		`"saveToSentItems":true`,
		`"subject":"hi"`,
		`"address":"a@example.com"`,
	} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("request body missing %s: %s", want, gotBody)
		}
	}
}

func TestReplyAllUsesReplyAllAction(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	})
	defer srv.Close()

	if err := client.Reply(context.Background(), "tok", "m1", "thanks", true); err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if gotPath != "/me/messages/m1/replyAll" {
		t.Errorf("path = %q, want replyAll action", gotPath)
	}
}
