package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Umidjon1990/Shartnoma/internal/storage"
)

func sampleContract() storage.Contract {
	return storage.Contract{
		ContractNumber: "CN-2025-007",
		StudentName:    "Aziz Azizov",
		Phone:          "+998901234567",
		Age:            "20",
		Course:         "B1-B2",
		Format:         "Online",
		Status:         "signed",
		CreatedAt:      time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestContractCreatedPostsMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottoken123/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegram("token123", "chat42")
	n.APIBase = srv.URL
	n.ContractCreated(context.Background(), sampleContract())

	assert.Equal(t, "chat42", got["chat_id"])
	assert.Equal(t, "Markdown", got["parse_mode"])
	assert.Contains(t, got["text"], "CN-2025-007")
	assert.Contains(t, got["text"], "Aziz Azizov")
}

func TestContractCreatedSkipsWhenUnconfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	}))
	defer srv.Close()

	n := NewTelegram("", "")
	n.APIBase = srv.URL
	n.ContractCreated(context.Background(), sampleContract())
}

func TestContractCreatedSwallowsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chat not found", http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewTelegram("token123", "chat42")
	n.APIBase = srv.URL
	// must not panic or propagate anything
	n.ContractCreated(context.Background(), sampleContract())
}

func TestMessageContent(t *testing.T) {
	msg := Message(sampleContract())
	assert.Contains(t, msg, "Yangi Shartnoma Tuzildi!")
	assert.Contains(t, msg, "`CN-2025-007`")
	assert.Contains(t, msg, "01.09.2025 10:30")
	assert.Contains(t, msg, "Imzolangan")
}
