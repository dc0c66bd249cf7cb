package searchidx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPutEntry_SendsAuthAndBody(t *testing.T) {
	var gotAuth, gotPath string
	var gotEntry Entry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotEntry)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	err := c.PutEntry(context.Background(), Entry{
		LayoutID: "home", RowID: "hero", Text: "welcome",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotPath != "/index/home/hero" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotEntry.Text != "welcome" {
		t.Errorf("unexpected body %+v", gotEntry)
	}
}

func TestPutEntry_ClassifiesRetryable(t *testing.T) {
	cases := []struct {
		status    int
		retryable bool
	}{
		{http.StatusServiceUnavailable, true},
		{http.StatusTooManyRequests, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		c := NewClient(srv.URL, "k")
		err := c.PutEntry(context.Background(), Entry{LayoutID: "l", RowID: "r"})
		srv.Close()

		if err == nil {
			t.Errorf("status %d: expected error", tc.status)
			continue
		}
		var re *RetryableError
		if got := errors.As(err, &re); got != tc.retryable {
			t.Errorf("status %d: retryable=%v, expected %v (err: %v)", tc.status, got, tc.retryable, err)
		}
	}
}

func TestDeleteLayout_MissingIsOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	if err := c.DeleteLayout(context.Background(), "gone"); err != nil {
		t.Errorf("deleting an unindexed layout should not fail: %v", err)
	}
}
