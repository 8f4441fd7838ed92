package ownhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew_SetsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	for _, client := range []*http.Client{New(), NewThrottled(100)} {
		res, err := client.Get(srv.URL)
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
		if got != UserAgent {
			t.Errorf("User-Agent = %q, want %q", got, UserAgent)
		}
	}
}
