package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Budi","phone":"0812","tags":["langganan","rewel"]}],
			"pagination":{"total":12,"limit":5,"offset":0,"hasMore":true}}`))
	})
	mux.HandleFunc("GET /api/orders/customer/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"customer_id":1,"order_date":"2024-05-01","total_amount":150000,"status":"pending"}]`))
	})
	mux.HandleFunc("GET /api/followups", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /api/followups/export", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("PK-workbook"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Customers(t *testing.T) {
	srv := fakeAPI(t)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"--api", srv.URL + "/api", "customers", "--limit", "5"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "Budi")
	assert.Contains(t, stdout.String(), "langganan,rewel")
	assert.Contains(t, stdout.String(), "1 of 12 customers")
}

func TestRun_CustomerOrders(t *testing.T) {
	srv := fakeAPI(t)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"--api", srv.URL + "/api", "orders", "--customer", "1"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "2024-05-01")
	assert.Contains(t, stdout.String(), "150000.00")
	assert.Contains(t, stdout.String(), "#1")
}

func TestRun_NoFollowups(t *testing.T) {
	srv := fakeAPI(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"--api", srv.URL + "/api", "followups"}, &stdout, &stderr))
	assert.Equal(t, "No pending followups\n", stdout.String())
}

func TestRun_Export(t *testing.T) {
	srv := fakeAPI(t)
	out := filepath.Join(t.TempDir(), "customers.xlsx")
	var stdout, stderr bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"--api", srv.URL + "/api", "export", "-o", out}, &stdout, &stderr))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PK-workbook", string(data))
}

func TestRun_UsageErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"bogus"},
		{"export"},
		{"customers", "--limit", "many"},
	}

	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), args, &stdout, &stderr)
		assert.ErrorIs(t, err, errUsage, "args %v", args)
		assert.NotEmpty(t, stderr.String())
	}
}
