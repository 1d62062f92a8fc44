package paystack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Success(t *testing.T) {
	body := `{"status":true,"message":"Verification successful","data":{"status":"success","amount":750000,"currency":"NGN","customer":{"email":"amina@example.com"}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/PSK-123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "sk_test_abc")
	v, err := c.Verify(context.Background(), "PSK-123")
	require.NoError(t, err)

	assert.True(t, v.Success())
	assert.Equal(t, "Verification successful", v.Message)
	assert.True(t, decimal.NewFromInt(7500).Equal(v.Amount))
	assert.JSONEq(t, body, string(v.Raw))
}

func TestVerify_FailedTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"status":"abandoned","amount":100}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "sk_test_abc")
	v, err := c.Verify(context.Background(), "PSK-124")
	require.NoError(t, err)

	assert.False(t, v.Success())
	assert.Equal(t, "abandoned", v.Status)
}

func TestVerify_UnknownReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":false,"message":"Transaction reference not found","data":null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "sk_test_abc")
	v, err := c.Verify(context.Background(), "ghost")
	require.NoError(t, err)

	assert.False(t, v.OK)
	assert.False(t, v.Success())
	assert.Equal(t, "Transaction reference not found", v.Message)
	assert.NotEmpty(t, v.Raw)
}

func TestVerify_NoSecretKey(t *testing.T) {
	c := NewClient(nil, "", "")
	_, err := c.Verify(context.Background(), "PSK-123")
	require.ErrorIs(t, err, ErrNoSecretKey)
}

func TestVerify_EscapesReference(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"success","amount":0}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "sk_test_abc")
	_, err := c.Verify(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/transaction/verify/a%2Fb%20c", gotPath)
}
