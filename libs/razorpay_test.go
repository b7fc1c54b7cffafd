package libs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrderSendsAuthAndPayload(t *testing.T) {
	var gotUser, gotPass string
	var gotBody razorpayOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("got %s %s, want POST /orders", r.Method, r.URL.Path)
		}
		gotUser, gotPass, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(razorpayOrderResponse{
			ID:       "order_abc",
			Amount:   50000,
			Currency: "INR",
			Receipt:  "rcpt_1",
			Status:   "created",
		})
	}))
	defer srv.Close()

	client := NewRazorpayClient("key_id", "key_secret", srv.URL)
	orderID, err := client.CreateOrder(context.Background(), 50000, "INR", "rcpt_1")
	if err != nil {
		t.Fatal(err)
	}

	if orderID != "order_abc" {
		t.Errorf("order id %q", orderID)
	}
	if gotUser != "key_id" || gotPass != "key_secret" {
		t.Errorf("basic auth %q:%q", gotUser, gotPass)
	}
	if gotBody.Amount != 50000 || gotBody.Currency != "INR" || gotBody.Receipt != "rcpt_1" {
		t.Errorf("request payload %+v", gotBody)
	}
}

func TestCreateOrderNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient("bad", "creds", srv.URL)
	if _, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt"); err == nil {
		t.Fatal("expected an error for a 401 response")
	}
}

func TestCreateOrderEmptyOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient("k", "s", srv.URL)
	if _, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt"); err == nil {
		t.Fatal("expected an error for a response without an order id")
	}
}
