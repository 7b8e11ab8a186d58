package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mcoutinho/salesdesk/internal/domain"
	"github.com/mcoutinho/salesdesk/pkg/web"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", 2*time.Second, slog.New(slog.DiscardHandler))
}

func jsonResponse(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func Test_Client_DeleteStockItem(t *testing.T) {
	testCases := []struct {
		name           string
		status         int
		expectError    bool
		expectNotFound bool
	}{
		{name: "Success - 204 deletes silently", status: http.StatusNoContent},
		{name: "Error - 404 maps to ErrNotFound", status: http.StatusNotFound, expectError: true, expectNotFound: true},
		{name: "Error - 500 propagates as StatusError", status: http.StatusInternalServerError, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/stock-items/999", r.URL.Path)
				w.WriteHeader(tc.status)
			}))
			// when
			err := client.DeleteStockItem(context.Background(), 999)
			// then
			if !tc.expectError {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tc.status, statusErr.Code)
			assert.Equal(t, tc.expectNotFound, errors.Is(err, ErrNotFound))
		})
	}
}

func Test_Client_CreateSale(t *testing.T) {
	// given a backend that echoes a complete sale record
	responseBody := `{
		"id": 12,
		"productName": "Coffee",
		"quantity": 3,
		"totalPrice": 21.00,
		"Client": {"id": 7, "name": "Maria", "contact": "(11) 91234-5678", "address": "Rua A, 1"},
		"Product": {"id": 1, "name": "Coffee", "quantity": 9, "price": 10.00}
	}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sales", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(web.HeaderRequestID))

		var req domain.SaleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Coffee", req.ProductName)
		assert.Equal(t, int64(3), req.Quantity)
		assert.True(t, req.TotalPrice.Equal(decimal.RequireFromString("21.00")))
		require.NotNil(t, req.ClientID)
		assert.Equal(t, int64(7), *req.ClientID)

		jsonResponse(t, w, http.StatusOK, responseBody)
	}))

	clientID := int64(7)
	// when
	sale, err := client.CreateSale(context.Background(), domain.SaleRequest{
		ProductName: "Coffee",
		Quantity:    3,
		TotalPrice:  decimal.RequireFromString("21.00"),
		ClientID:    &clientID,
	})

	// then: the returned object matches the response body field by field
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, int64(12), sale.ID)
	assert.Equal(t, "Coffee", sale.ProductName)
	assert.Equal(t, int64(3), sale.Quantity)
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("21.00")))
	require.NotNil(t, sale.Client)
	assert.Equal(t, "Maria", sale.Client.Name)
	require.NotNil(t, sale.Product)
	assert.Equal(t, int64(9), sale.Product.Quantity)
}

func Test_Client_ListStockItems(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		body          string
		expectedLen   int
		expectedError string
	}{
		{
			name:        "Success - items decoded and validated",
			status:      http.StatusOK,
			body:        `[{"id":1,"name":"Coffee","quantity":5,"price":10.00},{"id":2,"name":"Milk","quantity":3,"price":5.50}]`,
			expectedLen: 2,
		},
		{
			name:          "Error - backend failure propagates, no empty-slice substitution",
			status:        http.StatusInternalServerError,
			body:          `{"error":"boom"}`,
			expectedError: "unexpected status 500",
		},
		{
			name:          "Error - malformed JSON on 2xx propagates",
			status:        http.StatusOK,
			body:          `{"not":"an array"`,
			expectedError: "fetch stock items",
		},
		{
			name:          "Error - 2xx body missing required fields fails validation",
			status:        http.StatusOK,
			body:          `[{"id":1,"quantity":5,"price":10.00}]`,
			expectedError: "invalid response item 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/stock-items", r.URL.Path)
				jsonResponse(t, w, tc.status, tc.body)
			}))
			// when
			items, err := client.ListStockItems(context.Background())
			// then
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.Nil(t, items)
				return
			}
			require.NoError(t, err)
			require.Len(t, items, tc.expectedLen)
			assert.Equal(t, "Coffee", items[0].Name)
			assert.True(t, items[1].Price.Equal(decimal.RequireFromString("5.50")))
		})
	}
}

func Test_Client_SearchStockItems(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		expectedLen int
	}{
		{
			name:        "array response",
			body:        `[{"id":1,"name":"Coffee","quantity":5,"price":10.00}]`,
			expectedLen: 1,
		},
		{
			name:        "single-object response becomes a one-element slice",
			body:        `{"id":1,"name":"Coffee","quantity":5,"price":10.00}`,
			expectedLen: 1,
		},
		{
			name:        "empty array",
			body:        `[]`,
			expectedLen: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/stock-items/Coffee", r.URL.Path)
				jsonResponse(t, w, http.StatusOK, tc.body)
			}))
			// when
			items, err := client.SearchStockItems(context.Background(), "Coffee")
			// then
			require.NoError(t, err)
			require.Len(t, items, tc.expectedLen)
			if tc.expectedLen > 0 {
				assert.Equal(t, "Coffee", items[0].Name)
			}
		})
	}
}

func Test_Client_CreateClient_RejectsBadContactLocally(t *testing.T) {
	// given a backend that must never be reached
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s %s", r.Method, r.URL.Path)
	}))

	// when: contact does not match the (DD) DDDDD-DDDD mask
	created, err := client.CreateClient(context.Background(), domain.ClientRequest{
		Name:    "Maria",
		Contact: "11999999999",
		Address: "Rua A, 1",
	})

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid client request")
	assert.Nil(t, created)
}

func Test_Client_UpdateStockItem(t *testing.T) {
	// given
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/stock-items/3", r.URL.Path)
		var req domain.StockItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		jsonResponse(t, w, http.StatusOK, `{"id":3,"name":"Coffee","quantity":7,"price":11.00}`)
	}))
	// when
	item, err := client.UpdateStockItem(context.Background(), 3, domain.StockItemRequest{
		Name:     "Coffee",
		Quantity: 7,
		Price:    decimal.RequireFromString("11.00"),
	})
	// then
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.ID)
	assert.Equal(t, int64(7), item.Quantity)
}

func Test_Client_NetworkFailure(t *testing.T) {
	// given a server that is already gone
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := New(url+"/api", time.Second, slog.New(slog.DiscardHandler))

	// when
	_, err := client.ListSales(context.Background())

	// then: transport failure surfaces as a wrapped error, not an empty slice
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch sales")
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
