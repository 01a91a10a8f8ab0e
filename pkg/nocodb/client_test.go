package nocodb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListRecords_Paginates(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/v2/tables/tbl1/records", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("xc-token"))
		assert.Equal(t, "view1", r.URL.Query().Get("viewId"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		var list []Record
		for i := offset; i < 5 && i < offset+2; i++ {
			list = append(list, Record{"Employee": float64(i + 1)})
		}
		json.NewEncoder(w).Encode(map[string]any{"list": list})
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:  srv.URL + "/",
		APIKey:   "secret",
		ViewID:   "view1",
		Table:    "tbl1",
		PageSize: 2,
	})

	records, err := client.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, float64(5), records[4]["Employee"])
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ListRecords_FullLastPageNeedsOneMoreRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		list := []Record{}
		if n == 1 {
			list = []Record{{"Employee": 1.0}, {"Employee": 2.0}}
		}
		json.NewEncoder(w).Encode(map[string]any{"list": list})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Table: "t", PageSize: 2})
	records, err := client.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ListRecords_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Table: "t"})
	_, err := client.ListRecords(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(Config{})
	assert.False(t, client.Configured())

	_, err := client.ListRecords(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
