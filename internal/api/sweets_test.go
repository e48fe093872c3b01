package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop/internal/models"
)

func TestSweetServiceList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sweets", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Sweet{
			{ID: 1, Name: "Fudge", Category: "Chocolate", Price: 2.5, Quantity: 4},
			{ID: 2, Name: "Gum", Category: "Candy", Price: 1.5, Quantity: 10},
		})
	})
	client, _ := testClient(t, handler, "tok")

	sweets, err := NewSweetService(client).List()
	require.NoError(t, err)
	require.Len(t, sweets, 2)
	assert.Equal(t, "Fudge", sweets[0].Name)
	assert.Equal(t, 10, sweets[1].Quantity)
}

func TestSweetServiceSearch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sweets/search", r.URL.Path)
		assert.Equal(t, "choc cake", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode([]models.Sweet{{ID: 1, Name: "Chocolate Cake"}})
	})
	client, _ := testClient(t, handler, "tok")

	sweets, err := NewSweetService(client).Search("choc cake")
	require.NoError(t, err)
	require.Len(t, sweets, 1)
}

func TestSweetServiceUpdate(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/sweets/5", r.URL.Path)
		var in models.SweetInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(models.Sweet{ID: 5, Name: in.Name, Category: in.Category, Price: in.Price, Quantity: in.Quantity})
	})
	client, _ := testClient(t, handler, "tok")

	sweet, err := NewSweetService(client).Update(5, models.SweetInput{Name: "Toffee", Category: "Candy", Price: 3, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, sweet.ID)
	assert.Equal(t, "Toffee", sweet.Name)
}

func TestSweetServicePurchase(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sweets/3/purchase", r.URL.Path)
		json.NewEncoder(w).Encode(models.Sweet{ID: 3, Quantity: 9})
	})
	client, _ := testClient(t, handler, "tok")

	sweet, err := NewSweetService(client).Purchase(3)
	require.NoError(t, err)
	assert.Equal(t, 9, sweet.Quantity)
}

func TestSweetServiceRestockQuantityParam(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sweets/7/restock", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("quantity"))
		json.NewEncoder(w).Encode(models.Sweet{ID: 7, Quantity: 15})
	})
	client, _ := testClient(t, handler, "tok")

	_, err := NewSweetService(client).Restock(7, 5)
	require.NoError(t, err)
}

func TestSweetServiceRestockDefaultsToOne(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("quantity"))
		json.NewEncoder(w).Encode(models.Sweet{ID: 7, Quantity: 1})
	})
	client, _ := testClient(t, handler, "tok")

	_, err := NewSweetService(client).Restock(7, 0)
	require.NoError(t, err)
}

func TestSweetServiceDeleteForbidden(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Admin access required"})
	})
	client, _ := testClient(t, handler, "tok")

	_, err := NewSweetService(client).Delete(9)
	require.Error(t, err)
	assert.Equal(t, "You do not have permission to delete sweets. Admin access required.", err.Error())
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
}

func TestSweetServiceDelete(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sweets/9", r.URL.Path)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "Sweet deleted successfully"})
	})
	client, _ := testClient(t, handler, "tok")

	resp, err := NewSweetService(client).Delete(9)
	require.NoError(t, err)
	assert.Equal(t, "Sweet deleted successfully", resp.Message)
}

// TestCreateThenReload mirrors the mutate-then-reload contract: the created
// sweet shows up in the next full fetch with a server-assigned id.
func TestCreateThenReload(t *testing.T) {
	var mu sync.Mutex
	var stored []models.Sweet

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sweets", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			var in models.SweetInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			sweet := models.Sweet{ID: len(stored) + 41, Name: in.Name, Category: in.Category, Price: in.Price, Quantity: in.Quantity}
			stored = append(stored, sweet)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(sweet)
		default:
			json.NewEncoder(w).Encode(stored)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, &memStore{token: "tok"}, testLogger())
	svc := NewSweetService(client)

	created, err := svc.Create(models.SweetInput{Name: "Gum", Category: "Candy", Price: 1.50, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 41, created.ID)

	sweets, err := svc.List()
	require.NoError(t, err)
	require.Len(t, sweets, 1)
	assert.Equal(t, models.Sweet{ID: 41, Name: "Gum", Category: "Candy", Price: 1.50, Quantity: 10}, sweets[0])
}
