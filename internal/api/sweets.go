package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"sweetshop/internal/models"
)

// ErrDeleteForbidden is shown when the server rejects a delete with 403.
const ErrDeleteForbidden = "You do not have permission to delete sweets. Admin access required."

// SweetService wraps the inventory endpoints. Wrappers shape the request
// and unwrap the response; validation and authorization live on the server.
type SweetService struct {
	client *Client
}

// NewSweetService creates the inventory service.
func NewSweetService(client *Client) *SweetService {
	return &SweetService{client: client}
}

// List fetches the full inventory.
func (s *SweetService) List() ([]models.Sweet, error) {
	var sweets []models.Sweet
	if err := s.client.do(http.MethodGet, "/api/sweets", nil, nil, &sweets, "Failed to fetch sweets"); err != nil {
		return nil, err
	}
	return sweets, nil
}

// Search filters server-side by name or category substring.
func (s *SweetService) Search(query string) ([]models.Sweet, error) {
	q := url.Values{"query": {query}}
	var sweets []models.Sweet
	if err := s.client.do(http.MethodGet, "/api/sweets/search", q, nil, &sweets, "Search failed"); err != nil {
		return nil, err
	}
	return sweets, nil
}

// Create adds a sweet and returns it with the server-assigned ID.
func (s *SweetService) Create(in models.SweetInput) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := s.client.do(http.MethodPost, "/api/sweets", nil, in, &sweet, "Failed to create sweet"); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// Update replaces the fields of an existing sweet.
func (s *SweetService) Update(id int, in models.SweetInput) (*models.Sweet, error) {
	var sweet models.Sweet
	path := fmt.Sprintf("/api/sweets/%d", id)
	if err := s.client.do(http.MethodPut, path, nil, in, &sweet, "Failed to update sweet"); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// Delete removes a sweet. A 403 surfaces as the admin-only message.
func (s *SweetService) Delete(id int) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	path := fmt.Sprintf("/api/sweets/%d", id)
	if err := s.client.do(http.MethodDelete, path, nil, nil, &resp, "Failed to delete sweet"); err != nil {
		if StatusOf(err) == http.StatusForbidden {
			return nil, &APIError{StatusCode: http.StatusForbidden, Message: ErrDeleteForbidden}
		}
		return nil, err
	}
	return &resp, nil
}

// Purchase decrements quantity by one. The server rejects a purchase at
// zero; the UI also disables the action.
func (s *SweetService) Purchase(id int) (*models.Sweet, error) {
	var sweet models.Sweet
	path := fmt.Sprintf("/api/sweets/%d/purchase", id)
	if err := s.client.do(http.MethodPost, path, nil, nil, &sweet, "Failed to purchase sweet"); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// Restock raises quantity by amount. Amounts below one are sent as one.
func (s *SweetService) Restock(id, amount int) (*models.Sweet, error) {
	if amount < 1 {
		amount = 1
	}
	q := url.Values{"quantity": {strconv.Itoa(amount)}}
	var sweet models.Sweet
	path := fmt.Sprintf("/api/sweets/%d/restock", id)
	if err := s.client.do(http.MethodPost, path, q, nil, &sweet, "Failed to restock sweet"); err != nil {
		return nil, err
	}
	return &sweet, nil
}
