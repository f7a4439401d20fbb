package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"luna-empenos/internal/adapters/persistence/models"
	"luna-empenos/internal/adapters/persistence/repositories"
	"luna-empenos/internal/core/domain"

	"gorm.io/gorm"
)

// Client service errors
var (
	ErrDuplicateNationalID = fmt.Errorf("national id already registered: %w", domain.ErrValidation)
)

// ClientService handles the client registry
type ClientService struct {
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repositories.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents create client input
type CreateClientInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id"`
	Address    string `json:"address,omitempty"`
}

// Create registers a client. The unique index on the national ID is the
// duplicate check; there is no pre-read.
func (s *ClientService) Create(ctx context.Context, input *CreateClientInput) (*models.Client, error) {
	nationalID := strings.TrimSpace(input.NationalID)
	if nationalID == "" {
		return nil, ErrMissingClientID
	}

	client := &models.Client{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Phone:      input.Phone,
		NationalID: nationalID,
		Address:    input.Address,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateNationalID
		}
		return nil, wrapStorage(err)
	}
	return client, nil
}

// GetByID gets a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, wrapStorage(err)
	}
	return client, nil
}

// FindByNationalID finds a client by exact national ID after trimming.
// Returns ErrClientNotFound when absent.
func (s *ClientService) FindByNationalID(ctx context.Context, nationalID string) (*models.Client, error) {
	client, err := s.clientRepo.GetByNationalID(ctx, strings.TrimSpace(nationalID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, wrapStorage(err)
	}
	return client, nil
}

// Search matches clients by name, surname, national ID or phone,
// case-insensitive substring. Empty query returns no results.
func (s *ClientService) Search(ctx context.Context, query string) ([]*models.Client, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Client{}, nil
	}

	clients, err := s.clientRepo.Search(ctx, query)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return clients, nil
}
