package repositories

import (
	"context"
	"strings"

	"luna-empenos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create creates a new client
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// GetByID gets a client by ID
func (r *clientRepository) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByNationalID gets a client by exact national ID (caller trims)
func (r *clientRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("ine = ?", nationalID).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Search does a case-insensitive substring match against first name, last
// name, national ID and phone. LOWER/LIKE instead of ILIKE so the same query
// works on MySQL and the sqlite test driver.
func (r *clientRepository) Search(ctx context.Context, query string) ([]*models.Client, error) {
	var clients []*models.Client
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(ine) LIKE ? OR LOWER(phone) LIKE ?",
			pattern, pattern, pattern, pattern,
		).
		Find(&clients).Error
	return clients, err
}

// Count counts all clients
func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&count).Error
	return count, err
}
