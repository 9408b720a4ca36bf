package store

import (
	"context"

	"github.com/mestizo/crm-service/internal/domain"
	"github.com/mestizo/crm-service/internal/models"
)

// CustomerFilter enumerates the supported list filters.
type CustomerFilter struct {
	Search string
	Type   models.CustomerType
}

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return wrapErr(s.db.WithContext(ctx).Create(c).Error, "customer")
}

// GetCustomer loads a customer with its contacts and addresses embedded.
func (s *Store) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	err := s.db.WithContext(ctx).Preload("Contacts").Preload("Addresses").First(&c, id).Error
	if err != nil {
		return nil, wrapErr(err, "customer")
	}
	return &c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	return wrapErr(s.db.WithContext(ctx).Save(c).Error, "customer")
}

func (s *Store) ListCustomers(ctx context.Context, f CustomerFilter, page PageRequest) ([]models.Customer, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Customer{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Search != "" {
		p := searchPattern(f.Search)
		q = q.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", p, p, p)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "customer")
	}
	var out []models.Customer
	if err := page.apply(q.Order("created_at desc")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "customer")
	}
	return out, total, nil
}

// DeleteCustomer hard-deletes the customer and cascades to its contacts and
// addresses in one transaction. It fails with a referential conflict if any
// opportunity, quote, or project still references the customer.
func (s *Store) DeleteCustomer(ctx context.Context, id uint) error {
	return s.Tx(ctx, func(tx *Store) error {
		var c models.Customer
		if err := tx.db.First(&c, id).Error; err != nil {
			return wrapErr(err, "customer")
		}
		refs := []struct {
			model any
			name  string
		}{
			{&models.Opportunity{}, "opportunities"},
			{&models.Quote{}, "quotes"},
			{&models.Project{}, "projects"},
		}
		for _, ref := range refs {
			var n int64
			if err := tx.db.Model(ref.model).Where("customer_id = ?", id).Count(&n).Error; err != nil {
				return wrapErr(err, "customer")
			}
			if n > 0 {
				return domain.ReferentialConflict("customer_referenced_by_" + ref.name)
			}
		}
		if err := tx.db.Where("customer_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return wrapErr(err, "contact")
		}
		if err := tx.db.Where("customer_id = ?", id).Delete(&models.Address{}).Error; err != nil {
			return wrapErr(err, "address")
		}
		return wrapErr(tx.db.Delete(&models.Customer{}, id).Error, "customer")
	})
}

func (s *Store) CustomerExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, wrapErr(err, "customer")
	}
	return n > 0, nil
}

func (s *Store) CreateContact(ctx context.Context, c *models.Contact) error {
	return wrapErr(s.db.WithContext(ctx).Create(c).Error, "contact")
}

func (s *Store) GetContact(ctx context.Context, id uint) (*models.Contact, error) {
	var c models.Contact
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, wrapErr(err, "contact")
	}
	return &c, nil
}

func (s *Store) DeleteContact(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Contact{}, id)
	if res.Error != nil {
		return wrapErr(res.Error, "contact")
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("contact")
	}
	return nil
}

func (s *Store) ListContacts(ctx context.Context, customerID uint, page PageRequest) ([]models.Contact, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Contact{})
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "contact")
	}
	var out []models.Contact
	if err := page.apply(q.Order("id")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "contact")
	}
	return out, total, nil
}

func (s *Store) CreateAddress(ctx context.Context, a *models.Address) error {
	return wrapErr(s.db.WithContext(ctx).Create(a).Error, "address")
}

func (s *Store) GetAddress(ctx context.Context, id uint) (*models.Address, error) {
	var a models.Address
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, wrapErr(err, "address")
	}
	return &a, nil
}

func (s *Store) DeleteAddress(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Address{}, id)
	if res.Error != nil {
		return wrapErr(res.Error, "address")
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("address")
	}
	return nil
}

func (s *Store) ListAddresses(ctx context.Context, customerID uint, page PageRequest) ([]models.Address, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Address{})
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, "address")
	}
	var out []models.Address
	if err := page.apply(q.Order("id")).Find(&out).Error; err != nil {
		return nil, 0, wrapErr(err, "address")
	}
	return out, total, nil
}
