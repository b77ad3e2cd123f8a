package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/errs"
	"github.com/guttosm/salespulse/internal/filter"
	"github.com/guttosm/salespulse/internal/logger"
	"github.com/guttosm/salespulse/internal/storage"
	"github.com/guttosm/salespulse/pkg/helpers"
)

// ClientService defines business rules for client registration and maintenance.
type ClientService interface {
	Create(ctx context.Context, c models.Client) (*models.Client, error)
	Get(ctx context.Context, id string) (*models.ClientWithSales, error)
	List(ctx context.Context, f models.ClientFilter, q filter.PageQuery) (*models.ClientPage, error)
	Update(ctx context.Context, id string, u models.ClientUpdate) (*models.Client, error)
	Delete(ctx context.Context, id string, cascade bool) error
}

type clientService struct {
	repo  storage.ClientsRepository
	newID func() string
}

func NewClientService(repo storage.ClientsRepository) ClientService {
	return &clientService{repo: repo, newID: uuid.NewString}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailInUse(email string) error {
	return errs.NewConflictError(fmt.Sprintf("email %s already in use", email))
}

// Create registers a client. The email is checked up front; a concurrent
// duplicate still surfaces as ConflictError through the unique constraint.
func (s *clientService) Create(ctx context.Context, c models.Client) (*models.Client, error) {
	c.Email = normalizeEmail(c.Email)
	c.Name = strings.TrimSpace(c.Name)

	existing, err := s.repo.FindByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, emailInUse(c.Email)
	}

	c.ID = s.newID()
	out, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	logger.Ctx(ctx).Info().Str("client_id", out.ID).Msg("client created")
	return out, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*models.ClientWithSales, error) {
	c, err := s.repo.FindByIDWithSales(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, clientNotFound(id)
	}
	return c, nil
}

// List validates pagination before touching the store.
func (s *clientService) List(ctx context.Context, f models.ClientFilter, q filter.PageQuery) (*models.ClientPage, error) {
	p, err := filter.NormalizePagination(q)
	if err != nil {
		return nil, err
	}
	clients, total, err := s.repo.List(ctx, f, p.Skip, p.Take)
	if err != nil {
		return nil, err
	}
	return &models.ClientPage{
		Data:     clients,
		Total:    total,
		Page:     p.Page,
		Limit:    p.Limit,
		LastPage: filter.LastPage(total, p.Limit),
	}, nil
}

func (s *clientService) Update(ctx context.Context, id string, u models.ClientUpdate) (*models.Client, error) {
	if u.Name != nil {
		u.Name = helpers.Ptr(strings.TrimSpace(*u.Name))
	}
	if u.Email != nil {
		u.Email = helpers.Ptr(normalizeEmail(*u.Email))
		email := *u.Email

		other, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, emailInUse(email)
		}
	}

	c, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	if c == nil {
		return nil, clientNotFound(id)
	}
	return c, nil
}

// Delete refuses to remove a client that still has sales unless cascade is set.
func (s *clientService) Delete(ctx context.Context, id string, cascade bool) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return clientNotFound(id)
	}

	if !cascade {
		n, err := s.repo.CountSales(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errs.NewConflictError(fmt.Sprintf("client %s has %d sales; delete with cascade=true to remove them", id, n))
		}
	}

	deleted, err := s.repo.Delete(ctx, id, cascade)
	if err != nil {
		return errs.FromStore(err)
	}
	if !deleted {
		return clientNotFound(id)
	}
	logger.Ctx(ctx).Info().Str("client_id", id).Bool("cascade", cascade).Msg("client deleted")
	return nil
}

func clientNotFound(id string) error {
	return errs.NewNotFoundError(fmt.Sprintf("client %s not found", id))
}
