package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"credit-app/internal/core/domain"
	"credit-app/internal/core/ports"
)

// SeedPassword is shared by every seeded account.
const SeedPassword = "Password123!"

type seedUser struct {
	username, email string
	role            domain.UserRole
}

var seedUsers = []seedUser{
	{"user1", "user1@example.com", domain.RoleUser},
	{"user2", "user2@example.com", domain.RoleUser},
	{"analyst1", "analyst1@example.com", domain.RoleAnalyst},
	{"analyst2", "analyst2@example.com", domain.RoleAnalyst},
	{"admin1", "admin1@example.com", domain.RoleAdmin},
}

type seedRequest struct {
	owner           int // index into seedUsers
	amount, income  string
	term, seniority int
	purpose         string
}

var seedRequests = []seedRequest{
	{0, "5000", "3000", 12, 2, "Home renovation"},
	{0, "10000", "3000", 24, 2, "Vehicle purchase"},
	{1, "15000", "4000", 36, 3, "Business investment"},
}

// Seeder fills an empty database with demo accounts and requests.
type Seeder struct {
	users    ports.UserRepository
	requests ports.CreditRequestRepository
	hashSvc  ports.HashService
	log      zerolog.Logger
}

func NewSeeder(users ports.UserRepository, requests ports.CreditRequestRepository, hashSvc ports.HashService, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, requests: requests, hashSvc: hashSvc, log: log}
}

// Seed is a no-op when any user exists. It reports whether data was inserted.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		s.log.Info().Int64("users", count).Msg("seed skipped, database not empty")
		return false, nil
	}

	hash, err := s.hashSvc.Hash(SeedPassword)
	if err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}

	ids := make([]uuid.UUID, len(seedUsers))
	for i, su := range seedUsers {
		user, err := domain.NewUser(su.username, su.email, hash, su.role)
		if err != nil {
			return false, err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return false, fmt.Errorf("seed user %s: %w", su.username, err)
		}
		ids[i] = user.ID
	}

	for _, sr := range seedRequests {
		cr, err := domain.NewCreditRequest(uuid.Nil, ids[sr.owner],
			domain.MustMoney(sr.amount, domain.DefaultCurrency), sr.term,
			domain.MustMoney(sr.income, domain.DefaultCurrency), sr.seniority, sr.purpose)
		if err != nil {
			return false, err
		}
		if err := s.requests.Create(ctx, cr); err != nil {
			return false, fmt.Errorf("seed credit request: %w", err)
		}
	}

	s.log.Info().
		Int("users", len(seedUsers)).
		Int("credit_requests", len(seedRequests)).
		Msg("database seeded")
	return true, nil
}
