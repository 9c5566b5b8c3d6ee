package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mealdrop/internal/domain"
	"mealdrop/internal/eventbus"
	"mealdrop/internal/logger"
	"mealdrop/internal/storage"
)

// sessionRecord is the cookie-like marker persisted after login/register.
type sessionRecord struct {
	Token       string `json:"token"`
	PrincipalID string `json:"principalId"`
}

type MerchantAuth struct {
	Merchant domain.Merchant `json:"merchant"`
	Token    string          `json:"token"`
}

type UserAuth struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type MerchantRegistration struct {
	Name     string `json:"name"`
	Account  string `json:"account"` // email or phone
	Password string `json:"password"`
	Contact  string `json:"contact"`
}

type UserRegistration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MerchantLogin matches account against each merchant's email or phone, and
// password exactly. Plaintext comparison: acceptable only because this is a
// mock, never production-grade.
func (s *Service) MerchantLogin(ctx context.Context, account, password string) (MerchantAuth, error) {
	if account == "" || password == "" {
		return MerchantAuth{}, ErrValidation
	}

	records := s.store.LoadMerchants(ctx)
	for _, m := range records {
		if (m.Email == account || m.Phone == account) && m.Password == password {
			token := s.openSession(ctx, storage.KeyMerchantSession, m.ID)
			return MerchantAuth{Merchant: stripMerchant(m), Token: token}, nil
		}
	}
	return MerchantAuth{}, ErrInvalidCredentials
}

func (s *Service) MerchantRegister(ctx context.Context, reg MerchantRegistration) (MerchantAuth, error) {
	if reg.Name == "" || reg.Account == "" || reg.Password == "" || reg.Contact == "" {
		return MerchantAuth{}, ErrValidation
	}

	s.mu.Lock()
	records := s.store.LoadMerchants(ctx)
	for _, m := range records {
		if m.Email == reg.Account || m.Phone == reg.Account {
			s.mu.Unlock()
			return MerchantAuth{}, ErrDuplicateAccount
		}
	}

	m := domain.Merchant{
		ID:       s.newID("mch"),
		Name:     reg.Name,
		IsNew:    true,
		IsActive: true,
		Password: reg.Password,
	}
	if strings.Contains(reg.Account, "@") {
		m.Email = reg.Account
		m.Phone = reg.Contact
	} else {
		m.Phone = reg.Account
		m.Email = reg.Contact
	}
	records[m.ID] = m
	s.store.SaveMerchants(ctx, records)
	s.mu.Unlock()

	registered := stripMerchant(m)
	s.bus.Publish(eventbus.TopicMerchantRegistered, registered)
	token := s.openSession(ctx, storage.KeyMerchantSession, m.ID)
	logger.L().Info("merchant registered", zap.String("merchant_id", m.ID))
	return MerchantAuth{Merchant: registered, Token: token}, nil
}

// MerchantLogout clears the session marker. Safe to call when already logged
// out.
func (s *Service) MerchantLogout(ctx context.Context) {
	s.store.Delete(ctx, storage.KeyMerchantSession)
}

// CheckMerchantSession resolves the persisted session marker back to a
// merchant. A token whose principal no longer resolves is treated as stale:
// the marker is cleared and nil is returned.
func (s *Service) CheckMerchantSession(ctx context.Context) (*MerchantAuth, error) {
	var session sessionRecord
	if !s.store.Load(ctx, storage.KeyMerchantSession, &session) || session.Token == "" {
		return nil, nil
	}

	records := s.store.LoadMerchants(ctx)
	m, ok := records[session.PrincipalID]
	if !ok {
		s.store.Delete(ctx, storage.KeyMerchantSession)
		return nil, nil
	}
	return &MerchantAuth{Merchant: stripMerchant(m), Token: session.Token}, nil
}

func (s *Service) UserLogin(ctx context.Context, account, password string) (UserAuth, error) {
	if account == "" || password == "" {
		return UserAuth{}, ErrValidation
	}

	records := s.store.LoadUsers(ctx)
	for _, u := range records {
		if (u.Email == account || u.Phone == account) && u.Password == password {
			token := s.openSession(ctx, storage.KeyUserSession, u.ID)
			return UserAuth{User: stripUser(u), Token: token}, nil
		}
	}
	return UserAuth{}, ErrInvalidCredentials
}

func (s *Service) UserRegister(ctx context.Context, reg UserRegistration) (UserAuth, error) {
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return UserAuth{}, ErrValidation
	}

	s.mu.Lock()
	records := s.store.LoadUsers(ctx)
	for _, u := range records {
		if u.Email == reg.Email {
			s.mu.Unlock()
			return UserAuth{}, ErrDuplicateAccount
		}
	}

	u := domain.User{
		ID:       s.newID("u"),
		Name:     reg.Username,
		Email:    reg.Email,
		Password: reg.Password,
		Settings: domain.UserSettings{
			Notifications: domain.NotificationSettings{Email: true, SMS: true, OrderUpdates: true},
			Privacy:       domain.PrivacySettings{ShowProfile: true},
		},
	}
	records[u.ID] = u
	s.store.SaveUsers(ctx, records)
	s.mu.Unlock()

	registered := stripUser(u)
	s.bus.Publish(eventbus.TopicUserRegistered, registered)
	token := s.openSession(ctx, storage.KeyUserSession, u.ID)
	logger.L().Info("user registered", zap.String("user_id", u.ID))
	return UserAuth{User: registered, Token: token}, nil
}

func (s *Service) UserLogout(ctx context.Context) {
	s.store.Delete(ctx, storage.KeyUserSession)
}

func (s *Service) CheckUserSession(ctx context.Context) (*UserAuth, error) {
	var session sessionRecord
	if !s.store.Load(ctx, storage.KeyUserSession, &session) || session.Token == "" {
		return nil, nil
	}

	records := s.store.LoadUsers(ctx)
	u, ok := records[session.PrincipalID]
	if !ok {
		s.store.Delete(ctx, storage.KeyUserSession)
		return nil, nil
	}
	return &UserAuth{User: stripUser(u), Token: session.Token}, nil
}

func (s *Service) openSession(ctx context.Context, key, principalID string) string {
	token := uuid.NewString()
	s.store.Save(ctx, key, sessionRecord{Token: token, PrincipalID: principalID})
	return token
}
