// Package onboarding walks a new account through the setup steps: pick a
// website type, install the tracking snippet, verify events, done.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-insights/components/preferences"
	"github.com/google/uuid"
)

var (
	// ErrWebsiteTypeRequired is returned by Complete before a type is chosen.
	ErrWebsiteTypeRequired = errors.New("onboarding: website type is required")
	// ErrTrackingIDRequired is returned by Complete before a tracking id exists.
	ErrTrackingIDRequired = errors.New("onboarding: tracking id is required")
	// ErrAccountNotFound is returned for unknown account ids.
	ErrAccountNotFound = errors.New("onboarding: account not found")
)

// Account is the onboarding state for one account.
type Account struct {
	ID          string                  `json:"id"`
	WebsiteType preferences.WebsiteType `json:"website_type,omitempty"`
	WebsiteURL  string                  `json:"website_url,omitempty"`
	TrackingID  string                  `json:"tracking_id,omitempty"`
	Onboarded   bool                    `json:"is_onboarded"`
}

// AccountStore persists onboarding state.
type AccountStore interface {
	Get(ctx context.Context, accountID string) (Account, error)
	Put(ctx context.Context, account Account) error
}

// EventCounter reports how many sessions a tracking id has received.
// Implementations typically query the analytics warehouse.
type EventCounter interface {
	SessionCount(ctx context.Context, trackingID string) (int64, error)
}

// WebsitePreferences receives the chosen website type so dashboard
// defaults cascade from the onboarding flow.
type WebsitePreferences interface {
	SetWebsiteType(ctx context.Context, t preferences.WebsiteType) error
}

// Steps reports per-step completion.
type Steps struct {
	WebsiteType bool `json:"website_type"`
	TrackingID  bool `json:"tracking_id"`
	Completed   bool `json:"completed"`
}

// Status is the full onboarding snapshot served to clients.
type Status struct {
	Onboarded   bool                    `json:"is_onboarded"`
	WebsiteType preferences.WebsiteType `json:"website_type,omitempty"`
	TrackingID  string                  `json:"tracking_id,omitempty"`
	WebsiteURL  string                  `json:"website_url,omitempty"`
	Steps       Steps                   `json:"steps"`
}

// Verification is the result of checking whether events arrive.
type Verification struct {
	Verified    bool   `json:"verified"`
	EventsCount int64  `json:"events_count"`
	Message     string `json:"message"`
}

// Options configures the Service.
type Options struct {
	Accounts    AccountStore
	Events      EventCounter
	Preferences WebsitePreferences
	Telemetry   preferences.Telemetry
	// NewTrackingID overrides tracking id generation, used in tests.
	NewTrackingID func() string
}

// Service implements the onboarding flow.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Accounts == nil {
		opts.Accounts = NewInMemoryAccountStore()
	}
	if opts.NewTrackingID == nil {
		opts.NewTrackingID = NewTrackingID
	}
	opts.Telemetry = preferences.NormalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// NewTrackingID mints a fresh site tracking identifier.
func NewTrackingID() string {
	return "trk_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// Status returns the onboarding snapshot for the account.
func (s *Service) Status(ctx context.Context, accountID string) (Status, error) {
	account, err := s.opts.Accounts.Get(ctx, accountID)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Onboarded:   account.Onboarded,
		WebsiteType: account.WebsiteType,
		TrackingID:  account.TrackingID,
		WebsiteURL:  account.WebsiteURL,
		Steps: Steps{
			WebsiteType: account.WebsiteType != "",
			TrackingID:  account.TrackingID != "",
			Completed:   account.Onboarded,
		},
	}, nil
}

// SaveWebsiteType stores the chosen type, lazily minting a tracking id,
// and cascades dashboard defaults when preferences are wired.
func (s *Service) SaveWebsiteType(ctx context.Context, accountID string, t preferences.WebsiteType, websiteURL string) (Account, error) {
	if !t.Valid() {
		return Account{}, fmt.Errorf("onboarding: unknown website type %q", t)
	}
	account, err := s.getOrCreate(ctx, accountID)
	if err != nil {
		return Account{}, err
	}
	account.WebsiteType = t
	if websiteURL != "" {
		account.WebsiteURL = websiteURL
	}
	if account.TrackingID == "" {
		account.TrackingID = s.opts.NewTrackingID()
	}
	if err := s.opts.Accounts.Put(ctx, account); err != nil {
		return Account{}, err
	}
	if s.opts.Preferences != nil {
		if err := s.opts.Preferences.SetWebsiteType(ctx, t); err != nil {
			return Account{}, fmt.Errorf("onboarding: cascade website type: %w", err)
		}
	}
	s.opts.Telemetry.Record(ctx, "onboarding.website_type", map[string]any{
		"account_id":   account.ID,
		"website_type": string(t),
	})
	return account, nil
}

// GenerateTrackingID returns the existing tracking id or mints one.
func (s *Service) GenerateTrackingID(ctx context.Context, accountID string) (string, error) {
	account, err := s.getOrCreate(ctx, accountID)
	if err != nil {
		return "", err
	}
	if account.TrackingID != "" {
		return account.TrackingID, nil
	}
	account.TrackingID = s.opts.NewTrackingID()
	if err := s.opts.Accounts.Put(ctx, account); err != nil {
		return "", err
	}
	return account.TrackingID, nil
}

// Complete marks onboarding finished. Both the website type and tracking
// id steps must be done first.
func (s *Service) Complete(ctx context.Context, accountID string) error {
	account, err := s.opts.Accounts.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if account.WebsiteType == "" {
		return ErrWebsiteTypeRequired
	}
	if account.TrackingID == "" {
		return ErrTrackingIDRequired
	}
	account.Onboarded = true
	if err := s.opts.Accounts.Put(ctx, account); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "onboarding.completed", map[string]any{
		"account_id": account.ID,
	})
	return nil
}

// Skip finishes onboarding immediately, filling missing steps with
// defaults.
func (s *Service) Skip(ctx context.Context, accountID string) (Account, error) {
	account, err := s.getOrCreate(ctx, accountID)
	if err != nil {
		return Account{}, err
	}
	if account.TrackingID == "" {
		account.TrackingID = s.opts.NewTrackingID()
	}
	if account.WebsiteType == "" {
		account.WebsiteType = preferences.WebsiteTypeCustom
	}
	account.Onboarded = true
	if err := s.opts.Accounts.Put(ctx, account); err != nil {
		return Account{}, err
	}
	s.opts.Telemetry.Record(ctx, "onboarding.skipped", map[string]any{
		"account_id": account.ID,
	})
	return account, nil
}

// VerifyTracking checks whether the analytics pipeline has received
// sessions for the account's tracking id.
func (s *Service) VerifyTracking(ctx context.Context, accountID string) (Verification, error) {
	account, err := s.opts.Accounts.Get(ctx, accountID)
	if err != nil {
		return Verification{}, err
	}
	if account.TrackingID == "" {
		return Verification{}, ErrTrackingIDRequired
	}
	if s.opts.Events == nil {
		return Verification{
			Message: "analytics backend is not connected, skip this step or configure it",
		}, nil
	}
	count, err := s.opts.Events.SessionCount(ctx, account.TrackingID)
	if err != nil {
		return Verification{
			Message: "could not verify tracking, try again later",
		}, nil
	}
	verification := Verification{
		Verified:    count > 0,
		EventsCount: count,
	}
	if count > 0 {
		verification.Message = fmt.Sprintf("tracking works, received %d sessions", count)
	} else {
		verification.Message = "no sessions received yet, check the tracking snippet"
	}
	return verification, nil
}

func (s *Service) getOrCreate(ctx context.Context, accountID string) (Account, error) {
	if accountID == "" {
		return Account{}, errors.New("onboarding: account id is required")
	}
	account, err := s.opts.Accounts.Get(ctx, accountID)
	if errors.Is(err, ErrAccountNotFound) {
		return Account{ID: accountID}, nil
	}
	if err != nil {
		return Account{}, err
	}
	return account, nil
}

// InMemoryAccountStore keeps accounts in process, useful for tests and
// demos.
type InMemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewInMemoryAccountStore builds an empty store.
func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{accounts: map[string]Account{}}
}

// Get implements AccountStore.
func (s *InMemoryAccountStore) Get(_ context.Context, accountID string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

// Put implements AccountStore.
func (s *InMemoryAccountStore) Put(_ context.Context, account Account) error {
	if account.ID == "" {
		return errors.New("onboarding: account id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = account
	return nil
}

// StaticEventCounter returns fixed counts, useful for demos.
type StaticEventCounter struct {
	Counts map[string]int64
}

// SessionCount implements EventCounter.
func (c StaticEventCounter) SessionCount(_ context.Context, trackingID string) (int64, error) {
	return c.Counts[trackingID], nil
}
