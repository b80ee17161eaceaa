package core

import (
	"context"
	"fmt"
	"time"
)

// Service is the entry point used by the CLI, TUI and web layers.
// It wraps a Store and builds reports from its cached vendors.
type Service struct {
	store           *Store
	now             func() time.Time
	normalizeRegion func(string) string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the time source used for age calculations.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithRegionNormalizer transforms the region of every vendor before it is saved.
func WithRegionNormalizer(fn func(string) string) ServiceOption {
	return func(s *Service) {
		s.normalizeRegion = fn
	}
}

// NewService creates a new Service instance.
func NewService(store *Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Vendors returns every vendor known to the store.
func (s *Service) Vendors(ctx context.Context) (RecordSet, error) {
	return s.store.ReadAll(ctx)
}

// GeneralReport builds a snapshot report of all vendors.
func (s *Service) GeneralReport(ctx context.Context) (GeneralReport, error) {
	set, err := s.store.ReadAll(ctx)
	if err != nil {
		return GeneralReport{}, fmt.Errorf("general report: %w", err)
	}
	return NewGeneralReport(set), nil
}

// AverageAgeByRegion builds the average-age-per-region report as of now.
func (s *Service) AverageAgeByRegion(ctx context.Context) (AverageAgeReport, error) {
	set, err := s.store.ReadAll(ctx)
	if err != nil {
		return AverageAgeReport{}, fmt.Errorf("average age report: %w", err)
	}
	return NewAverageAgeReport(set, s.now()), nil
}

// Save appends v to storage.
func (s *Service) Save(ctx context.Context, v Vendor) error {
	if s.normalizeRegion != nil {
		v.Region = s.normalizeRegion(v.Region)
	}
	return s.store.Append(ctx, v)
}

// CaptureVendor builds a Vendor from user-entered text, parsing birthDate
// with pattern. It panics if pattern is unknown.
func (s *Service) CaptureVendor(id int, name, birthDate, region string, pattern DatePattern) (Vendor, error) {
	date, err := ParseDate(birthDate, pattern)
	if err != nil {
		return Vendor{}, err
	}
	return NewVendor(id, name, date, region)
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}
