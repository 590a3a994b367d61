package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/louieddxu2/BoardGameScorePad-sub001/internal/contract"
	"github.com/louieddxu2/BoardGameScorePad-sub001/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetTemplateStore implements the StoreManager interface.
func (m *MockStoreManager) GetTemplateStore() contract.TemplateStore {
	ret := m.Called()
	ts, _ := ret.Get(0).(contract.TemplateStore)
	return ts
}

// GetSessionStore implements the StoreManager interface.
func (m *MockStoreManager) GetSessionStore() contract.SessionStore {
	ret := m.Called()
	ss, _ := ret.Get(0).(contract.SessionStore)
	return ss
}

// MockTemplateStore is a mock implementation of TemplateStore for testing.
type MockTemplateStore struct {
	mock.Mock
}

var _ contract.TemplateStore = &MockTemplateStore{} // Compile-time check

// Get implements the TemplateStore interface.
func (m *MockTemplateStore) Get(ctx context.Context, templateID string) (schema.TemplateRecord, error) {
	args := m.Called(ctx, templateID)
	return args.Get(0).(schema.TemplateRecord), args.Error(1)
}

// Put implements the TemplateStore interface.
func (m *MockTemplateStore) Put(ctx context.Context, record schema.TemplateRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Delete implements the TemplateStore interface.
func (m *MockTemplateStore) Delete(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

// List implements the TemplateStore interface.
func (m *MockTemplateStore) List(ctx context.Context, limit int) ([]schema.TemplateRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]schema.TemplateRecord)
	return records, args.Error(1)
}

// GetStatus implements the TemplateStore interface.
func (m *MockTemplateStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the TemplateStore interface.
func (m *MockTemplateStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSessionStore is a mock implementation of SessionStore for testing.
type MockSessionStore struct {
	mock.Mock
}

var _ contract.SessionStore = &MockSessionStore{} // Compile-time check

// Get implements the SessionStore interface.
func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (schema.SessionRecord, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(schema.SessionRecord), args.Error(1)
}

// Put implements the SessionStore interface.
func (m *MockSessionStore) Put(ctx context.Context, record schema.SessionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Delete implements the SessionStore interface.
func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// List implements the SessionStore interface.
func (m *MockSessionStore) List(ctx context.Context, limit int) ([]schema.SessionRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]schema.SessionRecord)
	return records, args.Error(1)
}

// GetStatus implements the SessionStore interface.
func (m *MockSessionStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SessionStore interface.
func (m *MockSessionStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
