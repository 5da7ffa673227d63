package storage

import (
	"github.com/stretchr/testify/mock"

	"go-log-viewer/internal/model"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) RootAbs() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStorage) Resolve(clientPath string) (string, error) {
	args := m.Called(clientPath)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) List() ([]model.FileRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileRecord), args.Error(1)
}

func (m *MockStorage) ReadTail(resolvedPath string, maxBytes int64) ([]string, error) {
	args := m.Called(resolvedPath, maxBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) Clear(clientPath string) error {
	args := m.Called(clientPath)
	return args.Error(0)
}

func (m *MockStorage) Delete(clientPath string) error {
	args := m.Called(clientPath)
	return args.Error(0)
}
