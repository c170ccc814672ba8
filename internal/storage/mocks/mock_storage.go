package mocks

import (
	"context"
	"io"

	"medidocs/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Store(ctx context.Context, ownerID string, r io.Reader, originalName, contentType string, size int64) (storage.BlobInfo, error) {
	args := m.Called(ctx, ownerID, r, originalName, contentType, size)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, string, string, int64) storage.BlobInfo); ok {
		return f(ctx, ownerID, r, originalName, contentType, size), args.Error(1)
	}
	return args.Get(0).(storage.BlobInfo), args.Error(1)
}

func (m *MockBlobStore) Load(ctx context.Context, ownerID, key string) (io.ReadCloser, storage.BlobInfo, error) {
	args := m.Called(ctx, ownerID, key)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.BlobInfo), args.Error(2)
}

func (m *MockBlobStore) Delete(ctx context.Context, ownerID, key string) error {
	args := m.Called(ctx, ownerID, key)
	return args.Error(0)
}
