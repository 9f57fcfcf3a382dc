package handler

import (
	"context"

	"github.com/yujinlab/authgate/internal/repository"
)

// mockRepository is a mock implementation of the repository.Repository interface.
//
// Upserted users are delivered on the users channel (if set), so tests can
// wait for the asynchronous upsert to happen.
type mockRepository struct {
	users chan repository.User
	err   error
}

func (m *mockRepository) UpsertUser(_ context.Context, user repository.User) error {
	if m.users != nil {
		m.users <- user
	}
	return m.err
}
