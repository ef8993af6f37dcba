package storage

import (
	"context"
	"fmt"
)

// UnsupportedBackend fails every operation with ErrUnsupportedBackend. It is
// returned for an unknown STORAGE_BACKEND selection so the process fails
// closed instead of crashing at startup.
type UnsupportedBackend struct {
	selected string
}

func NewUnsupportedBackend(selected string) *UnsupportedBackend {
	return &UnsupportedBackend{selected: selected}
}

func (u *UnsupportedBackend) Name() string { return u.selected }

func (u *UnsupportedBackend) Put(context.Context, string, string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedBackend, u.selected)
}

func (u *UnsupportedBackend) Get(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnsupportedBackend, u.selected)
}

func (u *UnsupportedBackend) Ping(context.Context) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedBackend, u.selected)
}

// UnavailableBackend fails every operation with ErrUnavailable. It stands in
// for a backend whose client could not be initialized at startup, keeping the
// process alive while the health check reports the condition.
type UnavailableBackend struct {
	name  string
	cause error
}

func NewUnavailableBackend(name string, cause error) *UnavailableBackend {
	return &UnavailableBackend{name: name, cause: cause}
}

func (u *UnavailableBackend) Name() string { return u.name }

func (u *UnavailableBackend) Put(context.Context, string, string) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}

func (u *UnavailableBackend) Get(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}

func (u *UnavailableBackend) Ping(context.Context) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}
