package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is a minimal Client for registry tests.
type stubClient struct {
	name string
}

func (s *stubClient) Complete(ctx context.Context, req Request) (*Response, error) {
	return &Response{}, nil
}

func (s *stubClient) Provider() string { return s.name }
func (s *stubClient) Close() error     { return nil }

func stubFactory(name string) Factory {
	return func(cfg Config) (Client, error) {
		return &stubClient{name: name}, nil
	}
}

func TestRegisterAndNew(t *testing.T) {
	Register("test-reg", stubFactory("test-reg"))
	defer Unregister("test-reg")

	client, err := New("test-reg", Config{})
	require.NoError(t, err)
	assert.Equal(t, "test-reg", client.Provider())
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("no-such-provider", Config{})
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", stubFactory("test-dup"))
	defer Unregister("test-dup")

	assert.Panics(t, func() {
		Register("test-dup", stubFactory("test-dup"))
	})
}

func TestMustNew(t *testing.T) {
	Register("test-must", stubFactory("test-must"))
	defer Unregister("test-must")

	client := MustNew("test-must", Config{})
	assert.Equal(t, "test-must", client.Provider())

	assert.Panics(t, func() {
		MustNew("no-such-provider", Config{})
	})
}

func TestAvailableSorted(t *testing.T) {
	Register("test-zz", stubFactory("test-zz"))
	Register("test-aa", stubFactory("test-aa"))
	defer Unregister("test-zz")
	defer Unregister("test-aa")

	available := Available()

	idxAA, idxZZ := -1, -1
	for i, name := range available {
		switch name {
		case "test-aa":
			idxAA = i
		case "test-zz":
			idxZZ = i
		}
	}
	require.NotEqual(t, -1, idxAA)
	require.NotEqual(t, -1, idxZZ)
	assert.Less(t, idxAA, idxZZ, "Available() should be sorted")
}

func TestIsRegisteredAndUnregister(t *testing.T) {
	assert.False(t, IsRegistered("test-tmp"))

	Register("test-tmp", stubFactory("test-tmp"))
	assert.True(t, IsRegistered("test-tmp"))

	Unregister("test-tmp")
	assert.False(t, IsRegistered("test-tmp"))
}

func TestFactoryErrorPropagates(t *testing.T) {
	factoryErr := errors.New("bad config")
	Register("test-err", func(cfg Config) (Client, error) {
		return nil, factoryErr
	})
	defer Unregister("test-err")

	_, err := New("test-err", Config{})
	assert.True(t, errors.Is(err, factoryErr))
}
