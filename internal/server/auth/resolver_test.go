package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/stretchr/testify/assert"
)

type fakeUsers struct {
	byID  map[string]*models.User
	err   error
	calls int
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func newResolverFixture(t *testing.T) (*Resolver, *Codec, *fakeUsers) {
	t.Helper()
	codec := NewCodec([]byte("resolver-secret"))
	users := &fakeUsers{byID: map[string]*models.User{
		"u1": {ID: "u1", UserName: "alice", Email: "alice@example.com"},
	}}
	return NewResolver(codec, users, logging.Nop()), codec, users
}

func TestResolve_EmptyCookie(t *testing.T) {
	r, _, users := newResolverFixture(t)

	assert.Nil(t, r.Resolve(context.Background(), ""))
	assert.Zero(t, users.calls, "store must not be consulted without a cookie")
}

func TestResolve_ValidToken(t *testing.T) {
	r, codec, _ := newResolverFixture(t)

	tok, err := codec.Issue("u1", time.Minute)
	assert.NoError(t, err)

	u := r.Resolve(context.Background(), tok)
	if assert.NotNil(t, u) {
		assert.Equal(t, "alice", u.UserName)
	}
}

func TestResolve_FailuresCollapseToNil(t *testing.T) {
	r, codec, users := newResolverFixture(t)
	ctx := context.Background()

	expired, _ := codec.Issue("u1", -time.Minute)
	foreign, _ := NewCodec([]byte("other")).Issue("u1", time.Minute)
	unknown, _ := codec.Issue("u404", time.Minute)

	tests := []struct {
		name  string
		value string
	}{
		{"malformed", "garbage"},
		{"expired", expired},
		{"bad signature", foreign},
		{"unknown subject", unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, r.Resolve(ctx, tt.value))
		})
	}

	users.err = errors.New("db down")
	valid, _ := codec.Issue("u1", time.Minute)
	assert.Nil(t, r.Resolve(ctx, valid), "store failure must read as unauthenticated")
}
