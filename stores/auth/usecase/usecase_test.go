package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", 24*time.Hour)
	tkn, err := u.SignToken(ctx, "Alice@Example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	userId, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", userId)
}

func TestParseTokenWrongSecret(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", 24*time.Hour)
	tkn, err := u.SignToken(ctx, "alice@example.com")
	assert.NoError(t, err)

	other := usecase.New("other-secret", 24*time.Hour)
	_, err = other.ParseToken(ctx, tkn)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	u := usecase.New("jwt-secret", 24*time.Hour)
	_, err := u.ParseToken(ctx.Background(), "not-a-token")
	assert.Error(t, err)
}
