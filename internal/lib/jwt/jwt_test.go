package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAdmin(t *testing.T) {
	const secret = "s3cret"

	valid, err := NewToken("editor@example.com", secret, time.Hour)
	require.NoError(t, err)

	expired, err := NewToken("editor@example.com", secret, -time.Minute)
	require.NoError(t, err)

	guest, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             "guest",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr bool
	}{
		{name: "valid", token: valid, secret: secret},
		{name: "wrong secret", token: valid, secret: "other", wantErr: true},
		{name: "expired", token: expired, secret: secret, wantErr: true},
		{name: "not admin", token: guest, secret: secret, wantErr: true},
		{name: "garbage", token: "not.a.token", secret: secret, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := VerifyAdmin(tt.token, tt.secret)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "editor@example.com", claims.Subject)
		})
	}
}
