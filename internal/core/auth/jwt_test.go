package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gocart", TTL: time.Hour}

	tok, err := j.Issue("u1", "admin")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UID)
	assert.Equal(t, "admin", c.Role)
}

func TestParse_Rejects(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "gocart", TTL: time.Hour}

	// 错误签名
	other := &JWTer{Secret: []byte("other-secret"), Issuer: "gocart", TTL: time.Hour}
	tok, err := other.Issue("u1", "user")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.Error(t, err)

	// 错误 issuer
	wrongIss := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	tok, err = wrongIss.Issue("u1", "user")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.Error(t, err)

	// 过期（超出 60s 容差）
	expired := &JWTer{Secret: []byte("test-secret"), Issuer: "gocart", TTL: -2 * time.Minute}
	tok, err = expired.Issue("u1", "user")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.Error(t, err)

	_, err = j.Parse("not-a-token")
	assert.Error(t, err)
}
