package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permitflow/internal/shared/config"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:           "test-secret-at-least-32-chars-long",
		Issuer:           "permitflow-test",
		AccessExpMinutes: 60,
	})
}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := testJWTService()

	token, err := svc.Generate(1, 10, "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, uint(10), claims.OrgID)
	assert.Equal(t, "jane@example.com", claims.Name)
	assert.Equal(t, "permitflow-test", claims.Issuer)
}

func TestJWTService_Verify_RejectsWrongSecret(t *testing.T) {
	token, err := testJWTService().Generate(1, 10, "jane@example.com")
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{
		Secret:           "a-completely-different-signing-key",
		Issuer:           "permitflow-test",
		AccessExpMinutes: 60,
	})

	claims, err := other.Verify(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_Verify_RejectsGarbage(t *testing.T) {
	svc := testJWTService()

	claims, err := svc.Verify("not.a.token")
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_Verify_RejectsExpired(t *testing.T) {
	expired := NewJWTService(&config.JWTConfig{
		Secret:           "test-secret-at-least-32-chars-long",
		Issuer:           "permitflow-test",
		AccessExpMinutes: -5,
	})

	token, err := expired.Generate(1, 10, "jane@example.com")
	require.NoError(t, err)

	claims, err := testJWTService().Verify(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_Verify_RejectsMissingOrg(t *testing.T) {
	svc := testJWTService()

	token, err := svc.Generate(1, 0, "jane@example.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing organization")
}

func TestJWTService_Verify_RejectsUnsignedAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		OrgID:  10,
		Name:   "jane@example.com",
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := testJWTService().Verify(unsigned)
	assert.Nil(t, claims)
	assert.Error(t, err)
}
