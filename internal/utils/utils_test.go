package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, PaginationParams{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, Paginate(items, PaginationParams{Page: 3, Limit: 2}))
	assert.Empty(t, Paginate(items, PaginationParams{Page: 4, Limit: 2}))
	assert.NotNil(t, Paginate(items, PaginationParams{Page: 9, Limit: 2}))
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=0&limit=1000&order=sideways&sort=price", nil)

	params := GetPaginationParams(c)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultLimit, params.Limit)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "price", params.Sort)

	result := CreatePaginationResult([]int{}, 49, params)
	assert.Equal(t, 3, result.TotalPages)
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateJWT("admin", RoleAdmin, 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "storefront", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateJWT_Rejects(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		Username: "admin",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)
	_, err = ValidateJWT(signed)
	assert.Error(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{Username: "admin"}).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = ValidateJWT(foreign)
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct-horse"))
	assert.False(t, CheckPassword(hash, "wrong-horse"))
	assert.True(t, ConstantTimeEqual("admin", "admin"))
	assert.False(t, ConstantTimeEqual("admin", "admin2"))
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		ProductID string `validate:"required,product_id"`
		Username  string `validate:"username"`
	}

	assert.NoError(t, ValidateStruct(request{ProductID: "sku-1.2:a_b", Username: "shop_admin"}))

	err := ValidateStruct(request{ProductID: "bad id", Username: "ab"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, "productid", errs[0].Field)
	assert.Equal(t, "product_id", errs[0].Tag)
	assert.Equal(t, "username", errs[1].Tag)
}
