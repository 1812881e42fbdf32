package security

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/rate_limiter"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateJWTCarriesSessionClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	vehicleID := "vehicle-1"
	user := &models.User{
		ID:        "user-1",
		Name:      "Carlos",
		Role:      "technician",
		VehicleID: &vehicleID,
	}

	tokenString, err := GenerateJWT(user)
	require.NoError(t, err)

	token, err := parseToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["userID"])
	assert.Equal(t, "technician", claims["role"])
	assert.Equal(t, "Carlos", claims["name"])
	assert.Equal(t, "vehicle-1", claims["vehicleID"])
}

func TestGenerateJWTManagerHasEmptyVehicleClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateJWT(&models.User{ID: "user-2", Name: "Ana", Role: "manager"})
	require.NoError(t, err)

	token, err := parseToken(tokenString)
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "", claims["vehicleID"])
}

func TestParseTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateJWT(&models.User{ID: "user-1", Name: "Carlos", Role: "technician"})
	require.NoError(t, err)

	_, err = parseToken(tokenString + "x")
	assert.Error(t, err)
}

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) FindByName(name string) ([]models.User, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func TestAuthenticateUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	carlos := models.User{ID: "user-1", Name: "Carlos", PasswordHash: string(hash), Role: "technician"}

	tests := []struct {
		name      string
		password  string
		matches   []models.User
		expectErr bool
	}{
		{
			name:      "single match with correct password",
			password:  "correct-password",
			matches:   []models.User{carlos},
			expectErr: false,
		},
		{
			name:      "zero matches fails",
			password:  "correct-password",
			matches:   []models.User{},
			expectErr: true,
		},
		{
			name:      "multiple case-insensitive matches fail",
			password:  "correct-password",
			matches:   []models.User{carlos, {ID: "user-2", Name: "carlos", PasswordHash: string(hash)}},
			expectErr: true,
		},
		{
			name:      "wrong password fails",
			password:  "wrong-password",
			matches:   []models.User{carlos},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := new(MockUserLookup)
			lookup.On("FindByName", "Carlos").Return(tt.matches, nil)

			user, err := AuthenticateUser("Carlos", tt.password, lookup)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", user.ID)
			}
		})
	}
}

// Every authentication failure must produce the same response, so the caller
// cannot tell an unknown name from a wrong password.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	carlos := models.User{ID: "user-1", Name: "Carlos", PasswordHash: string(hash), Role: "technician"}

	tests := []struct {
		name    string
		payload string
		matches []models.User
	}{
		{
			name:    "unknown name",
			payload: `{"name": "Carlos", "password": "correct-password"}`,
			matches: []models.User{},
		},
		{
			name:    "ambiguous name",
			payload: `{"name": "Carlos", "password": "correct-password"}`,
			matches: []models.User{carlos, {ID: "user-2", Name: "carlos", PasswordHash: string(hash)}},
		},
		{
			name:    "wrong password",
			payload: `{"name": "Carlos", "password": "wrong-password"}`,
			matches: []models.User{carlos},
		},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := new(MockUserLookup)
			lookup.On("FindByName", "Carlos").Return(tt.matches, nil)
			handler := &LoginHandler{
				users:       lookup,
				rateLimiter: rate_limiter.NewRateLimiter(10, time.Minute),
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/auth", bytes.NewBufferString(tt.payload))

			handler.Login()(c)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			bodies = append(bodies, w.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestIsAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		role     string
		setRole  bool
		required roles.Role
		allowed  bool
	}{
		{"manager on manager route", "manager", true, roles.Manager, true},
		{"technician on technician route", "technician", true, roles.Technician, true},
		{"technician on manager route", "technician", true, roles.Manager, false},
		{"manager on technician route", "manager", true, roles.Technician, false},
		{"no role on context", "", false, roles.Manager, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.setRole {
				c.Set("role", tt.role)
			}

			assert.Equal(t, tt.allowed, IsAllowed(c, tt.required))
		})
	}
}
