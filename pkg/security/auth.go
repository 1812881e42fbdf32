package security

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// secret is resolved on first use, not at package init, so the environment
// can be loaded by whoever wires the process together.
func getJWTSecret() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")

		if secret == "" {
			if err := godotenv.Load(); err != nil {
				log.Printf("Could not load .env: %v", err)
			}
			secret = os.Getenv("JWT_SECRET")
		}

		if secret == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}

		jwtSecret = []byte(secret)
	})

	return jwtSecret
}

// UserLookup finds candidate users for a login name. The returned slice
// carries password hashes; it never leaves this package.
type UserLookup interface {
	FindByName(name string) ([]models.User, error)
}

type dbUserLookup struct {
	repo *repository.Repository
}

func NewUserLookup(r *repository.Repository) UserLookup {
	return &dbUserLookup{repo: r}
}

func (l *dbUserLookup) FindByName(name string) ([]models.User, error) {
	var users []models.User

	query := l.repo.GoquDBWrapper.
		Select("id", "name", "password_hash", "role", "vehicle_id").
		From("users").
		Where(goqu.L("LOWER(name) = LOWER(?)", name))

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, err
	}

	return users, nil
}

// AuthenticateUser matches the login name case-insensitively and expects
// exactly one row. Zero matches, more than one match and a wrong password all
// fail the same way so the caller cannot tell names from passwords apart.
func AuthenticateUser(name, password string, lookup UserLookup) (*models.User, error) {
	users, err := lookup.FindByName(name)
	if err != nil {
		return nil, err
	}

	if len(users) != 1 {
		return nil, fmt.Errorf("expected a single user match, got %d", len(users))
	}

	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(user *models.User) (string, error) {
	vehicleID := ""
	if user.VehicleID != nil {
		vehicleID = *user.VehicleID
	}

	claims := jwt.MapClaims{
		"userID":    user.ID,
		"role":      user.Role,
		"name":      user.Name,
		"vehicleID": vehicleID,
		"exp":       time.Now().Add(time.Hour * 120).Unix(), // 5 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

// SessionUser rebuilds the authenticated user from the claims the JWT
// middleware stored on the context.
func SessionUser(c *gin.Context) (*models.User, error) {
	userID, ok := c.Get("userID")
	if !ok {
		return nil, fmt.Errorf("no authenticated user on context")
	}

	user := models.User{}
	if id, ok := userID.(string); ok {
		user.ID = id
	} else {
		return nil, fmt.Errorf("userID is not a string")
	}

	if role, ok := c.Get("role"); ok {
		if r, ok := role.(string); ok {
			user.Role = r
		}
	}
	if name, ok := c.Get("name"); ok {
		if n, ok := name.(string); ok {
			user.Name = n
		}
	}
	if vehicleID, ok := c.Get("vehicleID"); ok {
		if v, ok := vehicleID.(string); ok && v != "" {
			user.VehicleID = &v
		}
	}

	return &user, nil
}
