package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/rate_limiter"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type LoginHandler struct {
	users       UserLookup
	rateLimiter *rate_limiter.RateLimiter
}

func NewLoginHandler(r *repository.Repository) *LoginHandler {
	return &LoginHandler{
		users:       NewUserLookup(r),
		rateLimiter: rate_limiter.NewRateLimiter(10, 5*time.Minute), // 10 tries per 5 minutes
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth", l.Login())
	router.GET("/navigation", l.Navigation())
}

func (l *LoginHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := clientAddress(c)

		if !l.rateLimiter.IsAllowed(clientIP) {
			remaining := l.rateLimiter.GetRemainingRequests(clientIP)
			c.Header("X-RateLimit-Limit", "10")
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Header("X-RateLimit-Reset", time.Now().Add(5*time.Minute).Format(time.RFC3339))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many login attempts. Try again later.",
				"remaining": remaining,
				"reset_at":  time.Now().Add(5 * time.Minute).Format(time.RFC3339),
			})
			return
		}

		var req struct {
			Name     string `json:"name" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		user, err := AuthenticateUser(req.Name, req.Password, l.users)
		if err != nil {
			// Deliberately generic, regardless of which check failed.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid name or password"})
			return
		}

		token, err := GenerateJWT(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// Navigation resolves the route table for one screen. The endpoint is public:
// an absent or invalid token resolves as an unauthenticated session instead of
// rejecting the request, so the client can always ask where to go.
func (l *LoginHandler) Navigation() gin.HandlerFunc {
	return func(c *gin.Context) {
		screen := Screen(c.DefaultQuery("screen", string(ScreenRoot)))

		var user *models.User
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if token, err := parseToken(tokenString); err == nil && token.Valid {
				user = userFromClaims(token.Claims.(jwt.MapClaims))
			}
		}

		c.JSON(http.StatusOK, Resolve(user, screen))
	}
}

func userFromClaims(claims jwt.MapClaims) *models.User {
	user := &models.User{}
	if id, ok := claims["userID"].(string); ok {
		user.ID = id
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if vehicleID, ok := claims["vehicleID"].(string); ok && vehicleID != "" {
		user.VehicleID = &vehicleID
	}
	return user
}

func clientAddress(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.Split(clientIP, ",")[0]
	}

	// Behind a proxy every caller shares the private address; mix in the
	// user agent so the rate limiter does not lump them together.
	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "172.16.", "172.17.", "172.18.", "172.19.",
		"172.20.", "172.21.", "172.22.", "172.23.", "172.24.",
		"172.25.", "172.26.", "172.27.", "172.28.", "172.29.",
		"172.30.", "172.31.", "192.168.", "127.", "169.254.",
		"::1", "fc00::", "fe80::",
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
