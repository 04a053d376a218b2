package api

import (
	"errors"
	"net/http"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
	cookieMaxAge  int // seconds
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, secureCookies bool, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
		cookieMaxAge:  cookieMaxAge,
	}
}

// --- Request/Response Structs ---

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Age           *int     `json:"age"`
	Gender        string   `json:"gender"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	FitnessGoal   string   `json:"fitnessGoal"`
	ActivityLevel string   `json:"activityLevel"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	ProfileCompleted *bool  `json:"profileCompleted,omitempty"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// --- Handler Methods ---

// Signup creates an account and logs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "All fields are required!")
		return
	}

	user, tokens, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		if msg, ok := signupErrorMessages[unwrapAuthError(err)]; ok {
			abortWithError(c, http.StatusBadRequest, msg)
			return
		}
		log.Errorf("signup: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	h.setTokenCookie(c, tokens.AccessToken)
	c.JSON(http.StatusCreated, AuthResponse{
		Message: "User created successfully!",
		Token:   tokens.AccessToken,
		User:    UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

var signupErrorMessages = map[error]string{
	service.ErrMissingFields:    "All fields are required!",
	service.ErrPasswordMismatch: "Passwords do not match!",
	service.ErrPasswordTooShort: "Password must be at least 6 characters long!",
	service.ErrInvalidEmail:     "Please enter a valid email address!",
	service.ErrEmailExists:      "Email already exists!",
	service.ErrPhoneExists:      "Phone number already exists!",
}

func unwrapAuthError(err error) error {
	for known := range signupErrorMessages {
		if errors.Is(err, known) {
			return known
		}
	}
	return err
}

// Login authenticates a user and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Email and password required!")
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			abortWithError(c, http.StatusBadRequest, "Email and password required!")
		case errors.Is(err, service.ErrInvalidEmail):
			abortWithError(c, http.StatusBadRequest, "Please enter a valid email address!")
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, "Invalid credentials!")
		default:
			log.Errorf("login: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Server error!")
		}
		return
	}

	h.setTokenCookie(c, tokens.AccessToken)
	completed := user.ProfileCompleted
	c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful!",
		Token:   tokens.AccessToken,
		User:    UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, ProfileCompleted: &completed},
	})
}

// Logout clears the token cookie. Tokens are stateless and stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSameSite(c)
	c.SetCookie(tokenCookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful!"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile retrieved successfully!", "user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid profile data!")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, domain.Profile{
		Age:           req.Age,
		Gender:        req.Gender,
		Height:        req.Height,
		Weight:        req.Weight,
		FitnessGoal:   req.FitnessGoal,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error during profile update!")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!", "user": user})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	h.setSameSite(c)
	c.SetCookie(tokenCookieName, token, h.cookieMaxAge, "/", "", h.secureCookies, true)
}

// Cross-site cookies need SameSite=None, which browsers only accept with Secure.
func (h *AuthHandler) setSameSite(c *gin.Context) {
	if h.secureCookies {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
}
