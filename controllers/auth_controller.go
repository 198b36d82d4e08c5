package controllers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oseikofi/campusfeed/config"
	"github.com/oseikofi/campusfeed/models"
	"github.com/oseikofi/campusfeed/store"
	"github.com/oseikofi/campusfeed/utils"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	tokenLifetime  = 72 * time.Hour
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// AuthController handles pseudonymous registration and public profile
// lookups. These endpoints keep the bare JSON shapes the web client
// consumes rather than the enveloped API format.
type AuthController struct {
	directory *store.Directory
}

// NewAuthController creates an AuthController.
func NewAuthController(directory *store.Directory) *AuthController {
	return &AuthController{directory: directory}
}

// validateUsername checks the normalized username against the registration
// rules and returns a client-facing message when it fails.
func validateUsername(username string) (string, bool) {
	if len(username) < usernameMinLen {
		return "Username must be at least 3 characters", false
	}
	if len(username) > usernameMaxLen {
		return "Username must be less than 20 characters", false
	}
	if !usernamePattern.MatchString(username) {
		return "Username can only contain letters, numbers, and underscores", false
	}
	return "", true
}

func validSchool(school string, schools []string) bool {
	for _, s := range schools {
		if school == s {
			return true
		}
	}
	return school == models.RoomGeneral
}

// CheckUsername reports whether a username is valid and still available.
func (a *AuthController) CheckUsername(ctx *gin.Context) {
	username := store.NormalizeUsername(ctx.Param("username"))

	if msg, ok := validateUsername(username); !ok {
		ctx.JSON(http.StatusOK, gin.H{"available": false, "message": msg})
		return
	}

	if a.directory.Exists(username) {
		ctx.JSON(http.StatusOK, gin.H{"available": false, "message": "Username already taken"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"available": true, "message": "Username available"})
}

// Register creates a new identity under a pseudonym and school affiliation
// and hands back a session token. The display name keeps the submitted
// casing; the directory key is the normalized form.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username"`
		School   string `json:"school"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	normalized := store.NormalizeUsername(req.Username)
	if msg, ok := validateUsername(normalized); !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if a.directory.Exists(normalized) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}

	school := strings.ToLower(strings.TrimSpace(req.School))
	if !validSchool(school, config.Get().Schools) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school selection"})
		return
	}

	user := models.User{
		Username:    normalized,
		DisplayName: strings.TrimSpace(req.Username),
		School:      school,
		CreatedAt:   time.Now().UnixMilli(),
	}
	a.directory.Put(user)

	token, err := utils.GenerateToken(user.Username, user.School, tokenLifetime)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	utils.Sugar.Infof("registered @%s (%s)", user.Username, user.School)
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// GetUser returns the public profile for a username. Only the public
// fields are exposed; registration time stays internal.
func (a *AuthController) GetUser(ctx *gin.Context) {
	user, ok := a.directory.Lookup(ctx.Param("username"))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"username":    user.Username,
		"displayName": user.DisplayName,
		"avatar":      user.Avatar,
		"school":      user.School,
	})
}
