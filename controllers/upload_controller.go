package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oseikofi/campusfeed/media"
	"github.com/oseikofi/campusfeed/store"
)

// UploadController handles multipart image uploads for avatars and post
// images. Stored files are opaque references to everyone else: posts carry
// the returned URL verbatim and the media store resolves it back on cleanup.
type UploadController struct {
	directory *store.Directory
	media     *media.Store
}

// NewUploadController creates an UploadController.
func NewUploadController(directory *store.Directory, mediaStore *media.Store) *UploadController {
	return &UploadController{directory: directory, media: mediaStore}
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, media.ErrFileTooLarge):
		return "File too large. Maximum size is 5MB."
	case errors.Is(err, media.ErrUnsupportedType):
		return "Only image files are allowed!"
	default:
		return "Upload error"
	}
}

// UploadAvatar stores a new avatar for an existing user, deleting the
// previous avatar file. An upload for an unknown user is rejected and the
// just-written file removed.
func (u *UploadController) UploadAvatar(ctx *gin.Context) {
	header, err := ctx.FormFile("avatar")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	avatarURL, err := u.media.Save(header)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": uploadErrorMessage(err)})
		return
	}

	username := ctx.PostForm("username")
	previous, err := u.directory.UpdateAvatar(username, avatarURL)
	if err != nil {
		u.media.Remove(avatarURL)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user"})
		return
	}
	if previous != "" {
		u.media.Remove(previous)
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "avatar": avatarURL})
}

// UploadPostImage stores an image for a yet-to-be-created post and returns
// its public URL.
func (u *UploadController) UploadPostImage(ctx *gin.Context) {
	header, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	imageURL, err := u.media.Save(header)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": uploadErrorMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "imageUrl": imageURL})
}
