package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateUploadSignature signs a direct browser upload of a listing image.
func (h *Handler) GenerateUploadSignature(c *fiber.Ctx) error {
	if h.uploads.CloudinaryURL == "" {
		return apperrors.NewConfigurationError("image uploads are not configured")
	}
	cld, err := cloudinary.NewFromURL(h.uploads.CloudinaryURL)
	if err != nil {
		return apperrors.NewConfigurationError("invalid CLOUDINARY_URL")
	}

	parsedURL, err := url.Parse(h.uploads.CloudinaryURL)
	if err != nil {
		return apperrors.NewConfigurationError("invalid CLOUDINARY_URL")
	}
	secret, _ := parsedURL.User.Password()

	paramsToSign, err := api.StructToParams(uploader.UploadParams{Folder: h.uploads.Folder})
	if err != nil {
		return apperrors.NewInternalError("failed to prepare signature params", err)
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return apperrors.NewInternalError("failed to sign upload params", err)
	}

	return c.JSON(fiber.Map{
		"signature":  signature,
		"timestamp":  timestamp,
		"api_key":    cld.Config.Cloud.APIKey,
		"cloud_name": cld.Config.Cloud.CloudName,
		"folder":     h.uploads.Folder,
	})
}
