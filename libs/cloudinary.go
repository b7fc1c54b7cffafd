package libs

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func newCloudinary() (*cloudinary.Cloudinary, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		cldURL := os.Getenv("CLOUDINARY_URL")
		if cldURL == "" {
			return nil, fmt.Errorf("cloudinary environment variables not set")
		}
		return cloudinary.NewFromURL(cldURL)
	}

	return cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
}

// UploadImage streams an uploaded file to Cloudinary and returns its public
// URL.
func UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	cld, err := newCloudinary()
	if err != nil {
		return "", fmt.Errorf("cloudinary init failed: %v", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: fmt.Sprintf("%s_%d", folder, time.Now().UnixNano()),
		Folder:   folder,
	})
	if err != nil {
		return "", err
	}
	if resp == nil || (resp.SecureURL == "" && resp.URL == "") {
		return "", fmt.Errorf("cloudinary returned no URL")
	}

	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	return resp.URL, nil
}

func DeleteImage(ctx context.Context, publicID string) error {
	cld, err := newCloudinary()
	if err != nil {
		return fmt.Errorf("cloudinary init failed: %v", err)
	}

	result, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %v", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary delete result: %s", result.Result)
	}
	return nil
}
