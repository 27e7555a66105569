package client

import (
	"bytes"
	"context"
	"fmt"
	"kingtech-store/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// AssetKind selects the remote resource type.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetRaw   AssetKind = "raw"
)

// UploadResult is the (url, public id) pair a Product stores per asset.
type UploadResult struct {
	URL      string
	PublicID string
}

type AssetStore interface {
	Upload(ctx context.Context, kind AssetKind, data []byte, folder, filename string) (*UploadResult, error)
	Destroy(ctx context.Context, kind AssetKind, publicID string) error
}

type cloudinaryClientImpl struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryClient(cfg *config.Cloudinary) (AssetStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	// bounded timeout so a hung upload cannot block a request forever
	cld.Config.API.Timeout = 60

	return &cloudinaryClientImpl{cld: cld}, nil
}

func (c *cloudinaryClientImpl) Upload(ctx context.Context, kind AssetKind, data []byte, folder, filename string) (*UploadResult, error) {
	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: string(kind),
		Overwrite:    api.Bool(true),
	}

	// raw deliverables keep their original filename so downloads look sane
	if filename != "" {
		params.FilenameOverride = filename
		params.UseFilename = api.Bool(true)
		params.UniqueFilename = api.Bool(false)
	}

	resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

func (c *cloudinaryClientImpl) Destroy(ctx context.Context, kind AssetKind, publicID string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: string(kind),
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}

	return nil
}
