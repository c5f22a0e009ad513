package annotation

import (
	"context"
	"os"

	"go.uber.org/zap"

	"aws-visibility/internal/errors"
	"aws-visibility/internal/logging"
	"aws-visibility/tetration"
)

// Transport is the platform client surface the uploader needs
type Transport interface {
	UploadFile(ctx context.Context, path, filePath string, options ...tetration.MultiPartOption) (*tetration.Response, error)
}

// Uploader pushes annotation rows to a VRF's CMDB inventory
type Uploader struct {
	client Transport
}

// NewUploader creates an uploader backed by a platform client.
func NewUploader(client Transport) *Uploader {
	return &Uploader{client: client}
}

// Upload writes the rows to a temporary CSV and posts it to the VRF's
// upload endpoint with the "add" operation. The temporary file is
// removed whether or not the upload succeeds.
func (u *Uploader) Upload(ctx context.Context, vrf string, rows []Row) error {
	if vrf == "" {
		return errors.Config("vrf name is required")
	}

	f, err := os.CreateTemp("", "aws-annotations-*.csv")
	if err != nil {
		return errors.Internal("failed to create annotation csv", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Internal("failed to flush annotation csv", err)
	}

	logging.Info("uploading annotations",
		zap.String("vrf", vrf),
		zap.Int("rows", len(rows)))

	resp, err := u.client.UploadFile(ctx, "/assets/cmdb/upload/"+vrf, path,
		tetration.MultiPartOption{Key: "X-Tetration-Oper", Val: "add"})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return errors.Remote("annotation upload failed", resp.StatusCode, string(resp.Body)).
			WithContext("vrf", vrf)
	}

	logging.Info("uploaded annotations", zap.String("vrf", vrf))
	return nil
}
