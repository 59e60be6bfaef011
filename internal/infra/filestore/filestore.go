package filestore

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/commands"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStore uploads to a Cloudinary folder and returns the secure URL.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg config.UploadConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySec)
	if err != nil {
		return nil, errs.Wrap(err, "init cloudinary")
	}
	return &CloudinaryStore{cld: cld, folder: cfg.CloudinaryDir}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, folder string, file commands.Upload) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file.Body, uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       path.Join(s.folder, folder),
		ResourceType: "auto",
	})
	if err != nil {
		return "", errs.Wrap(err, "cloudinary upload")
	}
	if resp.Error.Message != "" {
		return "", errs.New("cloudinary upload: " + resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// LocalStore writes under dir and serves files from baseURL; used when Cloudinary is not configured.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(cfg config.UploadConfig) *LocalStore {
	return &LocalStore{dir: cfg.Dir, baseURL: strings.TrimRight(cfg.PublicBaseURL, "/")}
}

func (s *LocalStore) Save(ctx context.Context, folder string, file commands.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", errs.Wrap(err, "create upload dir")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	f, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", errs.Wrap(err, "create upload file")
	}
	if _, err = io.Copy(f, file.Body); err != nil {
		_ = f.Close()
		return "", errs.Wrap(err, "write upload file")
	}
	if err = f.Close(); err != nil {
		return "", errs.Wrap(err, "close upload file")
	}
	return s.baseURL + "/" + folder + "/" + name, nil
}

// Dir is the root the router serves static uploads from.
func (s *LocalStore) Dir() string {
	return s.dir
}
