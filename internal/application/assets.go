package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

func uploadAsset(ctx context.Context, store AssetStore, folder string, f *Upload) (entity.Asset, error) {
	id, url, err := store.Upload(ctx, folder, f.Filename, f.ContentType, f.Body)
	if err != nil {
		return entity.Asset{}, apperror.InternalErr(fmt.Errorf("upload %s: %w", f.Filename, err))
	}
	return entity.Asset{PublicID: id, URL: url}, nil
}

// deleteAsset is best-effort: a failure leaks an object on the host and is logged.
func deleteAsset(ctx context.Context, store AssetStore, logger *logrus.Logger, a entity.Asset) {
	if a.IsZero() {
		return
	}
	if err := store.Delete(ctx, a.PublicID); err != nil && logger != nil {
		logger.WithError(err).WithField("public_id", a.PublicID).Warn("asset delete failed")
	}
}
