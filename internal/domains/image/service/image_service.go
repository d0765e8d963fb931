package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/image/model"
	"library-backend/internal/domains/image/repository"
	"library-backend/internal/infrastructure/storage"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (*model.Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error)
	GetBySlug(ctx context.Context, slug string) (*model.Image, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Image, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Image, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type imageService struct {
	repo      repository.RepositoryInterface
	store     *storage.MinIOStorage
	processor *storage.ImageProcessor
}

func NewImageService(repo repository.RepositoryInterface, store *storage.MinIOStorage, processor *storage.ImageProcessor) ServiceInterface {
	return &imageService{repo: repo, store: store, processor: processor}
}

// Upload validate ảnh, đẩy original + thumbnail lên MinIO rồi persist metadata.
func (s *imageService) Upload(ctx context.Context, fileName, contentType string, data []byte) (*model.Image, error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return nil, apperror.InvalidInput("%s", err.Error())
	}

	id := uuid.New()
	prefix := fmt.Sprintf("images/%s/", id)

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}

	url, err := s.store.Upload(ctx, prefix+"original"+ext, data, contentType)
	if err != nil {
		return nil, err
	}

	thumb, err := s.processor.Thumbnail(data)
	if err != nil {
		return nil, apperror.InvalidInput("%s", err.Error())
	}
	thumbnailURL, err := s.store.Upload(ctx, prefix+"thumb.jpg", thumb, "image/jpeg")
	if err != nil {
		// Original đã lên bucket, dọn lại cho sạch.
		if cleanupErr := s.store.DeleteByPrefix(ctx, prefix); cleanupErr != nil {
			log.Warn().Err(cleanupErr).Str("prefix", prefix).Msg("failed to clean up partial upload")
		}
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Image{
		FileName:     fileName,
		Slug:         utils.SlugifyFileName(fileName),
		URL:          url,
		ThumbnailURL: thumbnailURL,
		ObjectKey:    prefix,
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
	})
	if err != nil {
		if cleanupErr := s.store.DeleteByPrefix(ctx, prefix); cleanupErr != nil {
			log.Warn().Err(cleanupErr).Str("prefix", prefix).Msg("failed to clean up orphaned upload")
		}
		return nil, err
	}

	return created, nil
}

func (s *imageService) GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	if id == uuid.Nil {
		return nil, model.ErrImageNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *imageService) GetBySlug(ctx context.Context, slug string) (*model.Image, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrImageNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *imageService) GetAll(ctx context.Context, p pagination.Params) ([]model.Image, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *imageService) Search(ctx context.Context, query string, p pagination.Params) ([]model.Image, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Image{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *imageService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrImageNotFound
	}
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.deleteImage(ctx, img)
}

func (s *imageService) DeleteBySlug(ctx context.Context, slug string) error {
	img, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.deleteImage(ctx, img)
}

// deleteImage xóa row trước, objects sau. Object cleanup là best effort:
// row đã mất thì orphan object không còn reachable, chỉ log lại.
func (s *imageService) deleteImage(ctx context.Context, img *model.Image) error {
	if err := s.repo.Delete(ctx, img.ID); err != nil {
		return err
	}

	if err := s.store.DeleteByPrefix(ctx, img.ObjectKey); err != nil {
		log.Warn().Err(err).
			Str("image_id", img.ID.String()).
			Str("prefix", img.ObjectKey).
			Msg("failed to delete image objects from storage")
	}

	return nil
}
