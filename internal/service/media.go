package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/Izrekatel/Yatube/internal/model"
	"github.com/Izrekatel/Yatube/internal/storage"
)

// MediaService validates inbound images, normalizes them to JPEG and stores
// them under generated keys in the configured blob store.
type MediaService struct {
	store storage.BlobStore
}

func NewMediaService(store storage.BlobStore) *MediaService {
	return &MediaService{store: store}
}

// UploadPostImage handles a multipart upload from the web form.
func (s *MediaService) UploadPostImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	data, _, err := readAndValidateImage(file, header, model.MaxImageSizeBytes)
	if err != nil {
		return nil, err
	}
	return s.storeJPEG(ctx, model.PostImageFolder, data, 0, 0)
}

// UploadAvatar normalizes the upload to a 200x200 JPEG.
func (s *MediaService) UploadAvatar(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	data, _, err := readAndValidateImage(file, header, model.MaxImageSizeBytes)
	if err != nil {
		return nil, err
	}
	return s.storeJPEG(ctx, model.AvatarFolder, data, model.AvatarWidth, model.AvatarHeight)
}

// DecodePostImage handles the API's base64 image payload. A data-URI prefix
// ("data:image/png;base64,...") is accepted and stripped.
func (s *MediaService) DecodePostImage(ctx context.Context, encoded string) (*model.UploadResult, error) {
	payload := encoded
	if idx := strings.Index(payload, "base64,"); idx != -1 {
		payload = payload[idx+len("base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, model.ErrInvalidBase64
	}
	if int64(len(data)) > model.MaxImageSizeBytes {
		return nil, model.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, model.ErrInvalidBase64
	}

	contentType := http.DetectContentType(data[:min(len(data), 512)])
	if !model.IsAllowedImageType(contentType) {
		return nil, model.ErrInvalidImageType
	}

	return s.storeJPEG(ctx, model.PostImageFolder, data, 0, 0)
}

// DeleteObject removes a stored blob by key.
func (s *MediaService) DeleteObject(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

// storeJPEG re-encodes the image (resizing when width/height are set) and
// writes it under a generated key.
func (s *MediaService) storeJPEG(ctx context.Context, folder string, data []byte, width, height int) (*model.UploadResult, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if width > 0 && height > 0 {
		img = imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), model.ImageExt)
	url, err := s.store.Put(ctx, key, buf.Bytes(), model.ContentTypeJPEG)
	if err != nil {
		return nil, err
	}
	return &model.UploadResult{URL: url, Key: key}, nil
}

// readAndValidateImage loads the upload into memory with size and type checks.
func readAndValidateImage(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if header.Size > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	limitedReader := io.LimitReader(file, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !model.IsAllowedImageType(contentType) {
		return nil, "", model.ErrInvalidImageType
	}

	return data, contentType, nil
}
