package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"audiovault/internal/logger"
	"audiovault/internal/model"
)

var allowedAudioTypes = map[string]struct{}{
	"audio/mpeg":  {},
	"audio/wav":   {},
	"audio/x-wav": {},
	"audio/aac":   {},
	"audio/ogg":   {},
	"audio/x-m4a": {},
}

var allowedExtensions = map[string]struct{}{
	".mp3": {},
	".wav": {},
	".aac": {},
	".ogg": {},
	".m4a": {},
}

// audioSignatures maps magic-number prefixes to the content types they
// imply. A recognized signature must agree with one of the declared
// content type's equivalents.
var audioSignatures = map[string][]string{
	"ID3":  {"audio/mpeg"},
	"RIFF": {"audio/wav", "audio/x-wav"},
	"OggS": {"audio/ogg"},
}

// Audio validates and stores uploaded audio files and records their
// metadata.
type Audio struct {
	files   model.AudioFileStore
	storage model.FileStorage
	logger  *logger.Logger
}

func NewAudio(files model.AudioFileStore, storage model.FileStorage, logger *logger.Logger) *Audio {
	return &Audio{files: files, storage: storage, logger: logger}
}

// Upload validates the payload, writes it to storage under a per-user key
// and records the metadata row. The payload is written before the metadata
// commit; if the insert fails the stored file is left behind.
func (s *Audio) Upload(ctx context.Context, user model.User, fileName, originalName, contentType string, r io.Reader) (model.AudioFile, error) {
	if fileName == "" || strings.ContainsAny(fileName, `/\`) {
		return model.AudioFile{}, fmt.Errorf("%w: file name %q must not contain path separators", model.ErrInvalidFile, fileName)
	}

	if _, ok := allowedAudioTypes[contentType]; !ok {
		return model.AudioFile{}, fmt.Errorf("%w: content type %q is not allowed", model.ErrInvalidFile, contentType)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return model.AudioFile{}, fmt.Errorf("%w: extension %q is not allowed", model.ErrInvalidFile, ext)
	}

	head := make([]byte, 4)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return model.AudioFile{}, fmt.Errorf("failed to read file header: %w", err)
	}
	head = head[:n]

	if err := checkSignature(head, contentType); err != nil {
		return model.AudioFile{}, err
	}

	key := fmt.Sprintf("%d_%s", user.ID, fileName)
	payload := io.MultiReader(bytes.NewReader(head), r)

	if err := s.storage.Save(ctx, key, payload); err != nil {
		s.logger.Error("Audio service: failed to store file",
			"uid", user.UID,
			"key", key,
			"error", err.Error())
		return model.AudioFile{}, fmt.Errorf("failed to store file: %w", err)
	}

	file, err := s.files.Create(ctx, model.AudioFile{
		UserID:    user.ID,
		FileName:  fileName,
		FilePath:  key,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("Audio service: failed to record file metadata",
			"uid", user.UID,
			"key", key,
			"error", err.Error())
		return model.AudioFile{}, err
	}

	s.logger.Info("Audio service: file uploaded", "uid", user.UID, "file_id", file.ID)

	return file, nil
}

// ListForUser returns metadata of all files the user owns.
func (s *Audio) ListForUser(ctx context.Context, user model.User) ([]model.AudioFile, error) {
	return s.files.ListByUserID(ctx, user.ID)
}

// checkSignature rejects payloads whose recognized magic number disagrees
// with the declared content type. Unrecognized headers pass; the type
// allow-list has already vetted them.
func checkSignature(head []byte, contentType string) error {
	for prefix, impliedTypes := range audioSignatures {
		if !bytes.HasPrefix(head, []byte(prefix)) {
			continue
		}
		for _, implied := range impliedTypes {
			if contentType == implied {
				return nil
			}
		}
		return fmt.Errorf("%w: signature says %s but content type is %s",
			model.ErrInvalidFile, impliedTypes[0], contentType)
	}
	return nil
}
