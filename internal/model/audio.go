package model

import (
	"context"
	"time"
)

// AudioFileStore defines persistence operations for uploaded audio files.
type AudioFileStore interface {
	Create(ctx context.Context, file AudioFile) (AudioFile, error)
	ListByUserID(ctx context.Context, userID int64) ([]AudioFile, error)
}

// AudioFile represents metadata of a stored audio file. FilePath is the
// storage key under which the payload lives; owning rows are removed by the
// database cascade when the user is deleted.
type AudioFile struct {
	ID        int64
	UserID    int64
	FileName  string
	FilePath  string
	CreatedAt time.Time
}
