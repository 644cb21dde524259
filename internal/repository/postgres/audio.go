package postgres

import (
	"context"
	"fmt"

	"audiovault/internal/model"
)

var _ model.AudioFileStore = (*AudioFileRepository)(nil)

type AudioFileRepository struct {
	db *Connection
}

func NewAudioFileRepository(db *Connection) *AudioFileRepository {
	return &AudioFileRepository{
		db: db,
	}
}

func (r *AudioFileRepository) Create(ctx context.Context, file model.AudioFile) (model.AudioFile, error) {
	query := `INSERT INTO audio_files (user_id, file_name, file_path, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_id, file_name, file_path, created_at`

	var saved model.AudioFile
	err := r.db.QueryRow(ctx, query, file.UserID, file.FileName, file.FilePath, file.CreatedAt).Scan(
		&saved.ID, &saved.UserID, &saved.FileName, &saved.FilePath, &saved.CreatedAt,
	)
	if err != nil {
		return model.AudioFile{}, fmt.Errorf("failed to create audio file: %w", err)
	}

	return saved, nil
}

func (r *AudioFileRepository) ListByUserID(ctx context.Context, userID int64) ([]model.AudioFile, error) {
	query := `SELECT id, user_id, file_name, file_path, created_at
			  FROM audio_files WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audio files: %w", err)
	}
	defer rows.Close()

	var files []model.AudioFile
	for rows.Next() {
		var f model.AudioFile
		if err := rows.Scan(&f.ID, &f.UserID, &f.FileName, &f.FilePath, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audio file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audio file rows: %w", err)
	}

	return files, nil
}
