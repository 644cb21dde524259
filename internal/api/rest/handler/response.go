package handler

import (
	"github.com/google/uuid"

	"audiovault/internal/model"
)

// UserResponse is the public view of an account. Internal numeric IDs and
// credential material never leave the service.
type UserResponse struct {
	UID         uuid.UUID `json:"uid"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsSuperuser bool      `json:"is_superuser"`
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		UID:         u.UID,
		Username:    u.Username,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	}
}

func toUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	return out
}

// AudioFileResponse describes one uploaded file.
type AudioFileResponse struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

func toAudioFileResponses(files []model.AudioFile) []AudioFileResponse {
	out := make([]AudioFileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, AudioFileResponse{ID: f.ID, FileName: f.FileName, FilePath: f.FilePath})
	}

	return out
}
