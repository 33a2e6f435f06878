package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/VechkanovVV/bugtrack/internal/api/dto"
	"github.com/VechkanovVV/bugtrack/internal/apperrors"
)

// InvalidType - тип ошибок запроса.
type InvalidType string

// InvalidRequest - некорректный запрос.
const InvalidRequest InvalidType = "INVALID_REQUEST"

// respondJSON отправляет JSON-ответ с заданным статусом.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// respondError отправляет ошибку в формате ErrorResponse.
func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}); err != nil {
		log.Printf("failed to encode error response: %v", err)
	}
}

// RespondAppError маппит *apperrors.AppError в HTTP-ответ.
// Экспортирован: им же пользуется auth middleware.
func RespondAppError(w http.ResponseWriter, err *apperrors.AppError) {
	respondError(w, err.HTTPStatus(), string(err.Code), err.Message)
}

// logWriteError логирует ошибку записи тела ответа.
func logWriteError(err error) {
	log.Printf("failed to write response: %v", err)
}
