package errors

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/retailhub/retailhub-backend/internal/app/repository"
	"gorm.io/gorm"
)

// ErrorInfo is the client-facing code and message for an internal error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps a low-level error to a client-facing code and message
// without leaking paths, queries or driver details.
func ParseError(err error, action string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: defaultMessage(action)}
	}

	// 1. Record store failures
	if errors.Is(err, repository.ErrStoreCorrupted) {
		return ErrorInfo{
			Code:    InternalStorageError,
			Message: "The retailer directory could not be read. Please contact an administrator",
		}
	}
	if isStorageError(err) {
		return ErrorInfo{Code: InternalStorageError, Message: storageMessage(action)}
	}

	// 2. Cancelled or timed out requests
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "The request timed out. Please try again",
		}
	}

	// 3. Connection problems reported as plain strings by some drivers
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "broken pipe") {
		return ErrorInfo{Code: InternalStorageError, Message: storageMessage(action)}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(action)}
}

func isStorageError(err error) bool {
	var pathErr *fs.PathError
	var redisErr redis.Error
	switch {
	case errors.As(err, &pathErr):
		return true
	case errors.As(err, &redisErr):
		return true
	case errors.Is(err, redis.ErrClosed):
		return true
	case errors.Is(err, gorm.ErrInvalidDB), errors.Is(err, gorm.ErrInvalidTransaction):
		return true
	case errors.Is(err, repository.ErrDuplicateID):
		return true
	}
	return false
}

func storageMessage(action string) string {
	switch strings.ToLower(action) {
	case "create":
		return "The retailer could not be saved. Please try again later"
	case "delete":
		return "The retailer could not be deleted. Please try again later"
	default:
		return "The retailer directory is temporarily unavailable. Please try again later"
	}
}

func defaultMessage(action string) string {
	switch strings.ToLower(action) {
	case "create":
		return "An error occurred while creating the retailer. Please try again later"
	case "delete":
		return "An error occurred while deleting the retailer. Please try again later"
	default:
		return "Something went wrong. Please try again later"
	}
}

// ParseAndRespond parses err and answers with a 500 carrying its code and message.
func ParseAndRespond(c *gin.Context, err error, action string) {
	info := ParseError(err, action)
	InternalError(c, info.Code, info.Message)
}
