package service

import (
	"context"
	"net/url"

	"board-customizer/models"
)

// SessionServiceInterface defines the contract for customizer sessions
type SessionServiceInterface interface {
	Create(doc *models.BoardCustomizer, query url.Values) *Session
	Get(id string) (*Session, error)
	Attach(id string) (*Session, func(), error)
	Select(id string, category string, uid string) (*Session, error)
	StartCamera(id string) (*Session, bool, error)
	Response(sess *Session) models.SessionResponse
	Run(ctx context.Context)
}
