package service

import (
	"prefixle/internal/repository"
)

// AuthService gates the game behind an optional shared password
type AuthService struct {
	playerRepo   repository.PlayerRepository
	gamePassword string
}

// NewAuthService creates a new auth service. An empty password opens the game to everyone.
func NewAuthService(playerRepo repository.PlayerRepository, gamePassword string) *AuthService {
	return &AuthService{
		playerRepo:   playerRepo,
		gamePassword: gamePassword,
	}
}

// PasswordRequired reports whether players must enter the password
func (s *AuthService) PasswordRequired() bool {
	return s.gamePassword != ""
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return s.PasswordRequired() && password == s.gamePassword
}

// IsAuthorized checks if player may play
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	if !s.PasswordRequired() {
		return true, nil
	}
	return s.playerRepo.IsAuthorized(userID)
}

// AuthorizePlayer authorizes a player
func (s *AuthService) AuthorizePlayer(userID int64) error {
	return s.playerRepo.AuthorizePlayer(userID)
}

// EnsurePlayer creates player record if it doesn't exist
func (s *AuthService) EnsurePlayer(userID int64, username string) error {
	return s.playerRepo.EnsurePlayer(userID, username)
}
