package services

import "crypto/subtle"

// DefaultPasscode applies when no passcode is configured.
const DefaultPasscode = "1234"

// AuthService checks the shared family passcode
type AuthService interface {
	Check(code string) bool
}

type authService struct {
	passcode []byte
}

func NewAuthService(passcode string) AuthService {
	if passcode == "" {
		passcode = DefaultPasscode
	}
	return &authService{passcode: []byte(passcode)}
}

func (s *authService) Check(code string) bool {
	return subtle.ConstantTimeCompare([]byte(code), s.passcode) == 1
}
