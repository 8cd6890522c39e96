package service

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/utils"
)

const (
	userNameMinLen    = 2
	userNameMaxLen    = 100
	passwordMinLen    = 8
	passwordMaxLen    = 72 // bcrypt input limit
	uploadFilenameMax = 255
)

func validateGroupName(name string) (string, error) {
	name = utils.CleanText(name)
	if n := utils.Length(name); n < domain.GroupNameMinLen || n > domain.GroupNameMaxLen {
		return "", domain.NewValidationError(fmt.Sprintf("group name must be between %d and %d characters", domain.GroupNameMinLen, domain.GroupNameMaxLen))
	}
	return name, nil
}

func validateOptional(value *string, field string, max int) (*string, error) {
	value = utils.CleanOptional(value)
	if value != nil && utils.Length(*value) > max {
		return nil, domain.NewValidationError(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return value, nil
}

func validateUserName(name string) (string, error) {
	name = utils.CleanText(name)
	if n := utils.Length(name); n < userNameMinLen || n > userNameMaxLen {
		return "", domain.NewValidationError(fmt.Sprintf("name must be between %d and %d characters", userNameMinLen, userNameMaxLen))
	}
	return name, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationError("a valid email address is required")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return domain.NewValidationError(fmt.Sprintf("password must be between %d and %d characters", passwordMinLen, passwordMaxLen))
	}
	return nil
}

func validateSessionTitle(title string) (string, error) {
	title = utils.CleanText(title)
	if n := utils.Length(title); n < domain.SessionTitleMinLen || n > domain.SessionTitleMaxLen {
		return "", domain.NewValidationError(fmt.Sprintf("title must be between %d and %d characters", domain.SessionTitleMinLen, domain.SessionTitleMaxLen))
	}
	return title, nil
}

func validateLink(link *string) (*string, error) {
	if link == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*link)
	if trimmed == "" {
		return nil, nil
	}
	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.NewValidationError("link must be a valid http or https URL")
	}
	return &trimmed, nil
}
