package server

import "errors"

// Handlers validate form input before anything reaches the store layer, so
// the stores only ever see complete commands.

func validateCredentials(name, password string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

func validatePostFields(title, content string) error {
	if title == "" {
		return errors.New("title cannot be empty")
	}
	if content == "" {
		return errors.New("content cannot be empty")
	}
	return nil
}

func validateLitePost(title, name, content string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	return validatePostFields(title, content)
}
