package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"coursereg/model"
)

const (
	appDirName  = "coursereg"
	sessionFile = "session.json"
)

// GetUser returns the signed-in identity, or nil when nobody is signed in.
// A corrupt session file is treated the same as a missing one.
func GetUser() (*model.User, error) {
	path, err := configPath(sessionFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var user *model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	return user, nil
}

// SetUser overwrites the persisted identity.
func SetUser(user model.User) error {
	path, err := configPath(sessionFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func ClearUser() error {
	path, err := configPath(sessionFile)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// CurrentEmail is the trimmed email of the signed-in user, or "".
func CurrentEmail() string {
	user, _ := GetUser()
	if user == nil {
		return ""
	}
	return strings.TrimSpace(user.Email)
}

// CurrentRole defaults to student when nobody is signed in or the record has
// no role.
func CurrentRole() string {
	user, _ := GetUser()
	if user == nil || user.Role == "" {
		return model.RoleStudent
	}
	return user.Role
}

// DisplayName is the greeting name: the part of name (or email) before "@".
func DisplayName(user *model.User) string {
	if user == nil {
		return "Student"
	}
	name := user.Name
	if name == "" {
		name = user.Email
	}
	name, _, _ = strings.Cut(name, "@")
	if name == "" {
		return "Student"
	}
	return name
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
