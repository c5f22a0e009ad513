package tetration

import (
	"encoding/json"
	"os"

	"aws-visibility/internal/errors"
)

// Credentials is the API key pair issued by the platform. The file
// layout matches the credentials download offered in the platform UI.
type Credentials struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

// LoadCredentials reads and checks a JSON credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	if path == "" {
		return nil, errors.Config("credentials file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read credentials file %s", path)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to parse credentials file %s", path)
	}

	if creds.APIKey == "" || creds.APISecret == "" {
		return nil, errors.Configf("credentials file %s is missing api_key or api_secret", path)
	}
	return &creds, nil
}
