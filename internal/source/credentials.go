package source

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-agestack/internal/config"
	"github.com/zalando/go-keyring"
)

// SavePassword stores the photo-source password in the system keyring so it
// never has to live in shell history or a config file.
func SavePassword(user, pass string) error {
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
	}
	slog.Info(config.MsgPassSaved,
		config.LogKeyComponent, config.CompSource,
		config.LogKeyUser, user)
	return nil
}

// LoadPassword retrieves a previously stored password. A miss is not an
// error: public manifests need no credentials at all.
func LoadPassword(user string) string {
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompSource,
			config.LogKeyUser, user,
			config.LogKeyError, err)
		return ""
	}
	return pass
}
