package commands

import (
	"sync"

	"github.com/fivetwenty-io/clickfunnels-node/internal/auth"
	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/spf13/viper"
)

// ConfigPersister implements the auth.ConfigPersister interface.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateAPIToken stores token in the config file and in the running viper
// instance.
func (p *ConfigPersister) UpdateAPIToken(token string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	token = auth.NormalizeToken(token)
	if token == "" {
		return constants.ErrEmptyToken
	}

	config := loadConfig()
	config.APIToken = token

	err := saveConfigStruct(config)
	if err != nil {
		return err
	}

	viper.Set("api_token", token)

	return nil
}
