package app

import (
	"fmt"

	"github.com/samvad-hq/assistly-go/internal/config"
	"github.com/samvad-hq/assistly-go/internal/logger"
	"github.com/samvad-hq/assistly-go/pkg/assistly"
	"github.com/samvad-hq/assistly-go/pkg/httpclient"
)

// NewCustomerResource builds an authenticated customer resource from config.
func NewCustomerResource(cfg *config.Config, log logger.Logger) (*assistly.CustomerResource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	exec, err := httpclient.NewRestyExecutor(cfg.ExecutorOptions(log))
	if err != nil {
		return nil, fmt.Errorf("init assistly executor: %w", err)
	}
	return assistly.NewCustomerResource(exec), nil
}
