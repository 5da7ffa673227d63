package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go-log-viewer/internal/config"
	"go-log-viewer/internal/logentry"
	"go-log-viewer/internal/model"
	"go-log-viewer/internal/service"
	"go-log-viewer/internal/storage"
)

type commandContext struct {
	dirFlag    *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(dirFlag, configFlag *string) *commandContext {
	return &commandContext{
		dirFlag:    dirFlag,
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}

		var cfg *config.Config
		var err error
		if path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFile(path)
		}
		if err != nil {
			c.configErr = err
			return
		}

		if c.dirFlag != nil && strings.TrimSpace(*c.dirFlag) != "" {
			cfg.LogDir = strings.TrimSpace(*c.dirFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logService() (*service.LogService, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.New(cfg.LogDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open log directory: %w", err)
	}

	matcher, err := logentry.NewMatcher(cfg.EntryFormat, cfg.EntryStartPattern)
	if err != nil {
		return nil, nil, err
	}

	audit, err := service.NewConfinedAuditService(cfg.AuditLogFile, store)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewLogService(store, matcher, service.TailWindow{
		AverageLineBytes: cfg.TailAverageLineBytes,
		FloorBytes:       cfg.TailFloorBytes,
	}, audit)

	return svc, cfg, nil
}

func cliActor() model.AuditActor {
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	return model.AuditActor{Username: username, IP: "cli"}
}
