// Package globals holds the state shared by all commands
package globals

import (
	"github.com/minepkg/mclaunch/internals/cmdlog"
	"github.com/minepkg/mclaunch/internals/config"
	"github.com/minepkg/mclaunch/internals/instances"
	"github.com/minepkg/mclaunch/internals/mojang"
	"github.com/minepkg/mclaunch/internals/ownhttp"
)

var (
	// Config is set after the config was read
	Config = &config.Config{}
	Logger = cmdlog.New()
)

// Instance returns an instance using the global config
func Instance() *instances.Instance {
	client := mojang.New(ownhttp.NewThrottled(float64(Config.RateLimit)))
	if Config.Repository != "" {
		client.Repository = Config.Repository
	}

	instance := instances.New(Config.Root, client)
	if Config.AssetsBase != "" {
		instance.AssetsBase = Config.AssetsBase
	}
	instance.Concurrency = int64(Config.Concurrency)
	instance.OnEvent = Logger.EventHandler()
	return instance
}
