package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the runtime settings, resolved from flags, environment
// variables (PADBRIDGE_ prefix), and an optional config file, in that
// order of precedence.
type Config struct {
	Addr      string
	Backend   string
	LogLevel  string
	LogFormat string
}

func loadConfig() (*Config, error) {
	pflag.String("addr", ":8080", "listen address for the web interface")
	pflag.String("backend", defaultBackend, "input backend ("+strings.Join(backendNames(), ", ")+")")
	pflag.String("log-level", "info", "log level (debug, info, warn, error)")
	pflag.String("log-format", "text", "log format (text, json)")
	pflag.String("config", "", "path to a config file")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("PADBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Addr:      v.GetString("addr"),
		Backend:   v.GetString("backend"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
	}, nil
}

// webURL turns a listen address into something a browser can open.
func webURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
