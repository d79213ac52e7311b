//go:build !linux && !windows

package main

import (
	"fmt"
	"log/slog"

	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/gamepad/sdl"
)

const defaultBackend = "sdl"

func backendNames() []string {
	return []string{"sdl"}
}

func newBackend(name string, log *slog.Logger) (gamepad.Backend, error) {
	if name == "sdl" {
		return sdl.New(log), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
