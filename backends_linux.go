package main

import (
	"fmt"
	"log/slog"

	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/gamepad/devmon"
	"github.com/inputkit/padbridge/internal/gamepad/evdev"
	"github.com/inputkit/padbridge/internal/gamepad/sdl"
)

const defaultBackend = "evdev"

func backendNames() []string {
	return []string{"evdev", "devmon", "sdl"}
}

func newBackend(name string, log *slog.Logger) (gamepad.Backend, error) {
	switch name {
	case "evdev":
		return evdev.New(log), nil
	case "devmon":
		return devmon.New(log), nil
	case "sdl":
		return sdl.New(log), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
