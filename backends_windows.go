package main

import (
	"fmt"
	"log/slog"

	"github.com/inputkit/padbridge/internal/gamepad"
	"github.com/inputkit/padbridge/internal/gamepad/sdl"
	"github.com/inputkit/padbridge/internal/gamepad/xinput"
)

const defaultBackend = "xinput"

func backendNames() []string {
	return []string{"xinput", "sdl"}
}

func newBackend(name string, log *slog.Logger) (gamepad.Backend, error) {
	switch name {
	case "xinput":
		return xinput.New(log), nil
	case "sdl":
		return sdl.New(log), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
