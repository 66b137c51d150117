//go:build !cgo

package main

import "errors"

func RunWindow(_ *Controller, _ int) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
