//go:build !linux

package main

import (
	"errors"

	"tinygo.org/x/drivers"
)

func openAdapter(int) (drivers.I2C, func(), error) {
	return nil, nil, errors.New("I2C adapters are only supported on linux")
}
