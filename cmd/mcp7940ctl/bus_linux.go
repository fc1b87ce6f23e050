package main

import (
	"tinygo.org/x/drivers"

	"github.com/ajanata/rtc-drivers/smbus"
)

func openAdapter(n int) (drivers.I2C, func(), error) {
	b, err := smbus.Open(n)
	if err != nil {
		return nil, nil, err
	}
	return b, b.Close, nil
}
