//go:build linux

// Package smbus exposes a Linux /dev/i2c-N adapter as a drivers.I2C using
// SMBus byte-data transfers. Only single register reads and writes are
// supported, which is all register-per-byte devices such as the MCP7940 need.
package smbus

import (
	"errors"
	"sync"

	"github.com/platinasystems/i2c"
)

var ErrUnsupported = errors.New("smbus: only single byte register transfers are supported")

// conn is the subset of i2c.Bus used here.
type conn interface {
	ForceSlaveAddress(addr int) error
	Do(rw i2c.RW, reg uint8, size i2c.SMBusSize, data *i2c.SMBusData) error
}

// Bus is safe for concurrent use; each Tx holds the bus for its address
// selection and transfer.
type Bus struct {
	mu    sync.Mutex
	c     conn
	close func()
	addr  int
}

// Open opens /dev/i2c-<bus>.
func Open(bus int) (*Bus, error) {
	b := new(i2c.Bus)
	if err := b.Open(bus); err != nil {
		return nil, err
	}
	return &Bus{c: b, close: func() { b.Close() }, addr: -1}, nil
}

func (b *Bus) Close() {
	if b.close != nil {
		b.close()
	}
}

// Tx performs a register write (w = {reg, value}, r empty) or a register read
// (w = {reg}, len(r) == 1).
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	var data i2c.SMBusData
	var rw i2c.RW
	switch {
	case len(w) == 2 && len(r) == 0:
		rw = i2c.Write
		data[0] = w[1]
	case len(w) == 1 && len(r) == 1:
		rw = i2c.Read
	default:
		return ErrUnsupported
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if int(addr) != b.addr {
		if err := b.c.ForceSlaveAddress(int(addr)); err != nil {
			return err
		}
		b.addr = int(addr)
	}
	if err := b.c.Do(rw, w[0], i2c.ByteData, &data); err != nil {
		return err
	}
	if rw == i2c.Read {
		r[0] = data[0]
	}
	return nil
}
