// Package twi builds I2C register transactions out of the individual bus
// conditions exposed by bare two-wire controllers (start, address, byte
// transfer, stop), so drivers written against drivers.I2C can run on them.
package twi

import "errors"

// Ack is the acknowledge policy for a received byte.
type Ack bool

const (
	ACK  Ack = true  // more bytes follow
	NACK Ack = false // last byte of the transfer
)

var (
	ErrAddress = errors.New("twi: address does not fit in 7 bits")
	ErrEmpty   = errors.New("twi: empty transaction")
)

// Controller is a two-wire peripheral driven one bus condition at a time.
// Every call blocks until the condition has completed on the wire.
type Controller interface {
	// Start issues a START, or a repeated START when the bus is already held.
	Start() error
	AddressWrite(addr uint8) error
	AddressRead(addr uint8) error
	SendByte(b byte) error
	ReceiveByte(ack Ack) (byte, error)
	Stop() error
}

// Bus adapts a Controller to the Tx shape used by tinygo drivers.
type Bus struct {
	c Controller
}

func New(c Controller) *Bus {
	return &Bus{c: c}
}

// Tx writes w and then reads len(r) bytes from the device at addr. With both
// w and r set the read follows a repeated start. STOP is always issued once
// START succeeded, also on error.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return ErrAddress
	}
	if len(w) == 0 && len(r) == 0 {
		return ErrEmpty
	}
	if err := b.c.Start(); err != nil {
		return err
	}
	err := b.transfer(uint8(addr), w, r)
	if serr := b.c.Stop(); err == nil {
		err = serr
	}
	return err
}

func (b *Bus) transfer(addr uint8, w, r []byte) error {
	if len(w) > 0 {
		if err := b.c.AddressWrite(addr); err != nil {
			return err
		}
		for _, v := range w {
			if err := b.c.SendByte(v); err != nil {
				return err
			}
		}
		if len(r) == 0 {
			return nil
		}
		if err := b.c.Start(); err != nil {
			return err
		}
	}
	if err := b.c.AddressRead(addr); err != nil {
		return err
	}
	for i := range r {
		v, err := b.c.ReceiveByte(Ack(i < len(r)-1))
		if err != nil {
			return err
		}
		r[i] = v
	}
	return nil
}
