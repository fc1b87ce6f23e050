//go:build linux

package smbus

import (
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/platinasystems/i2c"
)

type fakeConn struct {
	regs   [256]uint8
	forced []int
	closed bool
}

func (f *fakeConn) ForceSlaveAddress(addr int) error {
	f.forced = append(f.forced, addr)
	return nil
}

func (f *fakeConn) Do(rw i2c.RW, reg uint8, size i2c.SMBusSize, data *i2c.SMBusData) error {
	if rw == i2c.Write {
		f.regs[reg] = data[0]
	} else {
		data[0] = f.regs[reg]
	}
	return nil
}

func TestRegisterAccess(t *testing.T) {
	c := qt.New(t)
	fc := &fakeConn{}
	b := &Bus{c: fc, close: func() { fc.closed = true }, addr: -1}

	c.Assert(b.Tx(0x6F, []byte{0x07, 0x43}, nil), qt.IsNil)
	c.Assert(fc.regs[0x07], qt.Equals, uint8(0x43))

	r := make([]byte, 1)
	c.Assert(b.Tx(0x6F, []byte{0x07}, r), qt.IsNil)
	c.Assert(r[0], qt.Equals, byte(0x43))

	// the slave address is only set when it changes
	c.Assert(fc.forced, qt.DeepEquals, []int{0x6F})
	c.Assert(b.Tx(0x50, []byte{0x00, 0x01}, nil), qt.IsNil)
	c.Assert(fc.forced, qt.DeepEquals, []int{0x6F, 0x50})

	b.Close()
	c.Assert(fc.closed, qt.IsTrue)
}

func TestUnsupportedShapes(t *testing.T) {
	c := qt.New(t)
	b := &Bus{c: &fakeConn{}, addr: -1}
	c.Assert(b.Tx(0x6F, []byte{0x00, 0x01, 0x02}, nil), qt.Equals, ErrUnsupported)
	c.Assert(b.Tx(0x6F, []byte{0x00}, make([]byte, 7)), qt.Equals, ErrUnsupported)
	c.Assert(b.Tx(0x6F, nil, make([]byte, 1)), qt.Equals, ErrUnsupported)
}

func TestConcurrentTxKeepAddressAndTransferTogether(t *testing.T) {
	c := qt.New(t)
	fc := &fakeConn{}
	b := &Bus{c: fc, addr: -1}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr := uint16(0x50 + i%2)
			if err := b.Tx(addr, []byte{uint8(i), uint8(i)}, nil); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	for i := 0; i < 16; i++ {
		c.Assert(fc.regs[i], qt.Equals, uint8(i))
	}
	// every change of address is forced exactly once
	for i := 1; i < len(fc.forced); i++ {
		c.Assert(fc.forced[i], qt.Not(qt.Equals), fc.forced[i-1])
	}
}
