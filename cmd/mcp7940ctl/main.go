// mcp7940ctl reads and programs an MCP7940 real-time clock attached to a
// Linux I2C adapter.
//
//	mcp7940ctl [-bus N] [-addr HEX] [-v] COMMAND [ARGS]...
//
// Run without a command for the list of commands.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
	"tinygo.org/x/drivers"

	"github.com/ajanata/rtc-drivers/mcp7940"
)

const usage = "mcp7940ctl [-bus N] [-addr HEX] [-clock crystal|external] " +
	"[-battery on|off] [-mfp output|square|alarm] [-sqw HZ] [-alarm 0|1|both] " +
	"[-coarse on|off] [-v] COMMAND [ARGS]..."

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mcp7940ctl:", err)
		log.Print("err", "mcp7940ctl: ", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	s, args, closeBus, err := setup(args)
	if err != nil {
		return err
	}
	if s == nil {
		printUsage(os.Stdout)
		return nil
	}
	defer closeBus()
	return s.exec(args)
}

// openBus is replaced in tests.
var openBus = openAdapter

// setup parses the global options and opens the bus. It returns a nil session
// when no command is given.
func setup(args []string) (*session, []string, func(), error) {
	flag, args := flags.New(args, "-v")
	parm, args := parms.New(args, "-bus", "-addr", "-clock", "-battery",
		"-mfp", "-sqw", "-alarm", "-coarse")

	cfg, err := configFromParms(parm.ByName)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(args) == 0 {
		return nil, nil, nil, nil
	}

	busNum := 1
	if s := parm.ByName["-bus"]; len(s) > 0 {
		if _, err := fmt.Sscan(s, &busNum); err != nil {
			return nil, nil, nil, fmt.Errorf("%s: invalid bus: %w", s, err)
		}
	}
	bus, closeBus, err := openBus(busNum)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("i2c-%d: %w", busNum, err)
	}

	s := newSession(bus, cfg, os.Stdout, os.Stdin)
	s.verbose = flag.ByName["-v"]
	return s, args, closeBus, nil
}

func newSession(bus drivers.I2C, cfg mcp7940.Config, out io.Writer, in io.Reader) *session {
	dev := mcp7940.New(bus)
	dev.SetConfig(cfg)
	return &session{
		dev:  &dev,
		cfg:  cfg,
		out:  out,
		in:   in,
		dial: dialMQTT,
	}
}
