package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/shlex"
	"github.com/platinasystems/log"

	"github.com/ajanata/rtc-drivers/mcp7940"
)

type session struct {
	dev     *mcp7940.Device
	cfg     mcp7940.Config
	out     io.Writer
	in      io.Reader
	verbose bool
	// inScript is set while a script runs; scripts do not nest.
	inScript bool
	dial     func(broker, clientID string) (publisher, error)
	now      func() time.Time
}

type command struct {
	usage string
	run   func(s *session, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"init":          {"init [-wait]", (*session).initDevice},
		"now":           {"now", (*session).showNow},
		"time":          {"time [current|down|up]", (*session).showTime},
		"set-time":      {"set-time HH:MM:SS", (*session).setTime},
		"set-date":      {"set-date DD/MM/YY", (*session).setDate},
		"set-now":       {"set-now", (*session).setNow},
		"weekday":       {"weekday [INDEX]", (*session).weekday},
		"status":        {"status", (*session).status},
		"trim":          {"trim [add|sub N]", (*session).trim},
		"osc":           {"osc on|off", (*session).osc},
		"battery":       {"battery on|off", (*session).battery},
		"out":           {"out on|off", (*session).output},
		"clear-pwrfail": {"clear-pwrfail", (*session).clearPowerFail},
		"script":        {"script FILE|-", (*session).script},
		"publish":       {"publish -broker URL [-topic TOPIC] [-id CLIENTID]", (*session).publish},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:", usage)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, "\t"+commands[name].usage)
	}
}

func (s *session) exec(args []string) error {
	cmd, found := commands[args[0]]
	if !found {
		return fmt.Errorf("%s: unknown command", args[0])
	}
	if s.verbose {
		log.Print("debug", "mcp7940ctl: ", args)
	}
	if err := cmd.run(s, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func (s *session) initDevice(args []string) error {
	wait := false
	for _, a := range args {
		if a != "-wait" {
			return fmt.Errorf("%s: unexpected", a)
		}
		wait = true
	}
	if err := s.dev.Configure(s.cfg); err != nil {
		return err
	}
	if wait {
		return s.dev.WaitOscillator()
	}
	return nil
}

func (s *session) showNow(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	t, err := s.dev.Now()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, t.Format(time.RFC3339))
	return nil
}

func (s *session) showTime(args []string) error {
	set := mcp7940.CurrentTime
	switch len(args) {
	case 0:
	case 1:
		var err error
		if set, err = parseRegisterSet(args[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	ts, err := s.dev.ReadTimestamp(set)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, formatTimestamp(ts))
	return nil
}

func (s *session) setTime(args []string) error {
	if len(args) != 1 {
		return errors.New("expected HH:MM:SS")
	}
	t, err := parseTime(args[0])
	if err != nil {
		return err
	}
	return s.dev.SetTime(t)
}

func (s *session) setDate(args []string) error {
	if len(args) != 1 {
		return errors.New("expected DD/MM/YY")
	}
	d, err := parseDate(args[0])
	if err != nil {
		return err
	}
	return s.dev.SetDate(d)
}

func (s *session) setNow(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return s.dev.Set(now().UTC())
}

func (s *session) weekday(args []string) error {
	switch len(args) {
	case 0:
		v, err := s.dev.Weekday(mcp7940.CurrentTime)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%d %s\n", v, mcp7940.WeekdayString(v))
		return nil
	case 1:
		var idx int
		if _, err := fmt.Sscan(args[0], &idx); err != nil || idx < 0 || idx > 255 {
			return fmt.Errorf("%s: invalid weekday index", args[0])
		}
		return s.dev.SetWeekday(uint8(idx))
	}
	return fmt.Errorf("%v: unexpected", args[1:])
}

func (s *session) status(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	st, err := s.dev.Status()
	if err != nil {
		return err
	}
	leap, err := s.dev.LeapYear()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "status: %s\nleap year: %t\n", st, leap)
	return nil
}

func (s *session) trim(args []string) error {
	switch len(args) {
	case 0:
		t, err := s.dev.Trim()
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, formatTrim(t))
		return nil
	case 2:
		t, err := parseTrim(args[0], args[1])
		if err != nil {
			return err
		}
		return s.dev.SetTrim(t)
	}
	return errors.New("expected add|sub N")
}

func (s *session) osc(args []string) error {
	m, err := onOffArg(args)
	if err != nil {
		return err
	}
	return s.dev.SetOscillator(m)
}

func (s *session) battery(args []string) error {
	m, err := onOffArg(args)
	if err != nil {
		return err
	}
	return s.dev.SetBatteryBackup(m)
}

func (s *session) output(args []string) error {
	m, err := onOffArg(args)
	if err != nil {
		return err
	}
	return s.dev.SetOutput(m)
}

func (s *session) clearPowerFail(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	return s.dev.ClearPowerFail()
}

// script runs one command per line from a file, or stdin for "-". Lines are
// split like a shell would; '#' starts a comment.
func (s *session) script(args []string) error {
	if s.inScript {
		return errors.New("scripts do not nest")
	}
	if len(args) != 1 {
		return errors.New("expected FILE or -")
	}
	in := s.in
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	s.inScript = true
	defer func() { s.inScript = false }()

	scan := bufio.NewScanner(in)
	for n := 1; scan.Scan(); n++ {
		words, err := shlex.Split(scan.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if len(words) == 0 {
			continue
		}
		if err := s.exec(words); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scan.Err()
}

func onOffArg(args []string) (mcp7940.Mode, error) {
	if len(args) != 1 {
		return mcp7940.Disable, errors.New("expected on|off")
	}
	return parseMode(args[0])
}
