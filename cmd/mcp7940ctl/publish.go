package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"

	"github.com/ajanata/rtc-drivers/mcp7940"
)

const (
	defaultTopic   = "rtc/mcp7940"
	publishTimeout = 5 * time.Second
)

type publisher interface {
	Publish(topic string, payload []byte) error
	Close()
}

// report is the JSON document published for each register block.
type report struct {
	Block   string `json:"block"`
	Time    string `json:"time"`
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	// UTC is only set for the running clock; the power-fail blocks do not
	// store a year.
	UTC string `json:"utc,omitempty"`
}

type statusReport struct {
	Status    string `json:"status"`
	Running   bool   `json:"oscillator_running"`
	PowerFail bool   `json:"power_fail"`
	Battery   bool   `json:"battery_enabled"`
	LeapYear  bool   `json:"leap_year"`
}

// publish sends the running clock, the status flags and both power-fail
// time-stamps, retained, under TOPIC/{current,status,down,up}.
func (s *session) publish(args []string) error {
	parm, args := parms.New(args, "-broker", "-topic", "-id")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	broker := parm.ByName["-broker"]
	if len(broker) == 0 {
		return errors.New("missing -broker")
	}
	topic := strings.TrimSuffix(parm.ByName["-topic"], "/")
	if len(topic) == 0 {
		topic = defaultTopic
	}
	id := parm.ByName["-id"]
	if len(id) == 0 {
		host, _ := os.Hostname()
		id = "mcp7940ctl-" + host
	}

	msgs, err := s.collect()
	if err != nil {
		return err
	}

	p, err := s.dial(broker, id)
	if err != nil {
		return err
	}
	defer p.Close()
	for _, m := range msgs {
		if err := p.Publish(topic+"/"+m.sub, m.payload); err != nil {
			return err
		}
		if s.verbose {
			log.Print("debug", "mcp7940ctl: published ", topic+"/"+m.sub)
		}
	}
	return nil
}

type message struct {
	sub     string
	payload []byte
}

// collect reads everything to publish before a broker connection is made, so
// a bus failure does not leave a half published set.
func (s *session) collect() ([]message, error) {
	var msgs []message
	for _, set := range []mcp7940.RegisterSet{mcp7940.CurrentTime, mcp7940.PowerDownTime, mcp7940.PowerUpTime} {
		ts, err := s.dev.ReadTimestamp(set)
		if err != nil {
			return nil, err
		}
		r := report{
			Block:   set.String(),
			Time:    fmt.Sprintf("%02d:%02d:%02d", ts.Time.Hour, ts.Time.Minute, ts.Time.Second),
			Date:    fmt.Sprintf("%02d/%02d/%02d", ts.Date.Day, ts.Date.Month, ts.Date.Year),
			Weekday: mcp7940.WeekdayString(ts.Weekday),
		}
		if set == mcp7940.CurrentTime {
			r.UTC = ts.UTC().Format(time.RFC3339)
		}
		b, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, message{sub: subtopic(set), payload: b})
	}

	st, err := s.dev.Status()
	if err != nil {
		return nil, err
	}
	leap, err := s.dev.LeapYear()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(statusReport{
		Status:    st.String(),
		Running:   st.Has(mcp7940.OscillatorRunning),
		PowerFail: st.Has(mcp7940.PowerFail),
		Battery:   st.Has(mcp7940.BatteryEnabled),
		LeapYear:  leap,
	})
	if err != nil {
		return nil, err
	}
	return append(msgs, message{sub: "status", payload: b}), nil
}

func subtopic(set mcp7940.RegisterSet) string {
	switch set {
	case mcp7940.PowerDownTime:
		return "down"
	case mcp7940.PowerUpTime:
		return "up"
	}
	return "current"
}

type mqttPublisher struct {
	c mqtt.Client
}

func dialMQTT(broker, clientID string) (publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(publishTimeout)
	c := mqtt.NewClient(opts)
	tok := c.Connect()
	if !tok.WaitTimeout(publishTimeout) {
		return nil, fmt.Errorf("%s: connect timed out", broker)
	}
	if err := tok.Error(); err != nil {
		return nil, err
	}
	return &mqttPublisher{c: c}, nil
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	tok := p.c.Publish(topic, 1, true, payload)
	if !tok.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%s: publish timed out", topic)
	}
	return tok.Error()
}

func (p *mqttPublisher) Close() {
	p.c.Disconnect(250)
}
