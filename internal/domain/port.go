package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Direction is the signal direction of a port on a passive device
type Direction string

const (
	DirectionNone Direction = ""
	DirectionIn   Direction = "IN"
	DirectionOut  Direction = "OUT"
)

// Port represents a port on a device as named in the inventory
type Port struct {
	RawName   string    `json:"raw_name" yaml:"raw_name"`
	Number    *int      `json:"number,omitempty" yaml:"number,omitempty"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

var (
	directionToken = regexp.MustCompile(`(?i)(?:^|[\s\-_/.:])(IN|OUT)(?:$|[\s\-_/.:\d])`)
	digitRun       = regexp.MustCompile(`\d+`)
)

// NewPort creates a port with an explicit number
func NewPort(rawName string, number int, direction Direction) Port {
	n := number
	return Port{RawName: rawName, Number: &n, Direction: direction}
}

// ParsePort extracts the direction and number from a raw port name.
// "IN 3", "Out-12" and "port3/IN" are all recognized; the number is the last
// run of digits in the name.
func ParsePort(raw string) Port {
	port := Port{RawName: raw}

	if m := directionToken.FindStringSubmatch(raw); m != nil {
		port.Direction = Direction(strings.ToUpper(m[1]))
	}

	if runs := digitRun.FindAllString(raw, -1); len(runs) > 0 {
		if n, err := strconv.Atoi(runs[len(runs)-1]); err == nil {
			port.Number = &n
		}
	}

	return port
}

// ParsePortWithNumber parses raw like ParsePort but prefers a positive
// logical number supplied by the inventory over digits in the name
func ParsePortWithNumber(raw string, logical int) Port {
	port := ParsePort(raw)
	if logical > 0 {
		n := logical
		port.Number = &n
	}
	return port
}

// Num returns the port number and whether it is defined
func (p Port) Num() (int, bool) {
	if p.Number == nil {
		return 0, false
	}
	return *p.Number, true
}

// IsIn reports whether the port is an inbound port
func (p Port) IsIn() bool {
	return p.Direction == DirectionIn
}

// IsOut reports whether the port is an outbound port
func (p Port) IsOut() bool {
	return p.Direction == DirectionOut
}

// Equal compares two ports by value
func (p Port) Equal(o Port) bool {
	if p.RawName != o.RawName || p.Direction != o.Direction {
		return false
	}
	a, aok := p.Num()
	b, bok := o.Num()
	return aok == bok && a == b
}

func (p Port) String() string {
	return p.RawName
}
