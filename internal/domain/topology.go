package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrAmbiguousLink is returned by StrictInternalLink when several OUT ports
// share the number of the requested IN port
var ErrAmbiguousLink = errors.New("ambiguous internal link")

// Link pairs an IN port of a passive device with the OUT port it is wired to
type Link struct {
	In  Port  `json:"in" yaml:"in"`
	Out *Port `json:"out,omitempty" yaml:"out,omitempty"`
}

// HubUplinkPort returns the uplink of a hub: the numbered port with the
// highest number. The first such port wins on ties.
func HubUplinkPort(d Device) (Port, bool) {
	if !d.IsHub() {
		return Port{}, false
	}
	return highestNumberedPort(d.Ports)
}

func highestNumberedPort(ports []Port) (Port, bool) {
	var (
		best    Port
		highest int
		found   bool
	)
	for _, p := range ports {
		n, ok := p.Num()
		if !ok {
			continue
		}
		if !found || n > highest {
			best, highest, found = p, n, true
		}
	}
	return best, found
}

// PassiveInternalLink returns the OUT port paired with in on a patch panel or
// wall outlet. in must be an IN port with a number; anything else, or a port
// with no OUT counterpart, yields false. Duplicate OUT ports resolve to the
// first in port order; see AmbiguousLinks.
func PassiveInternalLink(d Device, in Port) (Port, bool) {
	if !d.IsPassive() {
		return Port{}, false
	}
	matches := outPortsFor(d.Ports, in)
	if len(matches) == 0 {
		return Port{}, false
	}
	return matches[0], true
}

// StrictInternalLink behaves like PassiveInternalLink but reports
// ErrAmbiguousLink instead of picking the first of several OUT ports
func StrictInternalLink(d Device, in Port) (Port, bool, error) {
	if !d.IsPassive() {
		return Port{}, false, nil
	}
	matches := outPortsFor(d.Ports, in)
	switch len(matches) {
	case 0:
		return Port{}, false, nil
	case 1:
		return matches[0], true, nil
	}
	n, _ := in.Num()
	return Port{}, false, fmt.Errorf("%w: %d OUT ports numbered %d on %s", ErrAmbiguousLink, len(matches), n, d.Name)
}

func outPortsFor(ports []Port, in Port) []Port {
	if !in.IsIn() {
		return nil
	}
	n, ok := in.Num()
	if !ok {
		return nil
	}
	var out []Port
	for _, p := range ports {
		if m, ok := p.Num(); ok && m == n && p.IsOut() {
			out = append(out, p)
		}
	}
	return out
}

// InternalLinks resolves every IN port of a passive device, in port order
func InternalLinks(d Device) []Link {
	if !d.IsPassive() {
		return nil
	}
	links := make([]Link, 0)
	for _, p := range d.Ports {
		if !p.IsIn() {
			continue
		}
		link := Link{In: p}
		if out, ok := PassiveInternalLink(d, p); ok {
			link.Out = &out
		}
		links = append(links, link)
	}
	return links
}

// AmbiguousLinks lists, in ascending order, the port numbers that more than
// one OUT port of a passive device claims
func AmbiguousLinks(d Device) []int {
	if !d.IsPassive() {
		return nil
	}
	counts := make(map[int]int)
	for _, p := range d.Ports {
		if n, ok := p.Num(); ok && p.IsOut() {
			counts[n]++
		}
	}
	var dup []int
	for n, c := range counts {
		if c > 1 {
			dup = append(dup, n)
		}
	}
	sort.Ints(dup)
	return dup
}
