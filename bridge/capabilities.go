package bridge

import "sort"

// Capability names an optional operation group a host may support.
// Core wallet operations are always present and have no capability name.
type Capability string

const (
	CapabilityDevice       Capability = "device"
	CapabilityStorage      Capability = "storage"
	CapabilityCloudStorage Capability = "cloud-storage"
	CapabilityCamera       Capability = "camera"
	CapabilityLocation     Capability = "location"
	CapabilityBiometric    Capability = "biometric"
	CapabilityClipboard    Capability = "clipboard"
	CapabilityDialogs      Capability = "dialogs"
	CapabilityButtons      Capability = "buttons"
	CapabilityAnalytics    Capability = "analytics"
)

// CapabilitySet is the set of optional capabilities negotiated with a
// host. The zero value is the empty set.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether the capability is present.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities in sorted order.
func (s CapabilitySet) List() []Capability {
	caps := make([]Capability, 0, len(s))
	for c := range s {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}
