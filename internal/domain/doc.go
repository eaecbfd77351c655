// Package domain defines the device model for the GLPI network explorer.
//
// This package turns raw inventory records into typed devices and answers
// topology questions about their ports. It has no I/O and no dependencies
// outside the standard library.
//
// # Classification
//
// Classify maps a RawAssetRecord to a Device. The GLPI itemtype selects the
// broad category; for network equipment and passive devices the name prefix
// (SW, HB, PP, WO) selects the variant, and the rest of the name becomes the
// device's short name ("SW-CORE-01" is the switch "CORE-01").
//
// Device is a closed union discriminated by Variant. Switch, Hub, PatchPanel
// and WallOutlet refine the generic NetworkDevice; PatchPanel and WallOutlet
// are passive devices.
//
// # Ports
//
// Port holds a raw port name with the number and IN/OUT direction parsed out
// of it. Ports are attached to a device after classification with WithPorts.
//
// # Topology
//
// HubUplinkPort selects a hub's uplink (its highest-numbered port).
// PassiveInternalLink pairs an IN port of a passive device with the OUT port
// of the same number. AmbiguousLinks and StrictInternalLink expose duplicate
// OUT numbering, which PassiveInternalLink resolves to the first port.
package domain
