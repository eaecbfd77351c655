package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedRecord is returned when a record lacks a required field
var ErrMalformedRecord = errors.New("malformed asset record")

// RawAssetRecord is an inventory item as returned by the GLPI API
type RawAssetRecord struct {
	ID        *int      `json:"id"`
	Name      *string   `json:"name"`
	AssetType AssetType `json:"itemtype"`
}

// NewRawAssetRecord builds a record with every field present
func NewRawAssetRecord(id int, name string, assetType AssetType) RawAssetRecord {
	return RawAssetRecord{ID: &id, Name: &name, AssetType: assetType}
}

// The separator after the prefix may be whitespace, dashes or underscores.
var namePrefix = regexp.MustCompile(`(?i)^(PP|SW|HB|WO)[\s\-_]*(.*)`)

// Naming-convention prefixes in fallback order
var kindPrefixes = []DeviceKind{KindPatchPanel, KindSwitch, KindHub, KindWallOutlet}

// Classify turns a raw inventory record into a typed device.
//
// Only a missing id or name is an error; a name that follows no known
// convention yields a generic variant.
func Classify(rec RawAssetRecord) (Device, error) {
	if rec.ID == nil {
		return Device{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	if rec.Name == nil || *rec.Name == "" {
		return Device{}, fmt.Errorf("%w: missing name (id %d)", ErrMalformedRecord, *rec.ID)
	}

	id, name := *rec.ID, *rec.Name
	upper := strings.ToUpper(name)

	switch rec.AssetType {
	case AssetTypeComputer:
		return newDevice(VariantComputer, id, name, rec.AssetType), nil
	case AssetTypeCable:
		return newDevice(VariantCable, id, name, rec.AssetType), nil
	case AssetTypeNetworkEquipment:
		if strings.HasPrefix(upper, string(KindSwitch)) {
			return newNetworkDevice(VariantSwitch, id, name, rec.AssetType), nil
		}
		if strings.HasPrefix(upper, string(KindHub)) {
			return newNetworkDevice(VariantHub, id, name, rec.AssetType), nil
		}
	case AssetTypePassiveDevice:
		if strings.HasPrefix(upper, string(KindPatchPanel)) {
			return newNetworkDevice(VariantPatchPanel, id, name, rec.AssetType), nil
		}
		if strings.HasPrefix(upper, string(KindWallOutlet)) {
			return newNetworkDevice(VariantWallOutlet, id, name, rec.AssetType), nil
		}
	}

	for _, prefix := range kindPrefixes {
		if strings.HasPrefix(upper, string(prefix)) {
			return newNetworkDevice(VariantNetworkDevice, id, name, rec.AssetType), nil
		}
	}

	// Network assets outside the convention stay in the family with an
	// UNKNOWN kind so callers can still tell them apart from plain assets.
	if rec.AssetType == AssetTypeNetworkEquipment || rec.AssetType == AssetTypePassiveDevice {
		return newNetworkDevice(VariantNetworkDevice, id, name, rec.AssetType), nil
	}

	return newDevice(VariantBase, id, name, rec.AssetType), nil
}

func newNetworkDevice(variant Variant, id int, name string, assetType AssetType) Device {
	d := newDevice(variant, id, name, assetType)
	d.Kind, d.ShortName = ParseDeviceName(name)
	return d
}

// ParseDeviceName splits a conventional device name into its kind prefix and
// short name: "SW-CORE-01" gives (SW, "CORE-01") and "WO Bureau 204" gives
// (WO, "Bureau 204"). Names outside the convention give
// (UNKNOWN, name).
func ParseDeviceName(name string) (DeviceKind, string) {
	m := namePrefix.FindStringSubmatch(name)
	if m == nil {
		// The prefix checks in Classify use the same case folding as the
		// pattern, so a prefix-dispatched name always lands above.
		return KindUnknown, name
	}
	return DeviceKind(strings.ToUpper(m[1])), strings.TrimSpace(m[2])
}
