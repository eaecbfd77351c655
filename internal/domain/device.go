package domain

// AssetType is the GLPI itemtype of an inventory record
type AssetType string

const (
	AssetTypeComputer         AssetType = "Computer"
	AssetTypeNetworkEquipment AssetType = "NetworkEquipment"
	AssetTypePassiveDevice    AssetType = "PassiveDevice"
	AssetTypeCable            AssetType = "Cable"
)

// SearchableAssetTypes lists the asset types searched for a device name, in
// lookup order
var SearchableAssetTypes = []AssetType{
	AssetTypeComputer,
	AssetTypeNetworkEquipment,
	AssetTypePassiveDevice,
	AssetTypeCable,
}

// DeviceKind is the naming-convention prefix of a network device
type DeviceKind string

const (
	KindSwitch      DeviceKind = "SW"
	KindHub         DeviceKind = "HB"
	KindPatchPanel  DeviceKind = "PP"
	KindWallOutlet  DeviceKind = "WO"
	KindUnknown     DeviceKind = "UNKNOWN"
	kindNotAssigned DeviceKind = ""
)

// Variant discriminates the device union
type Variant string

const (
	VariantBase          Variant = "BaseDevice"
	VariantComputer      Variant = "Computer"
	VariantCable         Variant = "Cable"
	VariantNetworkDevice Variant = "NetworkDevice"
	VariantSwitch        Variant = "Switch"
	VariantHub           Variant = "Hub"
	VariantPatchPanel    Variant = "PatchPanel"
	VariantWallOutlet    Variant = "WallOutlet"
)

// Device is a classified inventory asset.
//
// Kind and ShortName are only meaningful for the network device family
// (NetworkDevice, Switch, Hub, PatchPanel, WallOutlet); for every other
// variant Kind is empty and ShortName is unused. Encoded output carries
// device_kind and short_name together, and only for that family.
type Device struct {
	ID        int
	Name      string
	AssetType AssetType
	Variant   Variant
	Kind      DeviceKind
	ShortName string
	Ports     []Port
}

func newDevice(variant Variant, id int, name string, assetType AssetType) Device {
	return Device{
		ID:        id,
		Name:      name,
		AssetType: assetType,
		Variant:   variant,
		Ports:     []Port{},
	}
}

// IsNetworkDevice reports whether the device belongs to the network device family
func (d Device) IsNetworkDevice() bool {
	switch d.Variant {
	case VariantNetworkDevice, VariantSwitch, VariantHub, VariantPatchPanel, VariantWallOutlet:
		return true
	}
	return false
}

// IsPassive reports whether the device links IN ports to OUT ports internally
func (d Device) IsPassive() bool {
	return d.Variant == VariantPatchPanel || d.Variant == VariantWallOutlet
}

// IsHub reports whether the device is a hub
func (d Device) IsHub() bool {
	return d.Variant == VariantHub
}

// NetworkIdentity returns the kind and short name parsed from the device name.
// ok is false when the device carries no naming-convention identity.
func (d Device) NetworkIdentity() (kind DeviceKind, shortName string, ok bool) {
	if d.Kind == kindNotAssigned {
		return "", "", false
	}
	return d.Kind, d.ShortName, true
}

// WithPorts returns a copy of the device with ports attached
func (d Device) WithPorts(ports []Port) Device {
	d.Ports = append(make([]Port, 0, len(ports)), ports...)
	return d
}

// Equal compares two devices structurally
func (d Device) Equal(o Device) bool {
	if d.ID != o.ID || d.Name != o.Name || d.AssetType != o.AssetType ||
		d.Variant != o.Variant || d.Kind != o.Kind || d.ShortName != o.ShortName {
		return false
	}
	if len(d.Ports) != len(o.Ports) {
		return false
	}
	for i := range d.Ports {
		if !d.Ports[i].Equal(o.Ports[i]) {
			return false
		}
	}
	return true
}
