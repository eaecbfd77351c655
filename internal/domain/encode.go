package domain

import "encoding/json"

// deviceDoc is the encoded form of a Device
type deviceDoc struct {
	ID        int         `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	AssetType AssetType   `json:"asset_type" yaml:"asset_type"`
	Variant   Variant     `json:"variant" yaml:"variant"`
	Kind      *DeviceKind `json:"device_kind,omitempty" yaml:"device_kind,omitempty"`
	ShortName *string     `json:"short_name,omitempty" yaml:"short_name,omitempty"`
	Ports     []Port      `json:"ports" yaml:"ports"`
}

func (d Device) doc() deviceDoc {
	doc := deviceDoc{
		ID:        d.ID,
		Name:      d.Name,
		AssetType: d.AssetType,
		Variant:   d.Variant,
		Ports:     d.Ports,
	}
	if doc.Ports == nil {
		doc.Ports = []Port{}
	}
	if d.IsNetworkDevice() {
		kind, short := d.Kind, d.ShortName
		if kind == kindNotAssigned {
			kind = KindUnknown
		}
		doc.Kind, doc.ShortName = &kind, &short
	}
	return doc
}

// MarshalJSON implements json.Marshaler
func (d Device) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.doc())
}

// MarshalYAML implements yaml.Marshaler
func (d Device) MarshalYAML() (interface{}, error) {
	return d.doc(), nil
}
