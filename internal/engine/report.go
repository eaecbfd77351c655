package engine

import "glpiexplorer/internal/domain"

// Report is a classified device together with its resolved topology
type Report struct {
	Device    domain.Device `json:"device" yaml:"device"`
	Uplink    *domain.Port  `json:"uplink,omitempty" yaml:"uplink,omitempty"`
	Links     []domain.Link `json:"internal_links,omitempty" yaml:"internal_links,omitempty"`
	Ambiguous []int         `json:"ambiguous_numbers,omitempty" yaml:"ambiguous_numbers,omitempty"`
}

// NewReport resolves the topology queries that apply to device's variant
func NewReport(device domain.Device) Report {
	report := Report{Device: device}

	if uplink, ok := domain.HubUplinkPort(device); ok {
		report.Uplink = &uplink
	}
	if device.IsPassive() {
		report.Links = domain.InternalLinks(device)
		report.Ambiguous = domain.AmbiguousLinks(device)
	}

	return report
}

// CheckLinks fails with domain.ErrAmbiguousLink when an IN port of a passive
// device has more than one OUT port candidate
func CheckLinks(device domain.Device) error {
	for _, p := range device.Ports {
		if _, _, err := domain.StrictInternalLink(device, p); err != nil {
			return err
		}
	}
	return nil
}
