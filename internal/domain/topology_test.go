package domain

import (
	"errors"
	"reflect"
	"testing"
)

func mustClassify(t *testing.T, id int, name string, assetType AssetType) Device {
	t.Helper()
	d, err := Classify(NewRawAssetRecord(id, name, assetType))
	if err != nil {
		t.Fatalf("classify %s: %v", name, err)
	}
	return d
}

func numbered(n int) Port {
	return NewPort("", n, DirectionNone)
}

func TestHubUplinkPort(t *testing.T) {
	hub := mustClassify(t, 10, "HB-lab", AssetTypeNetworkEquipment)

	t.Run("returns highest numbered port", func(t *testing.T) {
		d := hub.WithPorts([]Port{numbered(1), numbered(5), numbered(3)})
		p, ok := HubUplinkPort(d)
		if !ok {
			t.Fatal("expected uplink port")
		}
		if n, _ := p.Num(); n != 5 {
			t.Errorf("expected port 5, got %d", n)
		}
	})

	t.Run("first port wins on ties", func(t *testing.T) {
		d := hub.WithPorts([]Port{
			NewPort("a", 8, DirectionNone),
			NewPort("b", 8, DirectionNone),
			NewPort("c", 2, DirectionNone),
		})
		p, ok := HubUplinkPort(d)
		if !ok {
			t.Fatal("expected uplink port")
		}
		if p.RawName != "a" {
			t.Errorf("expected first max port 'a', got %q", p.RawName)
		}
	})

	t.Run("skips unnumbered ports", func(t *testing.T) {
		d := hub.WithPorts([]Port{{RawName: "console"}, numbered(2)})
		p, ok := HubUplinkPort(d)
		if !ok {
			t.Fatal("expected uplink port")
		}
		if n, _ := p.Num(); n != 2 {
			t.Errorf("expected port 2, got %d", n)
		}
	})

	t.Run("no numbered port", func(t *testing.T) {
		d := hub.WithPorts([]Port{{RawName: "console"}})
		if _, ok := HubUplinkPort(d); ok {
			t.Error("expected no uplink")
		}
	})

	t.Run("no ports", func(t *testing.T) {
		if _, ok := HubUplinkPort(hub); ok {
			t.Error("expected no uplink")
		}
	})

	t.Run("not a hub", func(t *testing.T) {
		sw := mustClassify(t, 11, "SW-1", AssetTypeNetworkEquipment).WithPorts([]Port{numbered(4)})
		if _, ok := HubUplinkPort(sw); ok {
			t.Error("expected switches to have no hub uplink")
		}
	})
}

func TestPassiveInternalLink(t *testing.T) {
	panel := mustClassify(t, 20, "PP-A", AssetTypePassiveDevice)

	t.Run("returns first OUT port with same number", func(t *testing.T) {
		d := panel.WithPorts([]Port{
			NewPort("OUT 2", 2, DirectionOut),
			NewPort("IN 2", 2, DirectionIn),
		})
		in := NewPort("IN 2", 2, DirectionIn)
		out, ok := PassiveInternalLink(d, in)
		if !ok {
			t.Fatal("expected link")
		}
		if !out.Equal(d.Ports[0]) {
			t.Errorf("expected %v, got %v", d.Ports[0], out)
		}
	})

	t.Run("duplicate OUT ports resolve to the first", func(t *testing.T) {
		d := panel.WithPorts([]Port{
			NewPort("IN 1", 1, DirectionIn),
			NewPort("OUT 1 a", 1, DirectionOut),
			NewPort("OUT 1 b", 1, DirectionOut),
		})
		out, ok := PassiveInternalLink(d, d.Ports[0])
		if !ok {
			t.Fatal("expected link")
		}
		if out.RawName != "OUT 1 a" {
			t.Errorf("expected first OUT port, got %q", out.RawName)
		}
	})

	t.Run("precondition failures return none", func(t *testing.T) {
		d := panel.WithPorts([]Port{NewPort("OUT 3", 3, DirectionOut)})
		cases := map[string]Port{
			"out direction":  NewPort("OUT 3", 3, DirectionOut),
			"no direction":   NewPort("3", 3, DirectionNone),
			"no number":      {RawName: "IN", Direction: DirectionIn},
			"no counterpart": NewPort("IN 4", 4, DirectionIn),
		}
		for desc, in := range cases {
			if _, ok := PassiveInternalLink(d, in); ok {
				t.Errorf("%s: expected no link", desc)
			}
		}
	})

	t.Run("wall outlet is passive", func(t *testing.T) {
		wo := mustClassify(t, 21, "WO Bureau 204", AssetTypePassiveDevice).WithPorts([]Port{
			NewPort("OUT 1", 1, DirectionOut),
		})
		if _, ok := PassiveInternalLink(wo, NewPort("IN 1", 1, DirectionIn)); !ok {
			t.Error("expected wall outlet link")
		}
	})

	t.Run("active device has no internal links", func(t *testing.T) {
		sw := mustClassify(t, 22, "SW-1", AssetTypeNetworkEquipment).WithPorts([]Port{
			NewPort("OUT 1", 1, DirectionOut),
		})
		if _, ok := PassiveInternalLink(sw, NewPort("IN 1", 1, DirectionIn)); ok {
			t.Error("expected no link on a switch")
		}
	})
}

func TestStrictInternalLink(t *testing.T) {
	panel := mustClassify(t, 30, "PP-B", AssetTypePassiveDevice).WithPorts([]Port{
		NewPort("IN 1", 1, DirectionIn),
		NewPort("OUT 1", 1, DirectionOut),
		NewPort("IN 2", 2, DirectionIn),
		NewPort("OUT 2", 2, DirectionOut),
		NewPort("OUT 2 spare", 2, DirectionOut),
	})

	t.Run("unique link", func(t *testing.T) {
		out, ok, err := StrictInternalLink(panel, panel.Ports[0])
		if err != nil || !ok {
			t.Fatalf("expected link, got ok=%v err=%v", ok, err)
		}
		if out.RawName != "OUT 1" {
			t.Errorf("expected OUT 1, got %q", out.RawName)
		}
	})

	t.Run("ambiguous link", func(t *testing.T) {
		_, ok, err := StrictInternalLink(panel, panel.Ports[2])
		if ok {
			t.Error("expected no link")
		}
		if !errors.Is(err, ErrAmbiguousLink) {
			t.Errorf("expected ErrAmbiguousLink, got %v", err)
		}
	})
}

func TestInternalLinksAndAmbiguity(t *testing.T) {
	panel := mustClassify(t, 40, "PP-C", AssetTypePassiveDevice).WithPorts([]Port{
		NewPort("IN 1", 1, DirectionIn),
		NewPort("IN 2", 2, DirectionIn),
		NewPort("OUT 1", 1, DirectionOut),
		NewPort("OUT 3", 3, DirectionOut),
		NewPort("OUT 3b", 3, DirectionOut),
	})

	links := InternalLinks(panel)
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Out == nil || links[0].Out.RawName != "OUT 1" {
		t.Errorf("expected IN 1 -> OUT 1, got %+v", links[0])
	}
	if links[1].Out != nil {
		t.Errorf("expected IN 2 unlinked, got %+v", links[1].Out)
	}

	if got := AmbiguousLinks(panel); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("AmbiguousLinks = %v, want [3]", got)
	}

	computer := mustClassify(t, 41, "PC", AssetTypeComputer)
	if InternalLinks(computer) != nil || AmbiguousLinks(computer) != nil {
		t.Error("expected no links on a computer")
	}
}
