package glpi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"glpiexplorer/internal/domain"
)

// searchRange caps the number of items returned per asset type
const searchRange = "0-49"

// item is the subset of a GLPI asset the explorer reads
type item struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`
}

// port is the subset of a GLPI NetworkPort the explorer reads
type port struct {
	Name          *string `json:"name"`
	LogicalNumber int     `json:"logical_number"`
}

// SearchByName looks for an asset named name across the searchable asset
// types. An exact (case-insensitive) match anywhere wins over partial
// matches; otherwise the first partial match in asset type order is used.
func (c *Client) SearchByName(ctx context.Context, name string) (domain.RawAssetRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.RawAssetRecord{}, fmt.Errorf("search name is empty")
	}

	var first *domain.RawAssetRecord
	for _, assetType := range domain.SearchableAssetTypes {
		records, err := c.SearchAssetType(ctx, assetType, name)
		if err != nil {
			// Instances without an itemtype answer 400 or 404 for it
			var apiErr *APIError
			if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusNotFound) {
				c.logger.Warn("asset type not searchable", "itemtype", assetType, "status", apiErr.Status)
				continue
			}
			return domain.RawAssetRecord{}, err
		}
		for i := range records {
			rec := records[i]
			if rec.Name != nil && strings.EqualFold(*rec.Name, name) {
				c.logger.Debug("exact match", "itemtype", assetType, "name", *rec.Name)
				return rec, nil
			}
			if first == nil {
				first = &rec
			}
		}
	}

	if first == nil {
		return domain.RawAssetRecord{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return *first, nil
}

// SearchAssetType lists the assets of one type whose name contains name
func (c *Client) SearchAssetType(ctx context.Context, assetType domain.AssetType, name string) ([]domain.RawAssetRecord, error) {
	query := url.Values{}
	query.Set("searchText[name]", name)
	query.Set("range", searchRange)

	var items []item
	if err := c.getJSON(ctx, string(assetType), query, &items); err != nil {
		return nil, fmt.Errorf("search %s: %w", assetType, err)
	}

	return normalizeItems(assetType, items), nil
}

// normalizeItems maps wire items onto raw records tagged with their itemtype
func normalizeItems(assetType domain.AssetType, items []item) []domain.RawAssetRecord {
	records := make([]domain.RawAssetRecord, 0, len(items))
	for _, it := range items {
		records = append(records, domain.RawAssetRecord{
			ID:        it.ID,
			Name:      it.Name,
			AssetType: assetType,
		})
	}
	return records
}

// ListPorts returns the network ports of an asset in GLPI order
func (c *Client) ListPorts(ctx context.Context, assetType domain.AssetType, id int) ([]domain.Port, error) {
	endpoint := string(assetType) + "/" + strconv.Itoa(id) + "/NetworkPort"

	var raw json.RawMessage
	if err := c.getJSON(ctx, endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("list ports of %s %d: %w", assetType, id, err)
	}

	return decodePorts(raw)
}

// decodePorts parses a NetworkPort listing. GLPI answers an empty object
// rather than an empty list for assets without ports on some versions.
func decodePorts(raw json.RawMessage) ([]domain.Port, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "{}" || trimmed == "null" {
		return []domain.Port{}, nil
	}

	var wire []port
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decode ports: %w", err)
	}

	ports := make([]domain.Port, 0, len(wire))
	for _, p := range wire {
		name := ""
		if p.Name != nil {
			name = *p.Name
		}
		ports = append(ports, domain.ParsePortWithNumber(name, p.LogicalNumber))
	}
	return ports, nil
}
