/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package openid4vci

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nuts-foundation/go-did/did"
)

const didWebPrefix = "did:web:"

// PortMapping assigns a default port to issuers whose host name contains Domain.
type PortMapping struct {
	Domain string
	Port   int
}

// PortTable is an ordered list of default issuer ports; the first matching entry wins.
type PortTable []PortMapping

// DefaultPortTable returns the port table of the known issuers, in the form accepted by ParsePortTable.
func DefaultPortTable() []string {
	return []string{"fido.moi.gov.tw=5000", "land.moi.gov.tw=5001", "zuvi.io=5002"}
}

// DefaultPorts returns DefaultPortTable in parsed form.
func DefaultPorts() PortTable {
	ports, _ := ParsePortTable(DefaultPortTable())
	return ports
}

// ParsePortTable parses entries in the form domain=port.
func ParsePortTable(entries []string) (PortTable, error) {
	var result PortTable
	for _, entry := range entries {
		domain, portStr, ok := strings.Cut(entry, "=")
		domain = strings.TrimSpace(domain)
		if !ok || domain == "" {
			return nil, fmt.Errorf("invalid issuer port entry (expected domain=port): %s", entry)
		}
		port, err := strconv.Atoi(strings.TrimSpace(portStr))
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port in issuer port entry: %s", entry)
		}
		result = append(result, PortMapping{Domain: domain, Port: port})
	}
	return result, nil
}

// Normalize adds the default port to an issuer domain without explicit port.
// Domains that already have a port, or match no entry, are returned as is.
func (p PortTable) Normalize(domain string) string {
	if domain == "" || strings.Contains(domain, ":") {
		return domain
	}
	for _, mapping := range p {
		if strings.Contains(domain, mapping.Domain) {
			return domain + ":" + strconv.Itoa(mapping.Port)
		}
	}
	return domain
}

// ExtractIssuerDomain derives the issuer domain (host[:port]) from a credential issuer identifier,
// which is either a did:web DID, an HTTP(S) URL or a plain domain.
func (p PortTable) ExtractIssuerDomain(issuer string) string {
	if issuer == "" {
		return ""
	}
	var domain string
	switch {
	case strings.HasPrefix(issuer, didWebPrefix):
		domain = didWebDomain(issuer)
	case strings.HasPrefix(issuer, "http"):
		parsed, err := url.Parse(issuer)
		if err != nil || parsed.Host == "" {
			domain = issuer
		} else {
			domain = parsed.Host
		}
	default:
		domain = issuer
	}
	return p.Normalize(domain)
}

// didWebDomain returns the host (and port) of a did:web DID. Path segments are dropped, a percent-encoded port is decoded.
func didWebDomain(issuer string) string {
	id := strings.TrimPrefix(issuer, didWebPrefix)
	if parsed, err := did.ParseDID(issuer); err == nil && parsed.Method == "web" {
		id = parsed.ID
	}
	host, _, _ := strings.Cut(id, ":")
	if decoded, err := url.PathUnescape(host); err == nil {
		return decoded
	}
	return strings.ReplaceAll(host, "%3A", ":")
}
