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
	"github.com/nuts-foundation/didholder/core"
	"github.com/prometheus/client_golang/prometheus"
)

var issuerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Subsystem: "openid4vci",
	Name:      "requests_total",
	Help:      "Number of requests sent to credential issuers, by operation and outcome.",
}, []string{"operation", "outcome"})

var configCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Subsystem: "openid4vci",
	Name:      "config_cache_lookups_total",
	Help:      "Number of issuer configuration cache lookups, by result (hit or miss).",
}, []string{"result"})

// Collectors returns the prometheus collectors of the issuer client.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{issuerRequests, configCacheLookups}
}

func observeRequest(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	issuerRequests.WithLabelValues(operation, outcome).Inc()
}
