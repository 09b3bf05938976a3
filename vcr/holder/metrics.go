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

package holder

import (
	"github.com/nuts-foundation/didholder/core"
	"github.com/prometheus/client_golang/prometheus"
)

var storedCredentials = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: core.MetricsNamespace,
	Subsystem: "wallet",
	Name:      "credentials",
	Help:      "Number of credentials held by the wallet.",
})

// Collectors returns the prometheus collectors of the credential store.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{storedCredentials}
}
