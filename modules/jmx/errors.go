// SPDX-License-Identifier: GPL-3.0-or-later

package jmx

import "errors"

var (
	// errMalformedPattern means a declared object name pattern failed to parse.
	errMalformedPattern = errors.New("malformed object name pattern")
	// errDiscovery means the bean query failed for one pattern or for the whole snapshot.
	errDiscovery = errors.New("bean query failed")
	// errInvalidValue means an attribute value is not numeric or a requested
	// composite field is absent.
	errInvalidValue = errors.New("invalid attribute value")
	// errInconsistent means the bean query returned a shape that violates
	// its contract (both or neither of reading and error present).
	errInconsistent = errors.New("inconsistent bean query result")

	errNoMetrics = errors.New("no metrics collected")
)
