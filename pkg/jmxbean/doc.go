// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package jmxbean implements parsing and wildcard matching of JMX
ObjectName-style identifiers.

An identifier has the form

	domain:key1=value1,key2=value2

where the key properties form an ordered list, not a map. A property value
may be the wildcard token '*', in which case the identifier is a pattern
matching any concrete value in that position.

Matching is positional: a pattern and a concrete name match only if they
have the same keys in the same order. The concrete values bound to wildcard
positions, and the value of the 'type' property, are captured as tags.
*/
package jmxbean
