// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package measuringpoints

import (
	"strconv"
	"strings"
)

// Name joins parts with '.', the metric-name separator every other
// package in this module assumes when matching glob patterns. It exists
// so call sites build dotted names without hand-formatting a
// strings.Join at every call site:
//
//	measuringpoints.Name("requests", endpoint, "latency")
func Name(parts ...string) string {
	return strings.Join(parts, ".")
}

// NameIndexed is Name with a trailing integer component, the common case
// of naming one metric per worker/shard/connection index.
func NameIndexed(prefix string, index int) string {
	var b strings.Builder
	b.Grow(len(prefix) + 12)
	b.WriteString(prefix)
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(index))
	return b.String()
}
