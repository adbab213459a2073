// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metric

import "github.com/daemondn/gohandystats/internal/event"

// ApplyAttribute folds an attribute-set event into attrs, keyed by event
// destination name. Attributes carry no Statistics: the registry stores
// them in their own map rather than alongside counters/gauges/timers.
func ApplyAttribute(attrs map[string]event.AttributeValue, ev event.Event) {
	if ev.Kind != event.KindAttributeSet {
		return
	}
	attrs[ev.Destination] = ev.Payload.Attribute
}

// AttributeJSON converts a typed AttributeValue to the native Go value
// its JSON encoding should render as.
func AttributeJSON(v event.AttributeValue) any {
	switch v.Type {
	case event.AttrBool:
		return v.Bool
	case event.AttrInt32:
		return v.Int32
	case event.AttrUint32:
		return v.Uint32
	case event.AttrInt64:
		return v.Int64
	case event.AttrUint64:
		return v.Uint64
	case event.AttrDouble:
		return v.Double
	case event.AttrString:
		return v.String
	default:
		return nil
	}
}
