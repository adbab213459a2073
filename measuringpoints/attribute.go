// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package measuringpoints

import "github.com/daemondn/gohandystats/internal/event"

// AttributeSetBool records a boolean attribute value under name.
func AttributeSetBool(name string, v bool) {
	setAttribute(name, event.AttributeValue{Type: event.AttrBool, Bool: v})
}

// AttributeSetInt32 records an int32 attribute value under name.
func AttributeSetInt32(name string, v int32) {
	setAttribute(name, event.AttributeValue{Type: event.AttrInt32, Int32: v})
}

// AttributeSetUint32 records a uint32 attribute value under name.
func AttributeSetUint32(name string, v uint32) {
	setAttribute(name, event.AttributeValue{Type: event.AttrUint32, Uint32: v})
}

// AttributeSetInt64 records an int64 attribute value under name.
func AttributeSetInt64(name string, v int64) {
	setAttribute(name, event.AttributeValue{Type: event.AttrInt64, Int64: v})
}

// AttributeSetUint64 records a uint64 attribute value under name.
func AttributeSetUint64(name string, v uint64) {
	setAttribute(name, event.AttributeValue{Type: event.AttrUint64, Uint64: v})
}

// AttributeSetDouble records a float64 attribute value under name.
func AttributeSetDouble(name string, v float64) {
	setAttribute(name, event.AttributeValue{Type: event.AttrDouble, Double: v})
}

// AttributeSetString records a string attribute value under name.
func AttributeSetString(name string, v string) {
	setAttribute(name, event.AttributeValue{Type: event.AttrString, String: v})
}

func setAttribute(name string, v event.AttributeValue) {
	push(name, event.DestinationAttribute, event.KindAttributeSet, event.AttributePayload(v))
}
