// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package event defines the compact, immutable message that flows from a
// measuring point, through the event queue, to the Core worker.
package event

import "github.com/daemondn/gohandystats/clock"

// DestinationKind identifies which metric state machine an Event targets.
type DestinationKind uint8

const (
	DestinationCounter DestinationKind = iota
	DestinationGauge
	DestinationTimer
	DestinationAttribute
)

func (k DestinationKind) String() string {
	switch k {
	case DestinationCounter:
		return "counter"
	case DestinationGauge:
		return "gauge"
	case DestinationTimer:
		return "timer"
	case DestinationAttribute:
		return "attribute"
	default:
		return "unknown"
	}
}

// Kind identifies the specific operation within a destination kind.
type Kind uint8

const (
	// Counter event kinds.
	KindInit Kind = iota
	KindIncrement
	KindDecrement
	KindChange

	// Gauge event kinds.
	KindSet

	// Timer event kinds.
	KindStart
	KindStop
	KindDiscard
	KindHeartbeat

	// Attribute event kinds.
	KindAttributeSet
)

// AttributeType tags which field of AttributeValue is populated.
type AttributeType uint8

const (
	AttrBool AttributeType = iota
	AttrInt32
	AttrUint32
	AttrInt64
	AttrUint64
	AttrDouble
	AttrString
)

// AttributeValue is a typed, opaque attribute payload. Exactly one of the
// fields is meaningful, selected by Type.
type AttributeValue struct {
	Type   AttributeType
	Bool   bool
	Int32  int32
	Uint32 uint32
	Int64  int64
	Uint64 uint64
	Double float64
	String string
}

// Payload is the tagged-union event payload. Counter/gauge/timer-set
// events use Number; timer
// start/stop/heartbeat/discard use InstanceID; attribute events use
// Attribute. Which field is valid is fully determined by
// (Destination, Kind).
type Payload struct {
	Number     float64
	InstanceID uint64
	Attribute  AttributeValue
}

// Event is immutable once constructed and cheap to copy by value, so a
// single queue node embeds it directly without indirection.
type Event struct {
	Destination     string
	DestinationKind DestinationKind
	Kind            Kind
	Payload         Payload
	Timestamp       clock.Timestamp
}

// NumberPayload builds an Event payload carrying a single float64 sample
// (counter deltas, gauge samples, timer durations via Set).
func NumberPayload(v float64) Payload {
	return Payload{Number: v}
}

// InstancePayload builds an Event payload carrying a timer instance id.
func InstancePayload(id uint64) Payload {
	return Payload{InstanceID: id}
}

// AttributePayload builds an Event payload carrying a typed attribute value.
func AttributePayload(v AttributeValue) Payload {
	return Payload{Attribute: v}
}
