// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package measuringpoints

// CounterProxy is a bound handle to one counter, for call sites that
// update the same counter repeatedly and would rather not repeat its
// name at every call.
type CounterProxy struct{ name string }

// NewCounterProxy binds a CounterProxy to name, initializing it at zero.
func NewCounterProxy(name string) CounterProxy {
	CounterInit(name)
	return CounterProxy{name: name}
}

func (p CounterProxy) Increment(delta ...float64) { CounterIncrement(p.name, delta...) }
func (p CounterProxy) Decrement(delta ...float64) { CounterDecrement(p.name, delta...) }
func (p CounterProxy) Change(value float64)       { CounterChange(p.name, value) }

// GaugeProxy is a bound handle to one gauge.
type GaugeProxy struct{ name string }

// NewGaugeProxy binds a GaugeProxy to name, initializing it at zero.
func NewGaugeProxy(name string) GaugeProxy {
	GaugeInit(name)
	return GaugeProxy{name: name}
}

func (p GaugeProxy) Set(value float64) { GaugeSet(p.name, value) }
