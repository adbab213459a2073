// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = jsonschema.CompileString("gohandystats-config.json", configSchema)
	})
	return compiled, compileErr
}

// validate compiles the embedded schema once and checks instance against
// it, returning an error instead of aborting the process: callers need
// config errors to surface synchronously via a return value, never a
// crash.
func validate(instance json.RawMessage) error {
	sch, err := compiledSchema()
	if err != nil {
		// Only reachable if configSchema itself is malformed, a bug in
		// this package rather than in caller input.
		return fmt.Errorf("config: invalid embedded schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return fmt.Errorf("config: invalid json: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config: schema validation failed: %w", err)
	}

	return nil
}
