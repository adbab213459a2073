// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

// configSchema is the JSON-Schema gohandystats validates a configuration
// document against before decoding it: an embedded schema string
// compiled once and reused for every Parse call. Any key
// other than the fixed "enable"/"dump-interval"/"defaults"/"gauge"/
// "counter"/"timer" is treated as a metric-name glob pattern and must
// match the same per-metric overlay shape.
const configSchema = `{
	"type": "object",
	"description": "Configuration for gohandystats.",
	"properties": {
		"enable": {
			"description": "Master on/off switch. When false, all measuring points are no-ops and dumps are empty.",
			"type": "boolean"
		},
		"dump-interval": {
			"description": "Interval in milliseconds between automatic snapshot publications. 0 disables periodic publication.",
			"type": "integer",
			"minimum": 0
		},
		"defaults": { "$ref": "#/definitions/statsSection" },
		"gauge": { "$ref": "#/definitions/statsSection" },
		"counter": { "$ref": "#/definitions/statsSection" },
		"timer": { "$ref": "#/definitions/timerSection" }
	},
	"additionalProperties": { "$ref": "#/definitions/statsSection" },
	"definitions": {
		"statsSection": {
			"type": "object",
			"properties": {
				"moving-interval": {
					"description": "Sliding window, in milliseconds, over which moving aggregates are computed.",
					"type": "integer",
					"minimum": 0
				},
				"histogram-bins": {
					"description": "Maximum number of adaptive histogram bins.",
					"type": "integer",
					"minimum": 1
				},
				"stats": {
					"description": "Subset of aggregates to compute for metrics matching this section.",
					"type": "array",
					"items": {
						"enum": [
							"value", "min", "max", "count", "sum", "avg",
							"moving-count", "moving-sum", "moving-avg",
							"histogram", "quantile", "timestamp",
							"throughput", "frequency"
						]
					}
				}
			}
		},
		"timerSection": {
			"allOf": [
				{ "$ref": "#/definitions/statsSection" },
				{
					"type": "object",
					"properties": {
						"idle-timeout": {
							"description": "Milliseconds of heartbeat silence after which a running timer instance is discarded.",
							"type": "integer",
							"minimum": 0
						}
					}
				}
			]
		}
	}
}`
