// SPDX-License-Identifier: EPL-2.0

// Package config loads the podsplice YAML configuration, applies .env files
// and PODSPLICE_* environment overrides, and validates the result.
//
// Example configuration:
//
//	merge:
//	  strategy: concat
//	  silence_gap_ms: 250
//	  normalize: true
//	  policy: warn
//	  raw_pcm:
//	    sample_rate: 24000
//	    channels: 1
//	    bits_per_sample: 16
//	output:
//	  dir: ./episodes
//	logging:
//	  level: debug
//	  format: json
//	metrics:
//	  textfile: /var/lib/node_exporter/podsplice.prom
package config
