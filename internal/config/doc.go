// Package config loads the measurement-generator YAML configuration.
//
// A configuration file has two sections:
//
//	generate:
//	  packages: [./examples/sensors]   # or a single string
//	  types: [Reading]                 # optional filter
//	  output: measurement_gen.go
//	  tag_key: influx
//	write:
//	  url: http://localhost:8086
//	  database: telemetry
//	  gzip: true
//	  timeout: 10s
//
// Command-line flags override values read from the file.
package config
