// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package config loads and validates application configuration.
//
// Configuration is layered with koanf: struct defaults first, then an
// optional YAML file, then environment variables with the highest
// priority. Environment variables use the PRAEDICTUS_ prefix and map
// onto nested keys (PRAEDICTUS_SERVER_PORT -> server.port).
package config
