// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

// Package supervisor manages the process service tree using suture.
//
// The tree has two layers: a storage layer for the model store's
// background maintenance, and an API layer for the HTTP server. A
// crash in one layer restarts only that layer's services.
package supervisor
