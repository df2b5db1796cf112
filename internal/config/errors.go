// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "errors"

// Sentinels returned (wrapped) by Loader.Load for a rejected config file.
var (
	// ErrUnknownConfigField marks a YAML key that AppConfig does not declare.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrUnsupportedFormat marks a config path without a .yaml or .yml extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrTrailingDocument marks a config file holding more than one YAML document.
	ErrTrailingDocument = errors.New("config file contains multiple documents or trailing content")
)
