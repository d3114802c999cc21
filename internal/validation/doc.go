// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package validation validates decoded request bodies with
go-playground/validator v10.

A single validator instance is shared process-wide; it caches struct
metadata after the first use. Field names in errors come from json tags,
so a failure on LoginRequest.Username is reported as "username".

Custom tags:

  - notblank: the string contains at least one non-whitespace character

Usage:

	type LoginRequest struct {
	    Username string `json:"username" validate:"required,notblank,max=256"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // 400 with apiErr.Code ("VALIDATION_FAILED") and apiErr.Message
	}
*/
package validation
