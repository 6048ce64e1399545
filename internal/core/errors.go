// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"fmt"
)

// errNoAnnotation marks an analyze call that received no annotated text.
// The analyzer returns an empty report; this error only reaches logs.
var errNoAnnotation = errors.New("no annotated text supplied, returning no findings")

func errDetectorPanic(name string, cause interface{}) error {
	return fmt.Errorf("detective %s panicked: %v", name, cause)
}
