// Copyright 2026 Ewout Prangsma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Author Ewout Prangsma
//

package bridge

import "github.com/pkg/errors"

var (
	// LineExportError is the cause of errors returned when a pin could
	// not be claimed or configured.
	LineExportError = errors.New("line export failed")
	IsLineExport    = isErrorFunc(LineExportError)

	// LineWriteError is the cause of errors returned when writing a
	// level to an output pin failed.
	LineWriteError = errors.New("line write failed")
	IsLineWrite    = isErrorFunc(LineWriteError)

	// LineReadError is the cause of errors returned when reading an
	// input pin failed.
	LineReadError = errors.New("line read failed")
	IsLineRead    = isErrorFunc(LineReadError)

	// LineRemovedError is the cause of errors returned when the
	// underlying line is no longer available.
	LineRemovedError = errors.New("line removed")
	IsLineRemoved    = isErrorFunc(LineRemovedError)

	maskAny = errors.WithStack
)

func isErrorFunc(typeOfError error) func(err error) bool {
	return func(err error) bool {
		return err == typeOfError || errors.Cause(err) == typeOfError
	}
}

func exportError(pinNumber int, err error) error {
	return errors.Wrapf(LineExportError, "pin %d: %s", pinNumber, err)
}

func writeError(pinNumber int, err error) error {
	lineWriteErrorsTotal.WithLabelValues(pinLabel(pinNumber)).Inc()
	return errors.Wrapf(LineWriteError, "pin %d: %s", pinNumber, err)
}

func readError(pinNumber int, err error) error {
	lineReadErrorsTotal.WithLabelValues(pinLabel(pinNumber)).Inc()
	return errors.Wrapf(LineReadError, "pin %d: %s", pinNumber, err)
}
