// Copyright 2025 Poiesic Systems
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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidContact indicates a contact failed validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrEmptyName indicates the Name field is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidAge indicates the age is not a positive number.
	ErrInvalidAge = errors.New("age must be positive")

	// ErrEmptyDisability indicates the intellectual disability description is blank.
	ErrEmptyDisability = errors.New("intellectual disability cannot be empty")

	// ErrEmptyCID indicates the diagnostic code is blank.
	ErrEmptyCID = errors.New("diagnostic code cannot be empty")

	// ErrInvalidAssistanceLevel indicates an unknown AssistanceLevel value.
	ErrInvalidAssistanceLevel = errors.New("invalid assistance level")

	// ErrInvalidMedication indicates a medication entry failed validation.
	ErrInvalidMedication = errors.New("invalid medication")

	// ErrInvalidActivityType indicates an unknown ActivityType value.
	ErrInvalidActivityType = errors.New("invalid activity type")

	// ErrInvalidMediaKind indicates an unknown MediaKind value.
	ErrInvalidMediaKind = errors.New("invalid media kind")
)
