/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package operator implements the resource-apply, secret-management, and
// component sub-reconciler logic shared by the StackApp controller.
package operator

import "fmt"

// DependencyMissingError reports that a component depends on another
// component that is not enabled in the spec (e.g. rest without db).
type DependencyMissingError struct {
	Component string
	Requires  string
	Hint      string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("%s requires %s: %s", e.Component, e.Requires, e.Hint)
}

// ValidationError reports a malformed or disallowed StackApp spec field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// KubeAPIError wraps an error returned by the Kubernetes API server so
// callers can distinguish transient cluster errors from spec problems.
type KubeAPIError struct {
	Op  string
	Err error
}

func (e *KubeAPIError) Error() string {
	return fmt.Sprintf("kube api error during %s: %v", e.Op, e.Err)
}

func (e *KubeAPIError) Unwrap() error { return e.Err }

// CredentialMissingError reports that a required field was absent from a
// secret the reconciler expected to read credentials from.
type CredentialMissingError struct {
	Secret string
	Key    string
}

func (e *CredentialMissingError) Error() string {
	return fmt.Sprintf("secret %q missing key %q", e.Secret, e.Key)
}

// InternalError wraps an unexpected failure not attributable to the spec or
// the cluster (e.g. a marshaling bug).
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
