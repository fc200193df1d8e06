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

package manifest

import (
	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
	"github.com/stack-cli/stack-operator/internal/operator"
)

// Validate checks the structural invariants the reconciler assumes already
// hold by the time a StackApp spec reaches it: a web service with a port,
// and extra service names that don't collide with a reserved component name.
func Validate(app *stackv1alpha1.StackApp) error {
	if app.Spec.Services.Web.Image == "" {
		return &operator.ValidationError{Field: "spec.services.web.image", Reason: "required"}
	}
	if app.Spec.Services.Web.Port == 0 {
		return &operator.ValidationError{Field: "spec.services.web.port", Reason: "required"}
	}
	for name := range app.Spec.Services.Extra {
		if stackv1alpha1.ReservedServiceNames[name] {
			return &operator.ValidationError{Field: "spec.services.extra." + name, Reason: "collides with a reserved component name"}
		}
	}
	return nil
}
