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

package operator

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// AppLabels returns the {app, component} label pair the teacher's reconciler
// applies to every owned resource, generalized from a single CR name to a
// (stack, component) pair since one StackApp owns many named components.
func AppLabels(stack, component string) map[string]string {
	return map[string]string{
		"app":                          stack,
		"component":                    component,
		"app.kubernetes.io/part-of":    stack,
		"app.kubernetes.io/managed-by": "stack-operator",
	}
}

func metaObjectMeta(namespace, name string, labels map[string]string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Namespace: namespace,
		Name:      name,
		Labels:    labels,
	}
}
