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

import (
	"context"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// FieldManager is the field owner used for every server-side-apply patch
// this operator issues.
const FieldManager = "stack-operator"

// Apply server-side-applies obj with force, reclaiming any fields previously
// owned by another manager. obj's GVK must already be set (client-go scheme
// types carry it via TypeMeta, or it must be set explicitly on unstructured
// callers).
func Apply(ctx context.Context, c client.Client, obj client.Object, fieldManager string) error {
	u, err := toUnstructured(obj)
	if err != nil {
		return &InternalError{Op: "apply.toUnstructured", Err: err}
	}
	// managedFields must be cleared before an apply patch; the API server
	// rejects a conflicting ownership record otherwise.
	u.SetManagedFields(nil)
	if err := c.Patch(ctx, u, client.Apply, client.FieldOwner(fieldManager), client.ForceOwnership); err != nil {
		return &KubeAPIError{Op: "apply " + u.GetKind() + "/" + u.GetName(), Err: err}
	}
	return nil
}

// ApplyRaw server-side-applies a document expressed as a plain map, for
// CRDs this repository has no typed Go struct for (the CNPG Cluster, the
// Keycloak RealmImport).
func ApplyRaw(ctx context.Context, c client.Client, gvk schema.GroupVersionKind, namespace, name string, doc map[string]any) error {
	u := &unstructured.Unstructured{Object: doc}
	u.SetGroupVersionKind(gvk)
	u.SetNamespace(namespace)
	u.SetName(name)
	u.SetManagedFields(nil)
	if err := c.Patch(ctx, u, client.Apply, client.FieldOwner(FieldManager), client.ForceOwnership); err != nil {
		return &KubeAPIError{Op: "apply " + gvk.Kind + "/" + name, Err: err}
	}
	return nil
}

// ApplyRawHashed upserts doc using the hash-annotation idempotence pattern
// instead of SSA: it reads the existing object's hash annotation, and only
// deletes-and-recreates when the computed hash of doc differs. Reserved for
// the two resources where upstream operators react to the CR's presence and
// churn on field ownership would be disruptive: CNPG Cluster and Keycloak
// RealmImport.
func ApplyRawHashed(ctx context.Context, c client.Client, gvk schema.GroupVersionKind, namespace, name, hashAnnotation, hash string, doc map[string]any) error {
	existing := &unstructured.Unstructured{}
	existing.SetGroupVersionKind(gvk)
	err := c.Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, existing)
	switch {
	case apierrors.IsNotFound(err):
		return createHashed(ctx, c, gvk, namespace, name, hashAnnotation, hash, doc)
	case err != nil:
		return &KubeAPIError{Op: "get " + gvk.Kind + "/" + name, Err: err}
	}
	annotations := existing.GetAnnotations()
	if annotations[hashAnnotation] == hash {
		return nil
	}
	if err := c.Delete(ctx, existing); err != nil && !apierrors.IsNotFound(err) {
		return &KubeAPIError{Op: "delete stale " + gvk.Kind + "/" + name, Err: err}
	}
	return createHashed(ctx, c, gvk, namespace, name, hashAnnotation, hash, doc)
}

func createHashed(ctx context.Context, c client.Client, gvk schema.GroupVersionKind, namespace, name, hashAnnotation, hash string, doc map[string]any) error {
	u := &unstructured.Unstructured{Object: doc}
	u.SetGroupVersionKind(gvk)
	u.SetNamespace(namespace)
	u.SetName(name)
	annotations := u.GetAnnotations()
	if annotations == nil {
		annotations = map[string]string{}
	}
	annotations[hashAnnotation] = hash
	u.SetAnnotations(annotations)
	if err := c.Create(ctx, u, client.FieldOwner(FieldManager)); err != nil {
		return &KubeAPIError{Op: "create " + gvk.Kind + "/" + name, Err: err}
	}
	return nil
}

// DeleteIfExists deletes obj, treating a not-found response as success.
func DeleteIfExists(ctx context.Context, c client.Client, obj client.Object) error {
	if err := c.Delete(ctx, obj); err != nil && !apierrors.IsNotFound(err) {
		return &KubeAPIError{Op: "delete", Err: err}
	}
	return nil
}

func toUnstructured(obj client.Object) (*unstructured.Unstructured, error) {
	data, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}
	return &unstructured.Unstructured{Object: data}, nil
}
