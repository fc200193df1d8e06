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
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/intstr"
)

func ptrInt32(v int32) *int32 { return &v }

// secretEnvFrom builds an EnvVar sourced from a secret key, the shape every
// component sub-reconciler uses to wire database URLs and credentials into
// its containers without inlining secret values into the Deployment spec.
func secretEnvFrom(name, secretName, key string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: name,
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
				Key:                  key,
			},
		},
	}
}

// deploymentStub returns a minimal Deployment object sufficient to address
// an existing object for deletion (name/namespace only).
func deploymentStub(namespace, name string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metaObjectMeta(namespace, name, nil),
	}
}

// serviceStub returns a minimal Service object sufficient to address an
// existing object for deletion.
func serviceStub(namespace, name string) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, name, nil),
	}
}

// secretStub returns a minimal Secret object sufficient to address an
// existing object for deletion.
func secretStub(namespace, name string) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metaObjectMeta(namespace, name, nil),
	}
}

// intOrString converts a port number to the intstr form Service ports need.
func intOrString(port int32) intstr.IntOrString {
	return intstr.FromInt32(port)
}

// buildPVC renders a PersistentVolumeClaim of the given size for a
// component that opted into persistence.
func buildPVC(namespace, name, stackName, component, size string) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		ObjectMeta: metaObjectMeta(namespace, name, AppLabels(stackName, component)),
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: resource.MustParse(size),
				},
			},
		},
	}
}
