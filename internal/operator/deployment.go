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
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// InitContainer describes one init container run before the main
// container, in order.
type InitContainer struct {
	Image   string
	Env     []corev1.EnvVar
	Command []string
}

// ServiceDeployment is the generic shape every component sub-reconciler
// renders into a Deployment (+ optional Service), mirroring the original's
// ServiceDeployment struct.
type ServiceDeployment struct {
	Name           string
	Image          string
	Replicas       int32
	Port           *int32
	Env            []corev1.EnvVar
	InitContainers []InitContainer
	Command        []string
	VolumeMounts   []corev1.VolumeMount
	Volumes        []corev1.Volume
}

// BuildDeployment renders spec into a Deployment object. Replicas defaults
// to 1 when unset.
func BuildDeployment(spec ServiceDeployment, namespace string) *appsv1.Deployment {
	replicas := spec.Replicas
	if replicas == 0 {
		replicas = 1
	}
	labels := AppLabels(spec.Name, spec.Name)

	var initContainers []corev1.Container
	for i, ic := range spec.InitContainers {
		initContainers = append(initContainers, corev1.Container{
			Name:         fmt.Sprintf("init-%d", i+1),
			Image:        ic.Image,
			Env:          ic.Env,
			Command:      ic.Command,
			VolumeMounts: spec.VolumeMounts,
		})
	}

	var ports []corev1.ContainerPort
	if spec.Port != nil {
		ports = []corev1.ContainerPort{{ContainerPort: *spec.Port}}
	}

	return &appsv1.Deployment{
		ObjectMeta: metaObjectMeta(namespace, spec.Name, labels),
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metaObjectMeta(namespace, spec.Name, labels),
				Spec: corev1.PodSpec{
					InitContainers: initContainers,
					Containers: []corev1.Container{
						{
							Name:         spec.Name,
							Image:        spec.Image,
							Env:          spec.Env,
							Command:      spec.Command,
							Ports:        ports,
							VolumeMounts: spec.VolumeMounts,
						},
					},
					Volumes: spec.Volumes,
				},
			},
		},
	}
}

// BuildService renders a ClusterIP Service exposing spec.Port under the
// component's standard selector.
func BuildService(spec ServiceDeployment, namespace string) *corev1.Service {
	labels := AppLabels(spec.Name, spec.Name)
	return &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, spec.Name, labels),
		Spec: corev1.ServiceSpec{
			Selector: labels,
			Ports: []corev1.ServicePort{{
				Port:       *spec.Port,
				TargetPort: intstr.FromInt32(*spec.Port),
			}},
		},
	}
}

// ApplyServiceDeployment applies the Deployment, the ClusterIP Service (when
// Port is set), and the default-deny NetworkPolicy for spec, in that order.
func ApplyServiceDeployment(ctx context.Context, c client.Client, spec ServiceDeployment, namespace string, allowFromAnywhere bool) error {
	if err := Apply(ctx, c, BuildDeployment(spec, namespace), FieldManager); err != nil {
		return err
	}
	if spec.Port != nil {
		if err := Apply(ctx, c, BuildService(spec, namespace), FieldManager); err != nil {
			return err
		}
	}
	return DefaultDeny(ctx, c, spec.Name, namespace, allowFromAnywhere)
}
