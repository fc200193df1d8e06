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

	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	seleniumName        = "selenium"
	seleniumDefaultImage = "selenium/standalone-chrome"
	seleniumDefaultPort  = int32(4444)
	seleniumDefaultVNCPort = int32(7900)
	seleniumDefaultShmSize = "2Gi"
)

// DeploySelenium ensures the Selenium standalone-browser deployment and its
// dual-port (webdriver + vnc) Service exist.
func DeploySelenium(ctx context.Context, c client.Client, namespace, stackName string, cfg *stackv1alpha1.SeleniumConfig) error {
	image := seleniumDefaultImage
	port := seleniumDefaultPort
	vncPort := seleniumDefaultVNCPort
	shmSize := seleniumDefaultShmSize
	allowFromAnywhere := false
	if cfg != nil {
		if cfg.Image != nil {
			image = *cfg.Image
		}
		if cfg.Port != nil {
			port = *cfg.Port
		}
		if cfg.VNCPort != nil {
			vncPort = *cfg.VNCPort
		}
		if cfg.ShmSize != nil {
			shmSize = *cfg.ShmSize
		}
		allowFromAnywhere = cfg.ExposeWebdriverPort != nil || cfg.ExposeVNCPort != nil
	}

	deployment := ServiceDeployment{
		Name:  seleniumName,
		Image: image,
		Volumes: []corev1.Volume{{
			Name: "dshm",
			VolumeSource: corev1.VolumeSource{
				EmptyDir: &corev1.EmptyDirVolumeSource{
					Medium:    corev1.StorageMediumMemory,
					SizeLimit: parseQuantity(shmSize),
				},
			},
		}},
		VolumeMounts: []corev1.VolumeMount{{Name: "dshm", MountPath: "/dev/shm"}},
	}
	if err := Apply(ctx, c, BuildDeployment(deployment, namespace), FieldManager); err != nil {
		return err
	}

	service := &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, "webdriver", AppLabels(stackName, seleniumName)),
		Spec: corev1.ServiceSpec{
			Selector: AppLabels(seleniumName, seleniumName),
			Ports: []corev1.ServicePort{
				{Name: "webdriver", Port: port, TargetPort: intOrString(port)},
				{Name: "vnc", Port: vncPort, TargetPort: intOrString(vncPort)},
			},
		},
	}
	if err := Apply(ctx, c, service, FieldManager); err != nil {
		return err
	}
	return DefaultDeny(ctx, c, seleniumName, namespace, allowFromAnywhere)
}

// DeleteSelenium tears down the Selenium deployment and its Service.
func DeleteSelenium(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, seleniumName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, "webdriver"))
}

func parseQuantity(s string) *resource.Quantity {
	q := resource.MustParse(s)
	return &q
}
