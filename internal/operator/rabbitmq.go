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

	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	rabbitmqName                 = "rabbitmq"
	rabbitmqManagementServiceName = "rabbitmq-management"
	rabbitmqDefaultImage          = "rabbitmq:3-management-alpine"
	rabbitmqDefaultPort           = int32(5672)
	rabbitmqDefaultManagementPort = int32(15672)
	rabbitmqAuthSecretName        = "rabbitmq-auth"
	rabbitmqURLsSecretName        = "rabbitmq-urls"
	rabbitmqPVCName               = "rabbitmq-data"
	rabbitmqDefaultSize            = "5Gi"
)

// DeployRabbitMQ ensures the credentials secret (generated unless an
// external secret is supplied), the urls secret, optional persistence, and
// the RabbitMQ deployment plus its dedicated management Service.
func DeployRabbitMQ(ctx context.Context, c client.Client, namespace, stackName string, cfg *stackv1alpha1.RabbitMqConfig) error {
	image := rabbitmqDefaultImage
	port := rabbitmqDefaultPort
	managementPort := rabbitmqDefaultManagementPort
	persistence := false
	size := rabbitmqDefaultSize
	var credentialsSecretName *string
	if cfg != nil {
		if cfg.Image != nil {
			image = *cfg.Image
		}
		if cfg.Port != nil {
			port = *cfg.Port
		}
		if cfg.ManagementPort != nil {
			managementPort = *cfg.ManagementPort
		}
		if cfg.Persistence != nil {
			persistence = *cfg.Persistence
		}
		if cfg.Size != nil {
			size = *cfg.Size
		}
		credentialsSecretName = cfg.CredentialsSecretName
	}

	secretName := rabbitmqAuthSecretName
	var username, password string
	if credentialsSecretName != nil {
		secretName = *credentialsSecretName
		secret, found, err := GetSecret(ctx, c, namespace, secretName)
		if err != nil {
			return err
		}
		if !found {
			return &CredentialMissingError{Secret: secretName, Key: "username"}
		}
		var ok bool
		username, ok = ReadSecretField(secret, "username")
		if !ok {
			return &CredentialMissingError{Secret: secretName, Key: "username"}
		}
		password, ok = ReadSecretField(secret, "password")
		if !ok {
			return &CredentialMissingError{Secret: secretName, Key: "password"}
		}
	} else {
		data, err := EnsureSecret(ctx, c, namespace, rabbitmqAuthSecretName, AppLabels(stackName, rabbitmqName), func() (map[string][]byte, error) {
			generated, err := RandomToken(32)
			if err != nil {
				return nil, err
			}
			return map[string][]byte{"username": []byte("stack"), "password": []byte(generated)}, nil
		})
		if err != nil {
			return err
		}
		username = string(data["username"])
		password = string(data["password"])
	}

	amqpURL := fmt.Sprintf("amqp://%s:%s@%s:%d/", username, password, rabbitmqName, port)
	managementURL := fmt.Sprintf("http://%s:%s@%s:%d/", username, password, rabbitmqManagementServiceName, managementPort)
	if _, err := EnsureSecret(ctx, c, namespace, rabbitmqURLsSecretName, AppLabels(stackName, rabbitmqName), func() (map[string][]byte, error) {
		return map[string][]byte{"amqp-url": []byte(amqpURL), "management-url": []byte(managementURL)}, nil
	}); err != nil {
		return err
	}

	var volumes []corev1.Volume
	var mounts []corev1.VolumeMount
	if persistence {
		volumes = []corev1.Volume{{
			Name: rabbitmqPVCName,
			VolumeSource: corev1.VolumeSource{
				PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: rabbitmqPVCName},
			},
		}}
	} else {
		volumes = []corev1.Volume{{Name: rabbitmqPVCName, VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}}}}
	}
	mounts = []corev1.VolumeMount{{Name: rabbitmqPVCName, MountPath: "/var/lib/rabbitmq"}}

	if persistence {
		if err := Apply(ctx, c, buildPVC(namespace, rabbitmqPVCName, stackName, rabbitmqName, size), FieldManager); err != nil {
			return err
		}
	}

	deployment := ServiceDeployment{
		Name:         rabbitmqName,
		Image:        image,
		Port:         ptrInt32(port),
		Volumes:      volumes,
		VolumeMounts: mounts,
		Env: []corev1.EnvVar{
			{Name: "RABBITMQ_DEFAULT_USER", Value: username},
			{Name: "RABBITMQ_DEFAULT_PASS", Value: password},
		},
	}
	if err := ApplyServiceDeployment(ctx, c, deployment, namespace, false); err != nil {
		return err
	}

	management := &corev1.Service{
		ObjectMeta: metaObjectMeta(namespace, rabbitmqManagementServiceName, AppLabels(stackName, rabbitmqName)),
		Spec: corev1.ServiceSpec{
			Selector: AppLabels(rabbitmqName, rabbitmqName),
			Ports:    []corev1.ServicePort{{Port: managementPort, TargetPort: intOrString(managementPort)}},
		},
	}
	return Apply(ctx, c, management, FieldManager)
}

// DeleteRabbitMQ tears down the RabbitMQ deployment, both Services, the PVC
// and the generated secrets.
func DeleteRabbitMQ(ctx context.Context, c client.Client, namespace string) error {
	for _, err := range []error{
		DeleteIfExists(ctx, c, deploymentStub(namespace, rabbitmqName)),
		DeleteIfExists(ctx, c, serviceStub(namespace, rabbitmqName)),
		DeleteIfExists(ctx, c, serviceStub(namespace, rabbitmqManagementServiceName)),
		DeleteIfExists(ctx, c, secretStub(namespace, rabbitmqURLsSecretName)),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
