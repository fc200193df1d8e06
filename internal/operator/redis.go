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
	redisName              = "redis"
	redisDefaultImage       = "redis:7-alpine"
	redisDefaultPort        = int32(6379)
	redisPasswordSecretName = "redis-auth"
	redisURLsSecretName     = "redis-urls"
	redisPVCName            = "redis-data"
	redisDefaultSize        = "1Gi"
)

// DeployRedis ensures the password secret (generated unless externally
// supplied), the urls secret, optional persistence, and the Redis
// deployment with requirepass wired through the container command.
func DeployRedis(ctx context.Context, c client.Client, namespace, stackName string, cfg *stackv1alpha1.RedisConfig) error {
	image := redisDefaultImage
	port := redisDefaultPort
	persistence := false
	size := redisDefaultSize
	var passwordSecretName *string
	if cfg != nil {
		if cfg.Image != nil {
			image = *cfg.Image
		}
		if cfg.Port != nil {
			port = *cfg.Port
		}
		if cfg.Persistence != nil {
			persistence = *cfg.Persistence
		}
		if cfg.Size != nil {
			size = *cfg.Size
		}
		passwordSecretName = cfg.PasswordSecretName
	}

	secretName := redisPasswordSecretName
	var password string
	if passwordSecretName != nil {
		secretName = *passwordSecretName
		secret, found, err := GetSecret(ctx, c, namespace, secretName)
		if err != nil {
			return err
		}
		if !found {
			return &CredentialMissingError{Secret: secretName, Key: "password"}
		}
		var ok bool
		password, ok = ReadSecretField(secret, "password")
		if !ok {
			return &CredentialMissingError{Secret: secretName, Key: "password"}
		}
	} else {
		data, err := EnsureSecret(ctx, c, namespace, redisPasswordSecretName, AppLabels(stackName, redisName), func() (map[string][]byte, error) {
			generated, err := RandomToken(32)
			if err != nil {
				return nil, err
			}
			return map[string][]byte{"password": []byte(generated)}, nil
		})
		if err != nil {
			return err
		}
		password = string(data["password"])
	}

	redisURL := fmt.Sprintf("redis://:%s@%s:%d", password, redisName, port)
	if _, err := EnsureSecret(ctx, c, namespace, redisURLsSecretName, AppLabels(stackName, redisName), func() (map[string][]byte, error) {
		return map[string][]byte{"redis-url": []byte(redisURL)}, nil
	}); err != nil {
		return err
	}

	appendOnly := "no"
	var volumes []corev1.Volume
	if persistence {
		appendOnly = "yes"
		if err := Apply(ctx, c, buildPVC(namespace, redisPVCName, stackName, redisName, size), FieldManager); err != nil {
			return err
		}
		volumes = []corev1.Volume{{
			Name: redisPVCName,
			VolumeSource: corev1.VolumeSource{
				PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: redisPVCName},
			},
		}}
	} else {
		volumes = []corev1.Volume{{Name: redisPVCName, VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}}}}
	}

	command := []string{"sh", "-c", fmt.Sprintf(
		`redis-server --port %d --appendonly %s --requirepass "$REDIS_PASSWORD"`, port, appendOnly)}

	deployment := ServiceDeployment{
		Name:         redisName,
		Image:        image,
		Port:         ptrInt32(port),
		Command:      command,
		Volumes:      volumes,
		VolumeMounts: []corev1.VolumeMount{{Name: redisPVCName, MountPath: "/data"}},
		Env: []corev1.EnvVar{
			{Name: "REDIS_PASSWORD", Value: password},
		},
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, false)
}

// DeleteRedis tears down the Redis deployment, Service, and urls secret.
func DeleteRedis(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, redisName)); err != nil {
		return err
	}
	if err := DeleteIfExists(ctx, c, serviceStub(namespace, redisName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, secretStub(namespace, redisURLsSecretName))
}
