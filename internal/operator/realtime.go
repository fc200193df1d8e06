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

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	realtimeName        = "realtime"
	realtimeDefaultImage = "supabase/realtime:v2.47.2"
	realtimeDefaultPort  = int32(4000)
	realtimeSecretName   = "realtime-secrets"
	realtimeSecretKeyBase = "secret-key-base"
	realtimeDBEncKey     = "db-enc-key"
	realtimeDBEncKeyLen  = 16
	realtimeInitImage    = "postgres:16-alpine"
)

// DeployRealtime ensures the realtime-secrets secret (secret-key-base and a
// length-validated db-enc-key) and the Realtime Phoenix-channels deployment
// exist, with an init container that provisions the _realtime schema.
func DeployRealtime(ctx context.Context, c client.Client, namespace, stackName string) error {
	dbHost := ClusterName(stackName) + "-rw"
	secretData, err := EnsureSecret(ctx, c, namespace, realtimeSecretName, AppLabels(stackName, realtimeName), func() (map[string][]byte, error) {
		secretKeyBase, err := RandomToken(32)
		if err != nil {
			return nil, err
		}
		dbEncKey, err := RandomToken(realtimeDBEncKeyLen)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{
			realtimeSecretKeyBase: []byte(secretKeyBase),
			realtimeDBEncKey:      []byte(dbEncKey),
		}, nil
	})
	if err != nil {
		return err
	}
	if len(secretData[realtimeDBEncKey]) != realtimeDBEncKeyLen {
		return &ValidationError{Field: realtimeSecretName + "/" + realtimeDBEncKey, Reason: fmt.Sprintf("must be exactly %d bytes, got %d", realtimeDBEncKeyLen, len(secretData[realtimeDBEncKey]))}
	}

	deployment := ServiceDeployment{
		Name:  realtimeName,
		Image: realtimeDefaultImage,
		Port:  ptrInt32(realtimeDefaultPort),
		InitContainers: []InitContainer{{
			Image: realtimeInitImage,
			Env: []corev1.EnvVar{
				secretEnvFrom("PGPASSWORD", dbOwnerSecretName, "password"),
			},
			Command: []string{"sh", "-c", fmt.Sprintf("psql -h %s -U db-owner -d stack-app -c 'CREATE SCHEMA IF NOT EXISTS _realtime AUTHORIZATION \"db-owner\"'", dbHost)},
		}},
		Env: []corev1.EnvVar{
			{Name: "PORT", Value: fmt.Sprintf("%d", realtimeDefaultPort)},
			{Name: "DB_HOST", Value: dbHost},
			{Name: "DB_PORT", Value: "5432"},
			{Name: "DB_NAME", Value: "stack-app"},
			secretEnvFrom("DB_USER", dbOwnerSecretName, "username"),
			secretEnvFrom("DB_PASSWORD", dbOwnerSecretName, "password"),
			secretEnvFrom("DB_ENC_KEY", realtimeSecretName, realtimeDBEncKey),
			{Name: "DB_AFTER_CONNECT_QUERY", Value: "SET search_path TO _realtime"},
			secretEnvFrom("API_JWT_SECRET", jwtSecretName, jwtSecretKey),
			secretEnvFrom("SECRET_KEY_BASE", realtimeSecretName, realtimeSecretKeyBase),
			{Name: "ERL_AFLAGS", Value: "-proto_dist inet_tcp"},
			{Name: "RLIMIT_NOFILE", Value: "10000"},
			{Name: "DNS_NODES", Value: "''"},
			{Name: "APP_NAME", Value: "realtime"},
			{Name: "RUN_JANITOR", Value: "true"},
			{Name: "JANITOR_INTERVAL", Value: "60000"},
			{Name: "LOG_LEVEL", Value: "info"},
			{Name: "SEED_SELF_HOST", Value: "true"},
		},
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, false)
}

// DeleteRealtime tears down the Realtime deployment and its owned Service.
func DeleteRealtime(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, realtimeName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, realtimeName))
}
