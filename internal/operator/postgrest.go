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
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	restName              = "rest"
	restDefaultImage       = "postgrest/postgrest:v14.1"
	restDefaultPort        = int32(3000)
	restDefaultDBSchemas   = "public"
	restDefaultJWTExpiry   = "3600"
)

// DeployRest ensures the PostgREST deployment exists, wired to the
// authenticator database role and the shared JWT secret.
func DeployRest(ctx context.Context, c client.Client, namespace, stackName string, cfg *stackv1alpha1.RestConfig) error {
	schemas := restDefaultDBSchemas
	if cfg != nil && cfg.DBSchemas != nil {
		schemas = *cfg.DBSchemas
	}
	expiry := restDefaultJWTExpiry
	if cfg != nil && cfg.JWTExpiry != nil {
		expiry = *cfg.JWTExpiry
	}

	deployment := ServiceDeployment{
		Name:    restName,
		Image:   restDefaultImage,
		Port:    ptrInt32(restDefaultPort),
		Command: []string{"postgrest"},
		Env: []corev1.EnvVar{
			secretEnvFrom("PGRST_DB_URI", databaseURLsSecret, "authenticator-url"),
			{Name: "PGRST_DB_SCHEMAS", Value: schemas},
			{Name: "PGRST_DB_ANON_ROLE", Value: "anon"},
			secretEnvFrom("PGRST_JWT_SECRET", jwtSecretName, jwtSecretKey),
			{Name: "PGRST_DB_USE_LEGACY_GUCS", Value: "false"},
			secretEnvFrom("PGRST_APP_SETTINGS_JWT_SECRET", jwtSecretName, jwtSecretKey),
			{Name: "PGRST_APP_SETTINGS_JWT_EXP", Value: expiry},
		},
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, false)
}

// DeleteRest tears down the PostgREST deployment and its owned Service.
func DeleteRest(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, restName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, restName))
}
