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
	authName         = "auth"
	authDefaultImage = "supabase/gotrue:v2.185.0"
	authDefaultPort  = int32(9999)
	authInitImage    = "postgres:16-alpine"
	authAdminUser    = "supabase_auth_admin"

	// authAdminBootstrapPassword is the literal password the original
	// assigns supabase_auth_admin on creation. Kept intentional and named,
	// per Open Question #1 in DESIGN.md: a documented local-dev default,
	// not an oversight.
	authAdminBootstrapPassword = "testpassword"
)

// DeployAuth ensures the GoTrue deployment exists, wired to the database
// owner role via an init container that provisions supabase_auth_admin, the
// auth schema, and that role's default search_path.
func DeployAuth(ctx context.Context, c client.Client, namespace, stackName string, cfg *stackv1alpha1.SupabaseAuthConfig) error {
	if cfg == nil {
		return &DependencyMissingError{Component: authName, Requires: "components.auth", Hint: "auth config is required when the auth component is enabled"}
	}

	dbHost := ClusterName(stackName) + "-rw"
	dbName := "stack-app"
	adminDatabaseURL := fmt.Sprintf("postgres://%s:%s@%s:5432/%s?sslmode=disable", authAdminUser, authAdminBootstrapPassword, dbHost, dbName)

	bootstrapSQL := fmt.Sprintf(
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = '%[1]s') THEN CREATE USER %[1]s NOINHERIT CREATEROLE LOGIN NOREPLICATION PASSWORD '%[2]s'; END IF; END $$;`+
			`CREATE SCHEMA IF NOT EXISTS auth AUTHORIZATION %[1]s;`+
			`GRANT CREATE ON DATABASE "%[3]s" TO %[1]s;`+
			`ALTER USER %[1]s SET search_path = 'auth';`,
		authAdminUser, authAdminBootstrapPassword, dbName)

	deployment := ServiceDeployment{
		Name:  authName,
		Image: authDefaultImage,
		Port:  ptrInt32(authDefaultPort),
		InitContainers: []InitContainer{{
			Image: authInitImage,
			Env: []corev1.EnvVar{
				{Name: "PGHOST", Value: dbHost},
				{Name: "PGPORT", Value: "5432"},
				{Name: "PGDATABASE", Value: dbName},
				secretEnvFrom("PGUSER", dbOwnerSecretName, "username"),
				secretEnvFrom("PGPASSWORD", dbOwnerSecretName, "password"),
			},
			Command: []string{"/bin/sh", "-c", "psql -v ON_ERROR_STOP=1 -c \"" + bootstrapSQL + "\""},
		}},
		Env: []corev1.EnvVar{
			{Name: "GOTRUE_API_PORT", Value: fmt.Sprintf("%d", authDefaultPort)},
			{Name: "GOTRUE_DB_DRIVER", Value: "postgres"},
			{Name: "API_EXTERNAL_URL", Value: cfg.APIExternalURL},
			{Name: "GOTRUE_SITE_URL", Value: cfg.SiteURL},
			{Name: "GOTRUE_JWT_ADMIN_ROLES", Value: "service_role"},
			{Name: "GOTRUE_JWT_AUD", Value: "authenticated"},
			{Name: "GOTRUE_JWT_DEFAULT_GROUP_NAME", Value: "authenticated"},
			{Name: "GOTRUE_DB_DATABASE_URL", Value: adminDatabaseURL},
			secretEnvFrom("GOTRUE_JWT_SECRET", jwtSecretName, jwtSecretKey),
		},
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, false)
}

// DeleteAuth tears down the GoTrue deployment and its owned Service.
func DeleteAuth(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, authName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, authName))
}
