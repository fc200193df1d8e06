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

// WebAppName is the reserved Deployment/Service name for the user's
// required web service (spec §3's ReservedServiceNames "web_app"), distinct
// from the StackApp resource's own name so nginx and oauth2-proxy can
// always address it without threading the CR name through every config path.
const WebAppName = "web_app"

const webAppName = WebAppName

// BuildAppServiceDeployment renders one user-defined service (the required
// web service or a services.extra entry) into a ServiceDeployment, wiring
// plain env, secret-sourced env, an optional init container, and the
// database-URL env injections. It returns a DependencyMissingError if the
// service asks for a database URL but the db component is not enabled.
func BuildAppServiceDeployment(name string, spec stackv1alpha1.ServiceSpec, dbEnabled bool) (ServiceDeployment, error) {
	env, err := appEnv(name, spec.Env, spec.SecretEnv, spec.DatabaseURL, spec.MigrationsDatabaseURL, spec.ReadonlyDatabaseURL, dbEnabled)
	if err != nil {
		return ServiceDeployment{}, err
	}

	var initContainers []InitContainer
	if spec.Init != nil {
		initEnv, err := appEnv(name, spec.Init.Env, spec.Init.SecretEnv, spec.Init.DatabaseURL, spec.Init.MigrationsDatabaseURL, spec.Init.ReadonlyDatabaseURL, dbEnabled)
		if err != nil {
			return ServiceDeployment{}, err
		}
		initContainers = append(initContainers, InitContainer{Image: spec.Init.Image, Env: initEnv})
	}

	return ServiceDeployment{
		Name:           name,
		Image:          spec.Image,
		Port:           ptrInt32(spec.Port),
		Env:            env,
		InitContainers: initContainers,
	}, nil
}

func appEnv(name string, plain []stackv1alpha1.EnvVar, secret []stackv1alpha1.SecretEnvVar, databaseURL, migrationsURL, readonlyURL *string, dbEnabled bool) ([]corev1.EnvVar, error) {
	var env []corev1.EnvVar
	for _, e := range plain {
		env = append(env, corev1.EnvVar{Name: e.Name, Value: e.Value})
	}
	for _, e := range secret {
		env = append(env, secretEnvFrom(e.Name, e.SecretName, e.SecretKey))
	}

	for _, binding := range []struct {
		envName *string
		key     string
	}{
		{databaseURL, "application-url"},
		{migrationsURL, "migrations-url"},
		{readonlyURL, "readonly-url"},
	} {
		if binding.envName == nil {
			continue
		}
		if !dbEnabled {
			return nil, &DependencyMissingError{
				Component: name,
				Requires:  "components.db",
				Hint:      "service " + name + " requests a database URL but components.db is not enabled",
			}
		}
		env = append(env, secretEnvFrom(*binding.envName, databaseURLsSecret, binding.key))
	}
	return env, nil
}

// ApplyWebApp deploys the required web service under the reserved web_app
// name. allowFromAnywhere is true only when nginx is absent and the web
// service is meant to be reached directly (spec's minimal seed scenario).
func ApplyWebApp(ctx context.Context, c client.Client, namespace string, spec stackv1alpha1.ServiceSpec, dbEnabled, allowFromAnywhere bool) error {
	deployment, err := BuildAppServiceDeployment(webAppName, spec, dbEnabled)
	if err != nil {
		return err
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, allowFromAnywhere)
}

// DeleteWebApp tears down the web_app Deployment and its Service.
func DeleteWebApp(ctx context.Context, c client.Client, namespace string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, webAppName)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, webAppName))
}

// ApplyExtraService deploys one services.extra entry under its own name.
func ApplyExtraService(ctx context.Context, c client.Client, namespace, name string, spec stackv1alpha1.ServiceSpec, dbEnabled bool) error {
	deployment, err := BuildAppServiceDeployment(name, spec, dbEnabled)
	if err != nil {
		return err
	}
	return ApplyServiceDeployment(ctx, c, deployment, namespace, false)
}

// DeleteExtraService tears down one services.extra entry by name.
func DeleteExtraService(ctx context.Context, c client.Client, namespace, name string) error {
	if err := DeleteIfExists(ctx, c, deploymentStub(namespace, name)); err != nil {
		return err
	}
	return DeleteIfExists(ctx, c, serviceStub(namespace, name))
}
