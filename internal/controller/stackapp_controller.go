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

// Package controller implements the StackApp reconciliation loop: fixed-order
// provisioning of one namespace's worth of application and platform
// components, and finalizer-guarded teardown on deletion.
package controller

import (
	"context"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	stackv1alpha1 "github.com/stack-cli/stack-operator/api/v1alpha1"
	"github.com/stack-cli/stack-operator/internal/operator"
)

// stackAppFinalizer blocks deletion of a StackApp until every sub-reconciler
// has torn down the resources it owns.
const stackAppFinalizer = "stack-cli.dev/finalizer"

const (
	requeueAfterSuccess = 10 * time.Second
	requeueAfterError   = 5 * time.Second
)

// StackAppReconciler reconciles a StackApp object.
type StackAppReconciler struct {
	client.Client
	Scheme *runtime.Scheme
}

// +kubebuilder:rbac:groups=stack-cli.dev,resources=stackapps,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=stack-cli.dev,resources=stackapps/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=stack-cli.dev,resources=stackapps/finalizers,verbs=update
// +kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups="",resources=services;secrets;configmaps;persistentvolumeclaims,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=networking.k8s.io,resources=networkpolicies,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=postgresql.cnpg.io,resources=clusters,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=k8s.keycloak.org,resources=keycloakrealmimports,verbs=get;list;watch;create;update;patch;delete

// Reconcile drives one StackApp toward its declared spec, or tears it down
// when marked for deletion. See SPEC_FULL.md §4.9 for the state machine this
// implements.
func (r *StackAppReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	app := &stackv1alpha1.StackApp{}
	if err := r.Get(ctx, req.NamespacedName, app); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	namespace := app.Namespace
	stackName := app.Name

	if !app.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(app, stackAppFinalizer) {
			return ctrl.Result{}, nil
		}
		if err := r.teardown(ctx, namespace, stackName, &app.Spec); err != nil {
			logger.Error(err, "teardown failed", "spec", app.Spec)
			return ctrl.Result{}, err
		}
		controllerutil.RemoveFinalizer(app, stackAppFinalizer)
		if err := r.Update(ctx, app); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, nil
	}

	if !controllerutil.ContainsFinalizer(app, stackAppFinalizer) {
		controllerutil.AddFinalizer(app, stackAppFinalizer)
		if err := r.Update(ctx, app); err != nil {
			return ctrl.Result{}, err
		}
	}

	if err := r.provision(ctx, namespace, stackName, &app.Spec); err != nil {
		logger.Error(err, "reconcile failed", "spec", app.Spec)
		return ctrl.Result{RequeueAfter: requeueAfterError}, nil
	}

	return ctrl.Result{RequeueAfter: requeueAfterSuccess}, nil
}

// provision runs every enabled sub-reconciler in the fixed order SPEC_FULL.md
// §4.9 requires, so secrets a later step consumes (database-urls, jwt-auth,
// storage-s3) already exist by the time that step runs.
func (r *StackAppReconciler) provision(ctx context.Context, namespace, stackName string, spec *stackv1alpha1.StackAppSpec) error {
	components := spec.Components

	if err := reconcileComponent(components.DB != nil,
		func() error {
			var diskGB int32
			var passwordOverride *string
			if components.DB.DiskSizeGB != nil {
				diskGB = *components.DB.DiskSizeGB
			}
			if components.DB.DangerOverridePassword != nil {
				passwordOverride = components.DB.DangerOverridePassword
			}
			return operator.DeployDatabase(ctx, r.Client, namespace, stackName, diskGB, passwordOverride)
		},
		func() error { return operator.DeleteDatabase(ctx, r.Client, namespace, stackName) },
	); err != nil {
		return err
	}
	dbEnabled := components.DB != nil

	if err := reconcileComponent(components.Storage != nil,
		func() error { return operator.DeployStorage(ctx, r.Client, namespace, stackName, components.Storage) },
		func() error { return operator.DeleteStorage(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := reconcileComponent(components.Rest != nil,
		func() error { return operator.DeployRest(ctx, r.Client, namespace, stackName, components.Rest) },
		func() error { return operator.DeleteRest(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := reconcileComponent(components.Realtime != nil,
		func() error { return operator.DeployRealtime(ctx, r.Client, namespace, stackName) },
		func() error { return operator.DeleteRealtime(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := reconcileComponent(components.DocumentEngine != nil,
		func() error { return operator.DeployDocumentEngine(ctx, r.Client, namespace) },
		func() error { return operator.DeleteDocumentEngine(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := reconcileComponent(components.Selenium != nil,
		func() error { return operator.DeploySelenium(ctx, r.Client, namespace, stackName, components.Selenium) },
		func() error { return operator.DeleteSelenium(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := reconcileComponent(components.Mailhog != nil,
		func() error { return operator.DeployMailhog(ctx, r.Client, namespace, stackName, components.Mailhog) },
		func() error { return operator.DeleteMailhog(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := reconcileComponent(components.RabbitMQ != nil,
		func() error { return operator.DeployRabbitMQ(ctx, r.Client, namespace, stackName, components.RabbitMQ) },
		func() error { return operator.DeleteRabbitMQ(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := reconcileComponent(components.Redis != nil,
		func() error { return operator.DeployRedis(ctx, r.Client, namespace, stackName, components.Redis) },
		func() error { return operator.DeleteRedis(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	jwtData, err := operator.EnsureJWTSecret(ctx, r.Client, namespace, stackName)
	if err != nil {
		return err
	}

	if err := reconcileComponent(components.Auth != nil,
		func() error { return operator.DeployAuth(ctx, r.Client, namespace, stackName, components.Auth) },
		func() error { return operator.DeleteAuth(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := r.configureAuthMode(ctx, namespace, stackName, spec, jwtData); err != nil {
		return err
	}

	if err := reconcileComponent(components.Cloudflare != nil,
		func() error { return operator.DeployCloudflare(ctx, r.Client, namespace, components.Cloudflare.SecretName) },
		func() error { return operator.DeleteCloudflare(ctx, r.Client, namespace) },
	); err != nil {
		return err
	}

	if err := operator.ApplyWebApp(ctx, r.Client, namespace, spec.Services.Web, dbEnabled, !needsNginx(components)); err != nil {
		return err
	}
	for name, svc := range spec.Services.Extra {
		if err := operator.ApplyExtraService(ctx, r.Client, namespace, name, svc, dbEnabled); err != nil {
			return err
		}
	}

	return r.reconcileNodePorts(ctx, namespace, stackName, components)
}

// configureAuthMode implements §4.9's "configure Auth mode" step: the OIDC
// branch upserts the Keycloak realm and oauth2-proxy and renders nginx in
// OIDC mode; otherwise nginx is rendered in static-JWT mode using the minted
// anon token. nginx itself is only deployed when some component needs a
// front door — the minimal seed scenario (no components at all) has none.
func (r *StackAppReconciler) configureAuthMode(ctx context.Context, namespace, stackName string, spec *stackv1alpha1.StackAppSpec, jwtData map[string][]byte) error {
	components := spec.Components

	if components.OIDC == nil {
		if err := operator.DeleteOIDC(ctx, r.Client, namespace); err != nil {
			return err
		}
		if !needsNginx(components) {
			return operator.DeleteNginx(ctx, r.Client, namespace)
		}
		return operator.DeployNginx(ctx, r.Client, namespace, operator.NginxSpec{
			Mode:                  operator.NginxModeStaticJWT,
			StaticJWT:             operator.AnonToken(jwtData),
			UpstreamPort:          spec.Services.Web.Port,
			AppName:               operator.WebAppName,
			IncludeAuth:           components.Auth != nil,
			IncludeStorage:        components.Storage != nil,
			IncludeRest:           components.Rest != nil,
			IncludeRealtime:       components.Realtime != nil,
			IncludeDocumentEngine: components.DocumentEngine != nil,
		})
	}

	if components.OIDC.HostnameURL == nil {
		return &operator.ValidationError{Field: "components.oidc.hostnameUrl", Reason: "required when components.oidc is enabled"}
	}
	publicBaseURL := *components.OIDC.HostnameURL

	clientID, clientSecret, err := operator.EnsureClientCredentials(ctx, r.Client, namespace, stackName)
	if err != nil {
		return err
	}

	realmCfg := operator.RealmConfig{
		Namespace:         namespace,
		ClientID:          clientID,
		ClientSecret:      clientSecret,
		RedirectURIs:      []string{publicBaseURL + "/oauth2/callback"},
		AllowRegistration: true,
		PublicBaseURL:     publicBaseURL,
	}
	if err := operator.EnsureRealm(ctx, r.Client, realmCfg); err != nil {
		return err
	}
	if err := operator.DeployOAuth2Proxy(ctx, r.Client, namespace, stackName, realmCfg, spec.Services.Web.Port); err != nil {
		return err
	}

	exposeAdmin := components.OIDC.ExposeAdmin != nil && *components.OIDC.ExposeAdmin
	return operator.DeployNginx(ctx, r.Client, namespace, operator.NginxSpec{
		Mode:                  operator.NginxModeOIDC,
		IncludeAuth:           components.Auth != nil,
		IncludeStorage:        components.Storage != nil,
		IncludeRest:           components.Rest != nil,
		IncludeRealtime:       components.Realtime != nil,
		IncludeDocumentEngine: components.DocumentEngine != nil,
		ExposeAdmin:           exposeAdmin,
	})
}

// needsNginx reports whether any component nginx fronts is enabled. The
// minimal seed scenario (no components at all) deploys no nginx.
func needsNginx(components stackv1alpha1.Components) bool {
	return components.OIDC != nil ||
		components.Auth != nil ||
		components.Storage != nil ||
		components.Rest != nil ||
		components.Realtime != nil ||
		components.DocumentEngine != nil ||
		components.Ingress != nil
}

func (r *StackAppReconciler) reconcileNodePorts(ctx context.Context, namespace, stackName string, components stackv1alpha1.Components) error {
	var dbPort, ingressPort, restPort, seleniumWebdriverPort, seleniumVNCPort, mailhogSMTPPort, mailhogWebPort *int32
	if components.DB != nil {
		dbPort = components.DB.ExposeDbPort
	}
	if components.Ingress != nil {
		ingressPort = components.Ingress.Port
	}
	if components.Rest != nil {
		restPort = components.Rest.ExposeRestPort
	}
	if components.Selenium != nil {
		seleniumWebdriverPort = components.Selenium.ExposeWebdriverPort
		seleniumVNCPort = components.Selenium.ExposeVNCPort
	}
	if components.Mailhog != nil {
		mailhogSMTPPort = components.Mailhog.ExposeSMTPPort
		mailhogWebPort = components.Mailhog.ExposeWebPort
	}
	selection := operator.NewNodePortSelection(dbPort, ingressPort, restPort, seleniumWebdriverPort, seleniumVNCPort, mailhogSMTPPort, mailhogWebPort)
	return operator.ReconcileNodePorts(ctx, r.Client, namespace, stackName, selection)
}

// teardown runs every sub-reconciler's Delete in the reverse of the
// provisioning order, then the user's services, so nothing depends on an
// already-removed secret mid-teardown. Every step tolerates the resource
// already being absent.
func (r *StackAppReconciler) teardown(ctx context.Context, namespace, stackName string, spec *stackv1alpha1.StackAppSpec) error {
	for name := range spec.Services.Extra {
		if err := operator.DeleteExtraService(ctx, r.Client, namespace, name); err != nil {
			return err
		}
	}
	if err := operator.DeleteWebApp(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteCloudflare(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteNginx(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteOIDC(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteAuth(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteRedis(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteRabbitMQ(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteMailhog(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteSelenium(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteDocumentEngine(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteRealtime(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteRest(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteStorage(ctx, r.Client, namespace); err != nil {
		return err
	}
	if err := operator.DeleteDatabase(ctx, r.Client, namespace, stackName); err != nil {
		return err
	}
	return r.reconcileNodePorts(ctx, namespace, stackName, stackv1alpha1.Components{})
}

// reconcileComponent runs deploy when enabled is true, delete otherwise, so
// disabling a previously-enabled component tears it down on the very next
// reconcile instead of leaking resources.
func reconcileComponent(enabled bool, deploy, delete func() error) error {
	if enabled {
		if err := deploy(); err != nil {
			return fmt.Errorf("deploy: %w", err)
		}
		return nil
	}
	if err := delete(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// SetupWithManager wires the StackApp controller into mgr, watching the
// resources every sub-reconciler owns so external drift triggers a requeue.
func (r *StackAppReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&stackv1alpha1.StackApp{}).
		Complete(r)
}
